// Package engine is the programmatic facade over the external build engine.
// An Engine accepts a TaskRequest, moves the process into the project
// directory, publishes an ExecutionContext for the duration of the call,
// forwards the flattened task list to an Invoker and restores the previous
// working directory on every exit path.
package engine
