// Package buildengine provides engine.Invoker implementations that hand
// tasks to the external build engine: a Node.js entry script or an arbitrary
// command. Dispatch selects one based on the configured runtime.
package buildengine
