package projectconfig

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/oraclejetconfig.schema.json
var schemaBytes []byte

const schemaName = "oraclejetconfig.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one field of oraclejetconfig.json that breaks the
// schema.
type ValidationIssue struct {
	// Field is the dotted setting name, e.g. "paths.source.web". Empty for
	// the document itself.
	Field string

	// Path is the JSON pointer of the offending value.
	Path string

	// Rule is the schema keyword that failed, e.g. "type" or "pattern".
	Rule string

	Message string
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaName, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaName)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks configuration bytes against the embedded schema. The error
// return covers unparseable input and schema compilation failures; schema
// violations are reported in the result.
func Validate(data []byte) (*ValidationResult, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return validateDocument(doc)
}

// ValidateFile reads path and validates it. Read and parse failures are
// returned as *ConfigurationError.
func ValidateFile(path string) (*ValidationResult, error) {
	_, result, err := Check(path)
	return result, err
}

// Check reads the configuration file at path once, validates it and
// extracts its settings. The config is nil when the document is not an
// object; the result then explains why. Read and parse failures are
// returned as *ConfigurationError.
func Check(path string) (*ProjectConfig, *ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := decode(data)
	if err != nil {
		return nil, nil, &ConfigurationError{Path: path, Err: err}
	}
	result, err := validateDocument(doc)
	if err != nil {
		return nil, nil, &ConfigurationError{Path: path, Err: err}
	}
	cfg, err := fromDocument(doc)
	if err != nil {
		return nil, result, nil
	}
	return cfg, result, nil
}

func validateDocument(doc any) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return &ValidationResult{Issues: issuesFrom(ve)}, nil
}

// issuesFrom flattens the error tree into one issue per failing setting, in
// the order the schema reported them. Wrapper nodes ($ref, allOf) carry no
// information of their own and are skipped.
func issuesFrom(root *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[ValidationIssue]bool)

	pending := []*jsonschema.ValidationError{root}
	for len(pending) > 0 {
		ve := pending[0]
		pending = pending[1:]
		if len(ve.Causes) > 0 {
			pending = append(append([]*jsonschema.ValidationError(nil), ve.Causes...), pending...)
			continue
		}

		issue, ok := issueFor(ve)
		if ok && !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}

	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}
	return issues
}

func issueFor(ve *jsonschema.ValidationError) (ValidationIssue, bool) {
	if ve.ErrorKind == nil {
		return ValidationIssue{}, false
	}
	keywords := ve.ErrorKind.KeywordPath()
	if len(keywords) == 0 {
		return ValidationIssue{}, false
	}
	rule := keywords[len(keywords)-1]
	if rule == "$ref" || rule == "allOf" {
		return ValidationIssue{}, false
	}

	issue := ValidationIssue{
		Rule:    rule,
		Message: ve.ErrorKind.LocalizedString(printer),
	}
	if len(ve.InstanceLocation) > 0 {
		issue.Field = strings.Join(ve.InstanceLocation, ".")
		issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	return issue, true
}
