package thresholds

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed v1.json schema.json
var builtinFiles embed.FS

// SchemaError reports a threshold file that failed JSON Schema validation.
type SchemaError struct {
	Path   string
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("threshold table %s failed schema validation:\n  %s",
		e.Path, strings.Join(e.Issues, "\n  "))
}

// Default returns the embedded v1 threshold table. It panics on a corrupt
// embed, which can only happen at build time.
func Default() *Table {
	data, err := builtinFiles.ReadFile("v1.json")
	if err != nil {
		panic(fmt.Sprintf("embedded threshold table missing: %v", err))
	}
	table, err := parse(data, "embedded v1.json")
	if err != nil {
		panic(fmt.Sprintf("embedded threshold table invalid: %v", err))
	}
	return table
}

// Load reads, schema-validates, and completeness-checks a threshold table
// file. Any configuration error is fatal here rather than mid-request.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read threshold table %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Table, error) {
	if err := validateSchema(data, source); err != nil {
		return nil, err
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse threshold table %s: %w", source, err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &table, nil
}

func validateSchema(data []byte, source string) error {
	schemaBytes, err := builtinFiles.ReadFile("schema.json")
	if err != nil {
		return fmt.Errorf("embedded threshold schema missing: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate threshold table %s: %w", source, err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return &SchemaError{Path: source, Issues: issues}
	}
	return nil
}
