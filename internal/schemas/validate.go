// Package schemas provides JSON Schema validation for generation replies.
package schemas

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
	schemafiles "github.com/jonathan/resume-studio/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// FileName returns the schema file that describes a mode's reply.
// Modes with free-text replies have no schema.
func FileName(mode types.Mode) (string, error) {
	switch mode {
	case types.ModeAnalysis, types.ModeMatch, types.ModeRewrite,
		types.ModeATS, types.ModeInterview, types.ModeATSAudit:
		return string(mode) + ".schema.json", nil
	case types.ModeCover:
		return "", fmt.Errorf("mode %s has no response schema", mode)
	default:
		return "", fmt.Errorf("unknown mode %q", mode)
	}
}

// ForMode returns the embedded schema text for a mode's reply.
func ForMode(mode types.Mode) (string, error) {
	name, err := FileName(mode)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(schemafiles.FS, name)
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "embedded schema missing", Cause: err}
	}
	return string(data), nil
}

// ValidateResult validates a reply for mode against the mode's embedded schema.
func ValidateResult(mode types.Mode, jsonContent string) error {
	schema, err := ForMode(mode)
	if err != nil {
		return err
	}
	return validate(string(mode)+".schema.json",
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(jsonContent))
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	// Resolve absolute paths to handle relative paths correctly
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}

	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}

	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	return validate(schemaAbsPath,
		gojsonschema.NewReferenceLoader("file://"+schemaAbsPath),
		gojsonschema.NewReferenceLoader("file://"+jsonAbsPath))
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)",
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent))
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// gojsonschema does not separate schema load failures from document
		// parse failures here; both surface as SchemaLoadError.
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
