package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/spf13/cobra"
)

var validateResultCmd = &cobra.Command{
	Use:   "validate-result",
	Short: "Validate a saved generation reply",
	Long:  "Validates a saved reply for a mode against the mode's embedded JSON schema, or an explicit schema file, and optionally prints it.",
	RunE:  runValidateResult,
}

var (
	validateMode   string
	validateInput  string
	validateSchema string
	validatePrint  bool
)

func init() {
	validateResultCmd.Flags().StringVarP(&validateMode, "mode", "m", "", "Mode the reply belongs to (analysis, match, rewrite, cover, ats, interview, ats_audit)")
	validateResultCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to the reply file (required)")
	validateResultCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON schema file to use instead of the mode's schema")
	validateResultCmd.Flags().BoolVarP(&validatePrint, "print", "p", false, "Print the reply after validating it")

	if err := validateResultCmd.MarkFlagRequired("mode"); err != nil {
		panic(fmt.Sprintf("failed to mark mode flag as required: %v", err))
	}
	if err := validateResultCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateResultCmd)
}

func runValidateResult(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	mode := types.Mode(strings.ToLower(strings.TrimSpace(validateMode)))
	result := types.NewResult(mode)
	if result == nil {
		return fmt.Errorf("unknown mode %q", validateMode)
	}

	content, err := os.ReadFile(validateInput)
	if err != nil {
		return fmt.Errorf("failed to read reply file: %w", err)
	}

	if !mode.Structured() {
		letter := types.CoverLetterResult(strings.TrimSpace(string(content)))
		if letter == "" {
			return fmt.Errorf("validation failed: cover letter is empty")
		}
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateInput)
		if validatePrint {
			observability.NewPrinter(out).PrintResult(&letter)
		}
		return nil
	}

	cleaned := llm.CleanJSONBlock(string(content))
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateInput)
	} else {
		err = schemas.ValidateResult(mode, cleaned)
	}
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(out, "Validation failed:\n%s", validationErr.Error())
			return fmt.Errorf("validation failed with %d error(s)", len(validationErr.Errors))
		}
		return fmt.Errorf("failed to validate reply: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateInput)

	if validatePrint {
		if err := json.Unmarshal([]byte(cleaned), result); err != nil {
			return fmt.Errorf("failed to decode reply: %w", err)
		}
		observability.NewPrinter(out).PrintResult(result)
	}
	return nil
}
