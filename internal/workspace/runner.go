package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// Runner turns a mode and its inputs into a gateway request and decodes the
// reply into the mode's result type.
type Runner struct {
	client llm.Client
}

// NewRunner creates a Runner that sends requests through client.
func NewRunner(client llm.Client) *Runner {
	return &Runner{client: client}
}

// Generate runs mode with inputs and returns a pointer to the typed result
// (see types.NewResult). Every failure is returned as a *RunError.
func (r *Runner) Generate(ctx context.Context, mode types.Mode, inputs map[string]string) (any, error) {
	req, err := buildRequest(mode, inputs)
	if err != nil {
		return nil, newRunError(mode, err)
	}

	text, err := r.client.Generate(ctx, req)
	if err != nil {
		log.Printf("[runner] %s generation failed: %v", mode, err)
		return nil, newRunError(mode, err)
	}

	result, err := decodeReply(mode, text)
	if err != nil {
		log.Printf("[runner] %s reply rejected: %v", mode, err)
		return nil, newRunError(mode, err)
	}
	return result, nil
}

func buildRequest(mode types.Mode, inputs map[string]string) (llm.Request, error) {
	req := llm.Request{
		Feature:          mode,
		Inputs:           inputs,
		ResponseMIMEType: llm.MIMEText,
		Temperature:      llm.TemperatureFor(mode),
	}
	if !mode.Structured() {
		return req, nil
	}

	schema, err := schemas.ForMode(mode)
	if err != nil {
		return llm.Request{}, fmt.Errorf("failed to load response schema: %w", err)
	}
	req.ResponseSchema = json.RawMessage(schema)
	req.ResponseMIMEType = llm.MIMEJSON
	return req, nil
}

func decodeReply(mode types.Mode, text string) (any, error) {
	if !mode.Structured() {
		letter := types.CoverLetterResult(strings.TrimSpace(text))
		return &letter, nil
	}

	cleaned := llm.CleanJSONBlock(text)
	if err := schemas.ValidateResult(mode, cleaned); err != nil {
		return nil, err
	}

	result := types.NewResult(mode)
	if result == nil {
		return nil, fmt.Errorf("no result type for mode %s", mode)
	}
	if err := json.Unmarshal([]byte(cleaned), result); err != nil {
		return nil, fmt.Errorf("failed to decode %s reply: %w", mode, err)
	}
	return result, nil
}
