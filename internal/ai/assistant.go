package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// InsufficientInformation is the only answer a generator may give when the
// prompt does not carry enough evidence.
const InsufficientInformation = "Not enough information to infer."

// SystemInstruction is sent with every networked generation request.
const SystemInstruction = `You are a strict, factual resume assistant.
Rules:
- Use only information that is explicitly present in the input.
- Never invent skills, tools, employers, job titles, dates, metrics or achievements.
- Only skills from the provided skill lists may be inserted; skip a skill that does not fit naturally.
- Do not add technologies that are not written in the input.
- Keep the original meaning; improve wording and clarity only.
- If the input does not contain enough information to answer, reply exactly: "` + InsufficientInformation + `"
- Reply with the answer only, without explanations or markdown.`

// ErrEmptyResponse is returned when a generator produced no text.
var ErrEmptyResponse = errors.New("empty response")

// Inferrer turns a prompt into a text completion. Implementations must honour
// SystemInstruction: anything they cannot support from the prompt is answered
// with InsufficientInformation.
type Inferrer interface {
	Infer(ctx context.Context, prompt string) (string, error)
}

// InferrerFunc adapts a function to the Inferrer interface.
type InferrerFunc func(ctx context.Context, prompt string) (string, error)

func (f InferrerFunc) Infer(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Refuser is the offline Inferrer: it refuses every prompt.
type Refuser struct{}

func (Refuser) Infer(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return InsufficientInformation, nil
}

// IsRefusal reports whether text is the insufficient information answer,
// ignoring case, quotes and surrounding whitespace.
func IsRefusal(text string) bool {
	text = strings.Trim(strings.TrimSpace(text), "\"'`")
	return strings.EqualFold(strings.TrimSpace(text), InsufficientInformation)
}

// ServiceError reports a failure of an external tagging or generation service.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	provider := e.Provider
	if provider == "" {
		provider = "external service"
	}
	return fmt.Sprintf("%s: %v", provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// AsServiceError wraps err in a ServiceError unless it already is one.
// Context cancellation is returned unchanged.
func AsServiceError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var serr *ServiceError
	if errors.As(err, &serr) {
		return err
	}
	return &ServiceError{Provider: provider, Err: err}
}
