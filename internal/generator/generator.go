package generator

import (
	"context"
	"errors"
)

// ErrGenerationFailed wraps any external-provider failure. Handlers map it
// to a generic 500 without relaying provider detail to the caller.
var ErrGenerationFailed = errors.New("content generation failed")

// Generator maps a (title, contentType, prompt) triple to a text body.
type Generator interface {
	Generate(ctx context.Context, title, contentType, prompt string) (string, error)
}
