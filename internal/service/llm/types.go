package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by providers constructed without credentials.
var ErrNotConfigured = errors.New("llm provider not configured")

type Question struct {
	Content string
}

type Answer struct {
	Content string
}

// Service is the text-completion boundary: send text, get text back.
// Prompt construction and response parsing belong to the caller.
type Service interface {
	AskOnce(ctx context.Context, q Question) (Answer, error)
}
