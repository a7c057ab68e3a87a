// Package inference calls a hosted model with a PDF document and an
// instruction and returns the model's free-form text reply.
package inference

import "context"

// Request carries one document and its instruction. Model and MaxTokens fall
// back to the client's configured defaults when zero.
type Request struct {
	Document    string // base64-encoded PDF
	Instruction string
	Model       string
	MaxTokens   int
}

// Client is the inference capability: (document, instruction) -> text.
// An empty string with a nil error means the model produced no text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
