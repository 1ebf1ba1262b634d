package llm

import (
	"context"
)

// Client sends a prompt to a generative-language model and returns the raw
// textual reply. Implementations wrap provider SDKs; transport, auth and
// quota failures surface as errors for the caller to degrade on.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
