package llm

import "context"

// InferenceClient sends one prompt (optionally with images) to the model and
// returns the trimmed text of its reply. Implementations never retry.
type InferenceClient interface {
	Infer(ctx context.Context, model, prompt string, images ...string) (string, error)
}
