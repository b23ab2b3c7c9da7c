// Package llm is the client side of the Ollama generate endpoint.
// All types here are shared between the client, the recording decorator and
// the domain analyzers that call into it.
package llm

import "time"

// GenerateRequest is the wire body of POST {baseURL}/generate.
// Images holds base64-encoded bytes and is omitted for text-only prompts.
type GenerateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
}

// GenerateResponse is the subset of the generate reply this client reads.
// Any other endpoint-specific field is ignored.
type GenerateResponse struct {
	Model      string `json:"model"`
	CreatedAt  string `json:"created_at"`
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason"`
}

// TopicInferenceCompleted is published once per Infer call by RecordingClient.
const TopicInferenceCompleted = "inference.completed"

// InferenceCompleted is the payload published on TopicInferenceCompleted.
type InferenceCompleted struct {
	ID         string
	Model      string
	Prompt     string
	ImageCount int
	Outcome    string // see Outcome()
	Error      string
	Duration   time.Duration
	At         time.Time
}
