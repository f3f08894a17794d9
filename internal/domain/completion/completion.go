// Package completion defines the text-generation provider contract consumed
// by the tag extractor, selection engine, and gift generator.
package completion

import "context"

// Prompt carries the system and user halves of a chat-style prompt.
type Prompt struct {
	System string
	User   string
}

// Options tune a single completion call.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// Provider generates free-form text from a formatted prompt. Implementations
// may target a remote API or a local model without callers changing.
type Provider interface {
	Complete(ctx context.Context, prompt Prompt, opts Options) (string, error)
}
