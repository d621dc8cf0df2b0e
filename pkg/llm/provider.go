package llm

import "context"

// Message is a chat turn in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option sets optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// StreamFunc receives each incremental completion delta. Returning an error
// aborts the stream.
type StreamFunc func(delta string) error

// LLMProvider is the contract for the model backend used by the chat
// fallback tier.
type LLMProvider interface {
	// Generate sends a single prompt and returns the full completion.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// Stream sends a single prompt and forwards completion deltas as they
	// arrive.
	Stream(ctx context.Context, prompt string, fn StreamFunc, options ...Option) error
}
