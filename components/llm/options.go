package llm

import "errors"

// ErrEmptyResponse is returned when a provider answers without any text
var ErrEmptyResponse = errors.New("empty response")

// Options holds the request configuration shared by provider adapters.
type Options struct {
	// model specifies the model to use
	model string
	// maxTokens caps the completion length
	maxTokens int
	// temperature of sampling
	temperature float32
	// system is an optional system prompt
	system string
}

// Option is a function type for configuring provider Options.
// It follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

func WithModel(model string) Option {
	return func(o *Options) {
		o.model = model
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.maxTokens = maxTokens
	}
}

func WithTemperature(temperature float32) Option {
	return func(o *Options) {
		o.temperature = temperature
	}
}

func WithSystemPrompt(system string) Option {
	return func(o *Options) {
		o.system = system
	}
}

func (o Options) Model() string {
	return o.model
}

func (o Options) MaxTokens() int {
	return o.maxTokens
}

func (o Options) Temperature() float32 {
	return o.temperature
}

func (o Options) SystemPrompt() string {
	return o.system
}
