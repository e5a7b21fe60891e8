package agents

import (
	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/systemprompt"
	"github.com/bububa/tokenkit/components/tokenizer"
	"github.com/bububa/tokenkit/components/trimmer"
)

// DefaultMaxPromptTokens is the prompt budget used when none is configured
const DefaultMaxPromptTokens = 4096

type Option func(a *Config)

// Config represents general generator configuration
type Config struct {
	// client Client for interacting with the language model
	client components.LLM
	// trimmer cuts prompts down to maxPromptTokens
	trimmer *trimmer.Trimmer
	// maxPromptTokens token budget of the prompt sent to the model
	maxPromptTokens int
	// tcx selects the tokenizer used to measure prompts.
	// Derived from the client when empty.
	tcx tokenizer.Context
	// systemPrompt is rendered ahead of the prompt; its tokens count against maxPromptTokens
	systemPrompt *systemprompt.Generator
	//	memory  Memory component for storing chat history.
	memory components.MemoryStore
	logger *zap.Logger
	// name is Generator name presentation
	name string
}

func WithClient(clt components.LLM) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithTrimmer(t *trimmer.Trimmer) Option {
	return func(c *Config) {
		c.trimmer = t
	}
}

func WithMaxPromptTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxPromptTokens = maxTokens
	}
}

func WithTokenizerContext(tcx tokenizer.Context) Option {
	return func(c *Config) {
		c.tcx = tcx
	}
}

func WithSystemPrompt(g *systemprompt.Generator) Option {
	return func(c *Config) {
		c.systemPrompt = g
	}
}

func WithMemory(m components.MemoryStore) Option {
	return func(c *Config) {
		c.memory = m
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

// TokenizerContext returns the configured context, or one built from the client
func (c Config) TokenizerContext() tokenizer.Context {
	if c.tcx != (tokenizer.Context{}) || c.client == nil {
		return c.tcx
	}
	return tokenizer.Context{
		Provider: c.client.Provider(),
		Model:    c.client.Model(),
	}
}

func (c Config) MaxPromptTokens() int {
	return c.maxPromptTokens
}

func (c Config) Name() string {
	return c.name
}
