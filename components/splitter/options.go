package splitter

import (
	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components/tokenizer"
)

const (
	// DefaultChunkSize is the default number of tokens per chunk
	DefaultChunkSize = 200
	// DefaultBleed is the default number of tokens shared by adjacent chunks
	DefaultBleed = 50
)

type Options struct {
	chunkSize int
	bleed     int
	tokenizer tokenizer.Tokenizer
	logger    *zap.Logger
}

// Option is a function type for configuring splitter Options.
// This follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.chunkSize = size
	}
}

// WithBleed sets how many tokens adjacent chunks share
func WithBleed(bleed int) Option {
	return func(o *Options) {
		o.bleed = bleed
	}
}

func WithTokenizer(tk tokenizer.Tokenizer) Option {
	return func(o *Options) {
		o.tokenizer = tk
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func (o Options) ChunkSize() int {
	return o.chunkSize
}

func (o Options) Bleed() int {
	return o.bleed
}

// Tokenizer returns the configured tokenizer, or the generic fallback of the default resolver.
func (o Options) Tokenizer() tokenizer.Tokenizer {
	if o.tokenizer == nil {
		return tokenizer.DefaultResolver().Fallback()
	}
	return o.tokenizer
}

func (o Options) validate(op string) error {
	if o.chunkSize <= 0 {
		return tokenizer.InvalidArgument(op, "chunkSize must be positive")
	}
	if o.bleed < 0 {
		return tokenizer.InvalidArgument(op, "bleed must not be negative")
	}
	if o.bleed >= o.chunkSize {
		return tokenizer.InvalidArgument(op, "bleed must be less than chunkSize")
	}
	return nil
}
