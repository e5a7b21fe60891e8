package trimmer

import (
	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components/tokenizer"
)

// Strategy defines which end of the text survives trimming.
type Strategy int

const (
	// KeepTail keeps the last tokens, preserving the most recent context (default).
	KeepTail Strategy = iota
	// KeepHead keeps the first tokens.
	KeepHead
)

func (s Strategy) String() string {
	switch s {
	case KeepHead:
		return "head"
	default:
		return "tail"
	}
}

// ParseStrategy returns the Strategy named "head" or "tail".
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "", "tail":
		return KeepTail, true
	case "head":
		return KeepHead, true
	}
	return KeepTail, false
}

type Options struct {
	resolver  *tokenizer.Resolver
	tokenizer tokenizer.Tokenizer
	strategy  Strategy
	logger    *zap.Logger
}

// Option is a function type for configuring a Trimmer.
type Option func(*Options)

// WithResolver sets the resolver which selects the tokenizer of each call's context
func WithResolver(r *tokenizer.Resolver) Option {
	return func(o *Options) {
		o.resolver = r
	}
}

// WithTokenizer pins a tokenizer and ignores the call context
func WithTokenizer(tk tokenizer.Tokenizer) Option {
	return func(o *Options) {
		o.tokenizer = tk
	}
}

func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.strategy = s
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func (o Options) Strategy() Strategy {
	return o.strategy
}

// Tokenizer returns the tokenizer used for tcx
func (o Options) Tokenizer(tcx tokenizer.Context) tokenizer.Tokenizer {
	if o.tokenizer != nil {
		return o.tokenizer
	}
	if o.resolver != nil {
		return o.resolver.Resolve(tcx)
	}
	return tokenizer.DefaultResolver().Resolve(tcx)
}
