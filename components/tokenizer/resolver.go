package tokenizer

import (
	"sync"

	"go.uber.org/zap"
)

// ResolveFunc builds the tokenizer for a Context. Returning an error lets the
// Resolver continue with its fallback chain.
type ResolveFunc func(tcx Context) (Tokenizer, error)

// Resolver selects a Tokenizer for a Context from a strategy table keyed by
// provider. Resolution never fails: when no strategy matches or a strategy
// errors it falls back to the generic encoding, then to Characters.
// threadsafe
type Resolver struct {
	strategies       map[string]ResolveFunc
	fallbackEncoding string
	logger           *zap.Logger
	mtx              *sync.RWMutex
}

// ResolverOption is a function type for configuring a Resolver.
type ResolverOption func(*Resolver)

// WithFallbackEncoding sets the generic encoding used before the character fallback
func WithFallbackEncoding(encoding string) ResolverOption {
	return func(r *Resolver) {
		r.fallbackEncoding = encoding
	}
}

func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStrategy registers fn for provider
func WithStrategy(provider Provider, fn ResolveFunc) ResolverOption {
	return func(r *Resolver) {
		r.strategies[providerKey(provider)] = fn
	}
}

// NewResolver returns a Resolver seeded with the OpenAI model table.
// Providers without a public tokenizer resolve to the generic encoding.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		strategies:       make(map[string]ResolveFunc),
		fallbackEncoding: DefaultEncoding,
		logger:           zap.NewNop(),
		mtx:              new(sync.RWMutex),
	}
	r.strategies[providerKey(ProviderOpenAI)] = resolveOpenAI
	r.strategies[providerKey(ProviderAzure)] = resolveOpenAI
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultResolver     *Resolver
	defaultResolverOnce sync.Once
)

// DefaultResolver returns the shared Resolver used by package level helpers.
func DefaultResolver() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolver = NewResolver()
	})
	return defaultResolver
}

// Register adds or replaces the strategy of provider.
func (r *Resolver) Register(provider Provider, fn ResolveFunc) *Resolver {
	r.mtx.Lock()
	r.strategies[providerKey(provider)] = fn
	r.mtx.Unlock()
	return r
}

// Resolve returns the tokenizer of tcx. Order: explicit encoding, provider
// strategy, generic encoding, characters.
func (r *Resolver) Resolve(tcx Context) Tokenizer {
	if tcx.Encoding != "" {
		tk, err := ForEncoding(tcx.Encoding)
		if err == nil {
			return tk
		}
		r.logger.Debug("encoding unavailable, trying provider", zap.String("encoding", tcx.Encoding), zap.Error(err))
	}
	r.mtx.RLock()
	fn, ok := r.strategies[providerKey(tcx.Provider)]
	r.mtx.RUnlock()
	if ok && fn != nil {
		tk, err := fn(tcx)
		if err == nil && tk != nil {
			return tk
		}
		r.logger.Debug("provider tokenizer unavailable, using fallback", zap.String("context", tcx.String()), zap.Error(err))
	} else {
		r.logger.Debug("no tokenizer strategy for provider, using fallback", zap.String("provider", tcx.Provider))
	}
	return r.Fallback()
}

// Fallback returns the generic encoding, or Characters when it cannot be loaded.
func (r *Resolver) Fallback() Tokenizer {
	tk, err := NewTikToken(r.fallbackEncoding)
	if err != nil {
		r.logger.Warn("fallback encoding unavailable, using characters", zap.String("encoding", r.fallbackEncoding), zap.Error(err))
		return Characters{}
	}
	return tk
}

// ForEncoding returns the tokenizer of a named encoding.
func ForEncoding(encoding string) (Tokenizer, error) {
	if encoding == EncodingCharacters {
		return Characters{}, nil
	}
	return NewTikToken(encoding)
}

func resolveOpenAI(tcx Context) (Tokenizer, error) {
	return NewTikTokenForModel(tcx.Model)
}
