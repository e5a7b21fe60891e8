package systemprompt

import "github.com/bububa/tokenkit/components/trimmer"

type Option = func(g *Generator)

// WithContextProviders set Generator context providers
func WithContextProviders(providers ...ContextProvider) Option {
	return func(g *Generator) {
		g.AddContextProviders(providers...)
	}
}

// WithProviderMaxTokens caps the tokens of every context provider's info
func WithProviderMaxTokens(maxTokens int) Option {
	return func(g *Generator) {
		g.providerMaxTokens = maxTokens
	}
}

// WithTrimmer sets the trimmer used for provider info.
// The default keeps the head of each info.
func WithTrimmer(t *trimmer.Trimmer) Option {
	return func(g *Generator) {
		g.trimmer = t
	}
}
