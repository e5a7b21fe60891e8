package systemprompt

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bububa/tokenkit/components/tokenizer"
	"github.com/bububa/tokenkit/components/trimmer"
)

// Generator renders a system prompt: the instruction content followed by an
// extra information section built from its context providers.
type Generator struct {
	content           string
	contextProviders  []ContextProvider
	providerMaxTokens int
	trimmer           *trimmer.Trimmer
}

// New returns a new system prompt Generator
func New(content string, options ...Option) *Generator {
	ret := &Generator{
		content: content,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.trimmer == nil {
		ret.trimmer = trimmer.New(trimmer.WithStrategy(trimmer.KeepHead))
	}
	return ret
}

func (g *Generator) ContextProviders() []ContextProvider {
	return g.contextProviders
}

// ContextProvider retrieves a context provider by name.
// If the context provider is not found returns not found error
func (g *Generator) ContextProvider(title string) (ContextProvider, error) {
	for _, p := range g.contextProviders {
		if p.Title() == title {
			return p, nil
		}
	}
	return nil, fmt.Errorf("context provider '%s' not found", title)
}

// AddContextProviders registers new context providers, skipping titles already present
func (g *Generator) AddContextProviders(providers ...ContextProvider) {
	for _, provider := range providers {
		if _, err := g.ContextProvider(provider.Title()); err != nil {
			g.contextProviders = append(g.contextProviders, provider)
		}
	}
}

// RemoveContextProviders Unregisters existing context providers.
func (g *Generator) RemoveContextProviders(titles ...string) {
	g.contextProviders = slices.DeleteFunc(g.contextProviders, func(p ContextProvider) bool {
		return slices.Contains(titles, p.Title())
	})
}

// Generate renders the prompt without any token limit
func (g *Generator) Generate() string {
	infos := make([]string, len(g.contextProviders))
	for idx, p := range g.contextProviders {
		infos[idx] = p.Info()
	}
	return g.render(infos)
}

// GenerateFor renders the prompt with every provider info trimmed to the
// provider token limit of the tokenizer selected by tcx.
func (g *Generator) GenerateFor(ctx context.Context, tcx tokenizer.Context) (string, error) {
	infos := make([]string, len(g.contextProviders))
	for idx, p := range g.contextProviders {
		info := p.Info()
		if g.providerMaxTokens > 0 {
			trimmed, err := g.trimmer.Trim(ctx, info, g.providerMaxTokens, tcx)
			if err != nil {
				return "", fmt.Errorf("context provider '%s': %w", p.Title(), err)
			}
			info = trimmed
		}
		infos[idx] = info
	}
	return g.render(infos), nil
}

func (g *Generator) render(infos []string) string {
	promptParts := make([]string, 0, len(infos)*3+3)
	promptParts = append(promptParts, g.content, "")
	if len(infos) > 0 {
		promptParts = append(promptParts, "# EXTRA INFORMATION AND CONTEXT")
		for idx, provider := range g.contextProviders {
			if info := infos[idx]; info != "" {
				promptParts = append(promptParts, fmt.Sprintf("## %s", provider.Title()), info, "")
			}
		}
	}
	return strings.TrimSpace(strings.Join(promptParts, "\n"))
}
