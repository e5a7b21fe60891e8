package systemprompt

import "strings"

// ContextProvider is an interface that defines the title and info of a context provider
type ContextProvider interface {
	Title() string
	Info() string
}

// TextProvider is a ContextProvider over fixed text, e.g. retrieved document chunks
type TextProvider struct {
	title string
	info  string
}

var _ ContextProvider = (*TextProvider)(nil)

func NewTextProvider(title string, info string) *TextProvider {
	return &TextProvider{title: title, info: info}
}

// NewChunksProvider joins chunks with blank lines
func NewChunksProvider(title string, chunks []string) *TextProvider {
	return NewTextProvider(title, strings.Join(chunks, "\n\n"))
}

func (p *TextProvider) Title() string {
	return p.title
}

func (p *TextProvider) Info() string {
	return p.info
}
