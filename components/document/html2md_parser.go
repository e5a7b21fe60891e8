package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"slices"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// HTML2MDParser converts html into markdown so that tags do not count
// against a token budget.
type HTML2MDParser struct {
	opts   []converter.ConvertOptionFunc
	domain string
}

var _ Parser = (*HTML2MDParser)(nil)

func NewHTML2MDParser(opts ...converter.ConvertOptionFunc) *HTML2MDParser {
	return &HTML2MDParser{
		opts: opts,
	}
}

// SetDomain resolves relative links against domain, usually the url the page was fetched from
func (h *HTML2MDParser) SetDomain(domain string) *HTML2MDParser {
	h.domain = domain
	return h
}

// Parse writes the markdown of the html read from reader to writer.
// Surrounding whitespace is dropped and runs of blank lines collapse to one.
func (h *HTML2MDParser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := h.opts
	if h.domain != "" {
		opts = append(slices.Clip(opts), converter.WithDomain(h.domain))
	}
	bs, err := htmltomarkdown.ConvertReader(reader, opts...)
	if err != nil {
		return fmt.Errorf("convert html: %w", err)
	}
	bs = blankLines.ReplaceAll(bytes.TrimSpace(bs), []byte("\n\n"))
	_, err = writer.Write(bs)
	return err
}
