package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Parser interface {
	Parse(context.Context, *bytes.Reader, io.Writer) error
}

const (
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeHTML = "text/html"
)

// ParserFor selects a parser for the detected mime type; anything unknown is read as text
func ParserFor(mtype *mimetype.MIME) Parser {
	for m := mtype; m != nil; m = m.Parent() {
		switch {
		case m.Is(MimePDF):
			return NewPDFParser()
		case m.Is(MimeDocx):
			return new(DocxParser)
		case m.Is(MimeHTML):
			return NewHTML2MDParser()
		}
	}
	return new(TextParser)
}

// Text detects the document type and returns its text content
func Text(ctx context.Context, doc *Document) (string, error) {
	mtype := mimetype.Detect(doc.Bytes())
	doc.SetMeta("mime", mtype.String())
	parser := ParserFor(mtype)
	if html, ok := parser.(*HTML2MDParser); ok {
		html.SetDomain(doc.Meta()["url"])
	}
	return ParseWith(ctx, parser, doc)
}

// ParseWith runs parser over the document content
func ParseWith(ctx context.Context, parser Parser, doc *Document) (string, error) {
	var sb strings.Builder
	if err := parser.Parse(ctx, doc.Reader(), &sb); err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	return sb.String(), nil
}
