package document

import (
	"bytes"
	"context"
	"io"

	"github.com/fumiama/go-docx"
)

// DocxParser is a parser which parse docx paragraphs and tables to text
type DocxParser struct{}

var _ Parser = (*DocxParser)(nil)

func (p *DocxParser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	doc, err := docx.Parse(reader, reader.Size())
	if err != nil {
		return err
	}
	for idx, it := range doc.Document.Body.Items {
		var content string
		switch t := it.(type) {
		case *docx.Paragraph:
			content = t.String()
		case *docx.Table:
			content = t.String()
		}
		if idx > 0 {
			if _, err := writer.Write([]byte{'\n', '\n'}); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(writer, content); err != nil {
			return err
		}
	}
	return nil
}
