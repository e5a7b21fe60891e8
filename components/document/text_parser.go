package document

import (
	"bytes"
	"context"
	"io"
)

// TextParser copies plain text, replacing invalid UTF-8 sequences
type TextParser struct{}

var _ Parser = (*TextParser)(nil)

func (p *TextParser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	bs, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	_, err = writer.Write(bytes.ToValidUTF8(bs, []byte("�")))
	return err
}
