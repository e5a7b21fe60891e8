package document

import (
	"bytes"
	"errors"
	"maps"
)

var ErrReading = errors.New("document is reading")

type ReadStatus = int32

const (
	Unread ReadStatus = iota
	Reading
	ReadCompleted
)

// Document is a document container with metadata
type Document struct {
	buffer *bytes.Buffer
	meta   map[string]string
}

// NewDocument wraps raw content
func NewDocument(content []byte, meta map[string]string) *Document {
	if meta == nil {
		meta = make(map[string]string)
	}
	return &Document{
		buffer: bytes.NewBuffer(content),
		meta:   meta,
	}
}

func (d *Document) Reader() *bytes.Reader {
	return bytes.NewReader(d.buffer.Bytes())
}

func (d *Document) Bytes() []byte {
	return d.buffer.Bytes()
}

func (d *Document) Len() int {
	return d.buffer.Len()
}

// Meta returns a copy of the document metadata
func (d *Document) Meta() map[string]string {
	return maps.Clone(d.meta)
}

func (d *Document) SetMeta(key string, value string) {
	d.meta[key] = value
}
