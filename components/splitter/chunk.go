package splitter

import (
	"strconv"

	"github.com/google/uuid"
)

// Chunk represents a piece of text with associated metadata for tracking its position
// and size within the original document.
type Chunk struct {
	// Index is the position of the chunk in the sequence
	Index int `json:"index"`
	// Text contains the actual content of the chunk
	Text string `json:"text"`
	// Offset is the byte offset of Text in the source, -1 when the tokenizer
	// cannot map tokens back to source bytes
	Offset int `json:"offset"`
	// Start is the index of the first token in this chunk
	Start int `json:"start"`
	// End is the index of the last token in this chunk (exclusive)
	End int `json:"end"`
	// TokenSize represents the number of tokens in this chunk
	TokenSize int `json:"token_size"`
}

// ID returns a name based UUID of the chunk text and offset, stable across runs.
func (c Chunk) ID() string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(c.Offset)+":"+c.Text)).String()
}

// Texts returns the text of every chunk
func Texts(chunks []Chunk) []string {
	ret := make([]string, len(chunks))
	for idx, v := range chunks {
		ret[idx] = v.Text
	}
	return ret
}
