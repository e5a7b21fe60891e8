package tokenizer

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/graphemes"
)

// Alignment maps token positions of an encoded text back to byte offsets of
// the text, and knows where grapheme clusters start. It only exists for
// tokenizers whose per-token bytes reassemble the text exactly.
type Alignment struct {
	text      string
	offsets   []int
	graphemes []bool
}

// Aligner is implemented by tokenizers that know whether decoding single
// tokens is worth trying, e.g. remote tokenizers that pay a request per call.
type Aligner interface {
	Aligned() bool
}

// Align decodes every token on its own and checks that the pieces concatenate
// to text. It returns nil when they don't, e.g. for tokenizers that normalise
// whitespace, and without decoding when tk reports it is not Aligned.
func Align(ctx context.Context, tk Tokenizer, text string, tokens []int) (*Alignment, error) {
	if a, ok := tk.(Aligner); ok && !a.Aligned() {
		return nil, nil
	}
	offsets := make([]int, len(tokens)+1)
	var sb strings.Builder
	sb.Grow(len(text))
	for i := range tokens {
		piece, err := tk.Decode(ctx, tokens[i:i+1])
		if err != nil {
			return nil, Failure("tokenizer.Align", err)
		}
		if sb.Len()+len(piece) > len(text) {
			return nil, nil
		}
		sb.WriteString(piece)
		offsets[i+1] = sb.Len()
	}
	if sb.String() != text {
		return nil, nil
	}
	return &Alignment{
		text:      text,
		offsets:   offsets,
		graphemes: GraphemeBoundaries(text),
	}, nil
}

// Offset returns the byte offset where token pos starts; Offset(len(tokens)) == len(text).
func (a *Alignment) Offset(pos int) int {
	return a.offsets[pos]
}

// Clean reports whether token pos starts on a grapheme cluster boundary.
func (a *Alignment) Clean(pos int) bool {
	return a.graphemes[a.offsets[pos]]
}

// RuneClean reports whether token pos starts on a codepoint boundary.
func (a *Alignment) RuneClean(pos int) bool {
	off := a.offsets[pos]
	return off == len(a.text) || utf8.RuneStart(a.text[off])
}

// NextBoundary returns the first grapheme boundary at or after byte off.
func (a *Alignment) NextBoundary(off int) int {
	for off < len(a.text) && !a.graphemes[off] {
		off++
	}
	return min(off, len(a.text))
}

// PrevBoundary returns the last grapheme boundary at or before byte off.
func (a *Alignment) PrevBoundary(off int) int {
	off = min(off, len(a.text))
	for off > 0 && !a.graphemes[off] {
		off--
	}
	return off
}

// NextRuneStart returns the first codepoint start at or after byte off.
func (a *Alignment) NextRuneStart(off int) int {
	for off < len(a.text) && !utf8.RuneStart(a.text[off]) {
		off++
	}
	return min(off, len(a.text))
}

// PrevRuneStart returns the last codepoint start at or before byte off.
func (a *Alignment) PrevRuneStart(off int) int {
	off = min(off, len(a.text))
	for off > 0 && off < len(a.text) && !utf8.RuneStart(a.text[off]) {
		off--
	}
	return off
}

// GraphemeBoundaries returns a slice of len(text)+1 where index i is true when
// a grapheme cluster starts at byte i. Both 0 and len(text) are boundaries.
func GraphemeBoundaries(text string) []bool {
	ret := make([]bool, len(text)+1)
	ret[0] = true
	var off int
	for _, seg := range graphemes.SegmentAll([]byte(text)) {
		off += len(seg)
		if off <= len(text) {
			ret[off] = true
		}
	}
	ret[len(text)] = true
	return ret
}
