package splitter

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components/tokenizer"
)

// Splitter partitions text into overlapping chunks bounded by token count.
// It holds no state between calls and is safe for concurrent use.
type Splitter struct {
	Options
}

// New returns a Splitter with DefaultChunkSize and DefaultBleed unless overridden.
func New(opts ...Option) *Splitter {
	ret := &Splitter{
		Options: Options{
			chunkSize: DefaultChunkSize,
			bleed:     DefaultBleed,
		},
	}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

// SplitChunks splits content into chunks of at most chunkSize tokens where
// adjacent chunks share bleed tokens.
func SplitChunks(ctx context.Context, content string, chunkSize int, bleed int, opts ...Option) ([]string, error) {
	opts = append(opts, WithChunkSize(chunkSize), WithBleed(bleed))
	return New(opts...).SplitText(ctx, content)
}

// SplitText returns the text of every chunk of content.
func (s *Splitter) SplitText(ctx context.Context, content string) ([]string, error) {
	chunks, err := s.Split(ctx, content)
	if err != nil {
		return nil, err
	}
	return Texts(chunks), nil
}

// Split partitions content into chunks. The algorithm:
// 1. Encodes the content once
// 2. Returns the content unchanged when it fits in one chunk
// 3. Slides a window of chunkSize tokens, starting every window bleed tokens
// before the previous one ended
// 4. Pulls window ends back so no chunk boundary cuts a grapheme cluster when
// the tokenizer's bytes map onto the source. When no such end keeps the
// overlap at exactly bleed tokens, the overlap grows instead of a codepoint
// being cut.
func (s *Splitter) Split(ctx context.Context, content string) ([]Chunk, error) {
	const op = "splitter.Split"
	if err := s.validate(op); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, nil
	}
	tk := s.Tokenizer()
	tokens, err := tk.Encode(ctx, content)
	if err != nil {
		return nil, tokenizer.Failure(op, err)
	}
	total := len(tokens)
	if total <= s.chunkSize {
		return []Chunk{{
			Text:      content,
			End:       total,
			TokenSize: total,
		}}, nil
	}
	align, err := tokenizer.Align(ctx, tk, content, tokens)
	if err != nil {
		return nil, err
	}
	chunks := make([]Chunk, 0, total/(s.chunkSize-s.bleed)+1)
	var searchFrom int
	for start := 0; ; {
		end, next := s.window(align, start, total)
		chunk := Chunk{
			Index:     len(chunks),
			Start:     start,
			End:       end,
			TokenSize: end - start,
		}
		if align != nil {
			chunk.Offset = align.Offset(start)
			chunk.Text = content[chunk.Offset:align.Offset(end)]
		} else {
			if chunk.Text, err = tk.Decode(ctx, tokens[start:end]); err != nil {
				return nil, tokenizer.Failure(op, err)
			}
			chunk.Offset = -1
			if idx := strings.Index(content[searchFrom:], chunk.Text); idx >= 0 {
				chunk.Offset = searchFrom + idx
				searchFrom = chunk.Offset
			}
		}
		chunks = append(chunks, chunk)
		if end >= total {
			break
		}
		start = next
	}
	s.logger.Debug("split content",
		zap.String("tokenizer", tk.Name()),
		zap.Int("tokens", total),
		zap.Int("chunks", len(chunks)),
		zap.Bool("aligned", align != nil))
	return chunks, nil
}

// window returns the exclusive end of the window starting at start and the
// start of the window after it. Boundaries are chosen in this order:
//  1. end and end-bleed both on grapheme boundaries, then both on codepoint starts
//  2. end on the last grapheme boundary (else codepoint start) of the window, and
//     the next window starting at the last such boundary in (start, end-bleed],
//     so the overlap is at least bleed tokens
//  3. end on the last codepoint start and the next window at the first codepoint
//     start after start, which shrinks the overlap below bleed
//  4. the hard cut, only when a single codepoint is wider than the window
func (s *Splitter) window(align *tokenizer.Alignment, start int, total int) (int, int) {
	end := min(start+s.chunkSize, total)
	if end == total {
		return end, end
	}
	if align == nil {
		return end, end - s.bleed
	}
	cleans := []func(int) bool{align.Clean, align.RuneClean}
	lowest := start + s.bleed + 1
	for _, clean := range cleans {
		for e := end; e >= lowest; e-- {
			if clean(e) && clean(e-s.bleed) {
				return e, e - s.bleed
			}
		}
	}
	for _, clean := range cleans {
		e := lastClean(clean, start+1, end)
		if e < 0 {
			continue
		}
		if next := lastClean(clean, start+1, e-s.bleed); next > 0 {
			s.logger.Debug("chunk overlap widened", zap.Int("start", start), zap.Int("end", e), zap.Int("overlap", e-next))
			return e, next
		}
	}
	if e := lastClean(align.RuneClean, start+1, end); e > 0 {
		next := e
		for p := start + 1; p < e; p++ {
			if align.RuneClean(p) {
				next = p
				break
			}
		}
		s.logger.Debug("chunk overlap narrowed", zap.Int("start", start), zap.Int("end", e), zap.Int("overlap", e-next))
		return e, next
	}
	s.logger.Warn("codepoint wider than chunk, cutting it", zap.Int("start", start), zap.Int("end", end))
	return end, end - s.bleed
}

// lastClean returns the highest pos in [lo, hi] accepted by clean, or -1.
func lastClean(clean func(int) bool, lo int, hi int) int {
	for pos := hi; pos >= lo; pos-- {
		if clean(pos) {
			return pos
		}
	}
	return -1
}
