package trimmer

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components/tokenizer"
)

// Trimmer truncates text so that its encoded length fits a token budget.
// It holds no state between calls and is safe for concurrent use.
type Trimmer struct {
	Options
}

// New creates a Trimmer; without options it keeps the tail and resolves
// tokenizers with tokenizer.DefaultResolver.
func New(opts ...Option) *Trimmer {
	ret := new(Trimmer)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

var defaultTrimmer = New()

// TrimTokens trims text to at most maxTokens tokens of the tokenizer selected
// for tcx, keeping the end of the text.
func TrimTokens(ctx context.Context, text string, maxTokens int, tcx tokenizer.Context) (string, error) {
	return defaultTrimmer.Trim(ctx, text, maxTokens, tcx)
}

// Trim returns text unchanged when it already fits maxTokens. Otherwise it
// keeps maxTokens tokens from the end (KeepTail) or start (KeepHead) and
// moves the cut to the nearest grapheme cluster boundary inside the kept
// region, so the result is a substring of text that is valid UTF-8.
func (t *Trimmer) Trim(ctx context.Context, text string, maxTokens int, tcx tokenizer.Context) (string, error) {
	const op = "trimmer.Trim"
	if maxTokens <= 0 {
		return "", tokenizer.InvalidArgument(op, "maxTokens must be positive")
	}
	if text == "" {
		return "", nil
	}
	tk := t.Tokenizer(tcx)
	tokens, err := tk.Encode(ctx, text)
	if err != nil {
		return "", tokenizer.Failure(op, err)
	}
	total := len(tokens)
	if total <= maxTokens {
		return text, nil
	}
	align, err := tokenizer.Align(ctx, tk, text, tokens)
	if err != nil {
		return "", err
	}
	var ret string
	if align == nil {
		kept := tokens[total-maxTokens:]
		if t.strategy == KeepHead {
			kept = tokens[:maxTokens]
		}
		decoded, err := tk.Decode(ctx, kept)
		if err != nil {
			return "", tokenizer.Failure(op, err)
		}
		ret = strings.ToValidUTF8(decoded, "")
	} else if t.strategy == KeepHead {
		ret = head(align, text, maxTokens)
	} else {
		ret = tail(align, text, total-maxTokens)
	}
	t.logger.Debug("trimmed text",
		zap.String("tokenizer", tk.Name()),
		zap.String("strategy", t.strategy.String()),
		zap.Int("tokens", total),
		zap.Int("max_tokens", maxTokens),
		zap.Int("bytes", len(text)),
		zap.Int("trimmed_bytes", len(ret)))
	return ret, nil
}

// Count returns the number of tokens of text under the tokenizer selected for tcx.
func (t *Trimmer) Count(ctx context.Context, text string, tcx tokenizer.Context) (int, error) {
	return tokenizer.Count(ctx, t.Tokenizer(tcx), text)
}

// tail keeps the text from token pos on. If the first whole grapheme cluster
// lies beyond the end, a codepoint boundary is used; if even that is empty
// the final codepoint is returned.
func tail(align *tokenizer.Alignment, text string, pos int) string {
	off := align.Offset(pos)
	if b := align.NextBoundary(off); b < len(text) {
		return text[b:]
	}
	if b := align.NextRuneStart(off); b < len(text) {
		return text[b:]
	}
	_, size := utf8.DecodeLastRuneInString(text)
	return text[len(text)-size:]
}

// head keeps the text before token pos, mirroring tail.
func head(align *tokenizer.Alignment, text string, pos int) string {
	off := align.Offset(pos)
	if b := align.PrevBoundary(off); b > 0 {
		return text[:b]
	}
	if b := align.PrevRuneStart(off); b > 0 {
		return text[:b]
	}
	_, size := utf8.DecodeRuneInString(text)
	return text[:size]
}
