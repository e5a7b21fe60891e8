package tokenizer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphemeBoundaries(t *testing.T) {
	text := "a👋🏽b"
	got := GraphemeBoundaries(text)
	require.Len(t, got, len(text)+1)
	var offsets []int
	for i, ok := range got {
		if ok {
			offsets = append(offsets, i)
		}
	}
	// "a" | "👋🏽" (wave + skin tone modifier, 8 bytes) | "b"
	assert.Equal(t, []int{0, 1, 9, 10}, offsets)
}

func TestAlignCharacters(t *testing.T) {
	ctx := context.Background()
	text := "a👋🏽b"
	tokens, err := Characters{}.Encode(ctx, text)
	require.NoError(t, err)
	align, err := Align(ctx, Characters{}, text, tokens)
	require.NoError(t, err)
	require.NotNil(t, align)

	assert.Equal(t, 0, align.Offset(0))
	assert.Equal(t, len(text), align.Offset(len(tokens)))
	assert.True(t, align.Clean(0))
	assert.True(t, align.Clean(1))
	// the skin tone modifier continues the cluster
	assert.False(t, align.Clean(2))
	assert.True(t, align.Clean(3))

	assert.Equal(t, 9, align.NextBoundary(2))
	assert.Equal(t, 1, align.PrevBoundary(5))
	assert.Equal(t, 5, align.NextRuneStart(2))
	assert.Equal(t, 1, align.PrevRuneStart(3))
}

func TestAlignTikToken(t *testing.T) {
	ctx := context.Background()
	tk, err := NewTikToken(DefaultEncoding)
	require.NoError(t, err)
	text := strings.Repeat("Hello 👋 World 🌍\n\t", 4)
	tokens, err := tk.Encode(ctx, text)
	require.NoError(t, err)
	align, err := Align(ctx, tk, text, tokens)
	require.NoError(t, err)
	require.NotNil(t, align)
	for i := 1; i <= len(tokens); i++ {
		assert.GreaterOrEqual(t, align.Offset(i), align.Offset(i-1))
	}
	assert.Equal(t, len(text), align.Offset(len(tokens)))
}

type spacingTokenizer struct{ Characters }

// Decode drops spaces so pieces never reassemble the source.
func (s spacingTokenizer) Decode(ctx context.Context, tokens []int) (string, error) {
	out, err := s.Characters.Decode(ctx, tokens)
	return strings.ReplaceAll(out, " ", ""), err
}

func TestAlignUnaligned(t *testing.T) {
	ctx := context.Background()
	text := "a b c"
	tokens, err := Characters{}.Encode(ctx, text)
	require.NoError(t, err)
	align, err := Align(ctx, spacingTokenizer{}, text, tokens)
	require.NoError(t, err)
	assert.Nil(t, align)
}
