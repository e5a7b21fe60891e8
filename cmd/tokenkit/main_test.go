package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) ([]byte, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.Reader = strings.NewReader(stdin)
	err := app.Run(context.Background(), append([]string{"tokenkit"}, args...))
	return buf.Bytes(), err
}

func TestChunkCmd(t *testing.T) {
	out, err := run(t, "", "chunk", "--encoding", "characters", "--chunk-size", "6", "--bleed", "2", "hello", "world")
	require.NoError(t, err)
	var got chunkOutput
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "characters", got.Tokenizer)
	require.Len(t, got.Chunks, 3)
	texts := make([]string, 0, len(got.Chunks))
	for _, c := range got.Chunks {
		texts = append(texts, c.Text)
		assert.NotEmpty(t, c.ID)
	}
	assert.Equal(t, []string{"hello ", "o worl", "rld"}, texts)
	assert.Equal(t, 4, got.Chunks[1].Offset)
}

func TestChunkCmdInvalidBleed(t *testing.T) {
	_, err := run(t, "", "chunk", "--encoding", "characters", "--chunk-size", "4", "--bleed", "4", "text")
	assert.Error(t, err)
}

func TestTrimCmd(t *testing.T) {
	out, err := run(t, "hello world", "trim", "--encoding", "characters", "--max-tokens", "5")
	require.NoError(t, err)
	var got trimOutput
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "world", got.Text)
	assert.Equal(t, 11, got.OriginalTokens)
	assert.Equal(t, 5, got.Tokens)
	assert.Equal(t, "tail", got.Strategy)

	out, err = run(t, "", "trim", "--encoding", "characters", "--max-tokens", "5", "--strategy", "head", "hello", "world")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "hello", got.Text)

	_, err = run(t, "", "trim", "--max-tokens", "0", "text")
	assert.Error(t, err)
}

func TestCountCmdFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(fname, []byte("héllo"), 0o600))
	out, err := run(t, "", "count", "--encoding", "characters", "--file", fname)
	require.NoError(t, err)
	var got countOutput
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, countOutput{Tokenizer: "characters", Tokens: 5, Runes: 5, Bytes: 6}, got)
}

func TestConfigFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "tokenkit.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("encoding: characters\nmax_tokens: 3\n"), 0o600))
	out, err := run(t, "", "trim", "--config", fname, "abcdef")
	require.NoError(t, err)
	var got trimOutput
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "def", got.Text)
}

func TestCountCmdS3(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notes/a.txt" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("héllo"))
	}))
	defer srv.Close()
	t.Setenv("AWS_ENDPOINT_URL_S3", srv.URL)
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	out, err := run(t, "", "count", "--encoding", "characters", "--s3", "s3://notes/a.txt")
	require.NoError(t, err)
	var got countOutput
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, countOutput{Tokenizer: "characters", Tokens: 5, Runes: 5, Bytes: 6}, got)

	_, err = run(t, "", "count", "--s3", "s3://notes/b.txt")
	assert.Error(t, err)
	_, err = run(t, "", "count", "--s3", "https://notes/a.txt")
	assert.Error(t, err)
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		link    string
		bucket  string
		key     string
		wantErr bool
	}{
		{link: "s3://bucket/dir/file.pdf", bucket: "bucket", key: "dir/file.pdf"},
		{link: "s3://bucket/", wantErr: true},
		{link: "s3:///key", wantErr: true},
		{link: "file:///tmp/x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			bucket, key, err := parseS3URL(tt.link)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestCountCmdCohere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/tokenize"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tokens": [1, 2, 3], "token_strings": ["he", "llo", " world"]}`))
	}))
	defer srv.Close()
	t.Setenv("COHERE_API_KEY", "test-key")
	t.Setenv("COHERE_API_BASE_URL", srv.URL)

	out, err := run(t, "", "count", "--provider", "Cohere", "--model", "command-r", "hello world")
	require.NoError(t, err)
	var got countOutput
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "cohere:command-r", got.Tokenizer)
	assert.Equal(t, 3, got.Tokens)
}
