package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/atomic"
)

// Http is a Document fetched from a URL. The body is read once.
type Http struct {
	status  *atomic.Int32
	client  *http.Client
	link    string
	method  string
	payload []byte
	Document
}

type HttpConfig struct {
	client  *http.Client
	link    string
	method  string
	payload []byte
}

type HttpOption func(*HttpConfig)

func WithHttpMethod(method string) HttpOption {
	return func(h *HttpConfig) {
		h.method = method
	}
}

func WithHttpURL(link string) HttpOption {
	return func(h *HttpConfig) {
		h.link = link
	}
}

func WithPayload(payload []byte) HttpOption {
	return func(h *HttpConfig) {
		h.payload = payload
	}
}

func WithHttpClient(client *http.Client) HttpOption {
	return func(h *HttpConfig) {
		h.client = client
	}
}

func NewHttp(opts ...HttpOption) (*Http, error) {
	var cfg HttpConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.link == "" {
		return nil, fmt.Errorf("http document: empty url")
	}
	if cfg.method == "" {
		cfg.method = http.MethodGet
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	return &Http{
		status:  atomic.NewInt32(Unread),
		client:  cfg.client,
		link:    cfg.link,
		method:  cfg.method,
		payload: cfg.payload,
		Document: *NewDocument(nil, map[string]string{
			"url":    cfg.link,
			"method": cfg.method,
		}),
	}, nil
}

func (h *Http) ReadStatus() ReadStatus {
	return h.status.Load()
}

// ReadAll fetches the body into the document buffer.
// Calling it again after a successful read is a no-op.
func (h *Http) ReadAll(ctx context.Context) error {
	if !h.status.CompareAndSwap(Unread, Reading) {
		if h.ReadStatus() == ReadCompleted {
			return nil
		}
		return ErrReading
	}
	if err := h.fetch(ctx); err != nil {
		h.buffer.Reset()
		h.status.Store(Unread)
		return err
	}
	h.status.Store(ReadCompleted)
	return nil
}

func (h *Http) fetch(ctx context.Context) error {
	var body io.Reader
	if h.payload != nil {
		body = bytes.NewReader(h.payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, h.method, h.link, body)
	if err != nil {
		return err
	}
	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("fetch %s: %s", h.link, httpResp.Status)
	}
	if ct := httpResp.Header.Get("Content-Type"); ct != "" {
		h.meta["content_type"] = ct
	}
	_, err = io.Copy(h.buffer, httpResp.Body)
	return err
}
