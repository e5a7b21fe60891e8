package document

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/atomic"
)

// S3API is the part of *s3.Client an S3 document needs
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 is a Document stored as an S3 object. The object is read once.
type S3 struct {
	status *atomic.Int32
	client S3API
	bucket string
	key    string
	Document
}

type S3Option func(*S3)

func WithS3Bucket(bucket string) S3Option {
	return func(s *S3) {
		s.bucket = bucket
	}
}

func WithS3Key(key string) S3Option {
	return func(s *S3) {
		s.key = key
	}
}

func WithS3Client(clt S3API) S3Option {
	return func(s *S3) {
		s.client = clt
	}
}

func NewS3(opts ...S3Option) (*S3, error) {
	ret := &S3{
		status: atomic.NewInt32(Unread),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.client == nil {
		return nil, fmt.Errorf("s3 document: no client")
	}
	if ret.bucket == "" || ret.key == "" {
		return nil, fmt.Errorf("s3 document: bucket and key are required")
	}
	ret.Document = *NewDocument(nil, map[string]string{
		"source": "s3",
		"bucket": ret.bucket,
		"key":    ret.key,
	})
	return ret, nil
}

func (s *S3) ReadStatus() ReadStatus {
	return s.status.Load()
}

// ReadAll downloads the object into the document buffer.
// Calling it again after a successful read is a no-op.
func (s *S3) ReadAll(ctx context.Context) error {
	if !s.status.CompareAndSwap(Unread, Reading) {
		if s.ReadStatus() == ReadCompleted {
			return nil
		}
		return ErrReading
	}
	if err := s.fetch(ctx); err != nil {
		s.buffer.Reset()
		s.status.Store(Unread)
		return err
	}
	s.status.Store(ReadCompleted)
	return nil
}

func (s *S3) fetch(ctx context.Context) error {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer resp.Body.Close()
	if ct := aws.ToString(resp.ContentType); ct != "" {
		s.meta["content_type"] = ct
	}
	if resp.LastModified != nil {
		s.meta["modtime"] = strconv.FormatInt(resp.LastModified.Unix(), 10)
	}
	if n := aws.ToInt64(resp.ContentLength); n > 0 {
		s.buffer.Grow(int(n))
	}
	_, err = io.Copy(s.buffer, resp.Body)
	return err
}
