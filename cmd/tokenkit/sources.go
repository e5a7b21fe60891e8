package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components/document"
	"github.com/bububa/tokenkit/components/llm/cohere"
	"github.com/bububa/tokenkit/components/tokenizer"
	cohereTokenizer "github.com/bububa/tokenkit/components/tokenizer/cohere"
)

const defaultAWSRegion = "us-east-1"

// newResolver registers the remote Cohere tokenizer when COHERE_API_KEY is set
func newResolver(logger *zap.Logger) *tokenizer.Resolver {
	opts := []tokenizer.ResolverOption{tokenizer.WithLogger(logger)}
	if authToken := os.Getenv("COHERE_API_KEY"); authToken != "" {
		clt := cohere.NewClient(authToken, os.Getenv("COHERE_API_BASE_URL"))
		opts = append(opts, tokenizer.WithStrategy(tokenizer.ProviderCohere, cohereTokenizer.Strategy(clt)))
	}
	return tokenizer.NewResolver(opts...)
}

// newS3Client builds an S3 client from the standard AWS_* environment variables
func newS3Client() *s3.Client {
	opts := s3.Options{
		Region: defaultAWSRegion,
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		opts.Region = region
	}
	for _, key := range []string{"AWS_ENDPOINT_URL_S3", "AWS_ENDPOINT_URL"} {
		if endpoint := os.Getenv(key); endpoint != "" {
			opts.BaseEndpoint = aws.String(endpoint)
			opts.UsePathStyle = true
			break
		}
	}
	if id := os.Getenv("AWS_ACCESS_KEY_ID"); id != "" {
		creds := aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		}
		opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return creds, nil
		})
	}
	return s3.New(opts)
}

// parseS3URL splits s3://bucket/key
func parseS3URL(link string) (string, string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 url %q, want s3://bucket/key", link)
	}
	return u.Host, key, nil
}

func readS3(ctx context.Context, link string, logger *zap.Logger) (string, error) {
	bucket, key, err := parseS3URL(link)
	if err != nil {
		return "", err
	}
	doc, err := document.NewS3(
		document.WithS3Client(newS3Client()),
		document.WithS3Bucket(bucket),
		document.WithS3Key(key),
	)
	if err != nil {
		return "", err
	}
	if err := doc.ReadAll(ctx); err != nil {
		return "", err
	}
	logger.Debug("read s3 object", zap.String("bucket", bucket), zap.String("key", key), zap.Int("bytes", doc.Len()))
	return document.Text(ctx, &doc.Document)
}
