package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components/document"
	"github.com/bububa/tokenkit/config"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a YAML settings file",
		},
		&cli.StringFlag{
			Name:  "provider",
			Usage: "model provider (OpenAI, Azure, Anthropic, ...)",
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "model name used to pick the tokenizer",
		},
		&cli.StringFlag{
			Name:    "encoding",
			Aliases: []string{"e"},
			Usage:   "force a tokenizer encoding (cl100k_base, o200k_base, characters)",
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "read input from a text, HTML, PDF or DOCX file",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "read input from a URL",
		},
		&cli.StringFlag{
			Name:  "s3",
			Usage: "read input from an S3 object, s3://bucket/key",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "debug logging",
		},
	}
}

// loadSettings merges the config file, environment and command line flags
func loadSettings(cmd *cli.Command) (*config.Settings, error) {
	s, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	for name, dist := range map[string]*string{
		"provider": &s.Provider,
		"model":    &s.Model,
		"encoding": &s.Encoding,
		"strategy": &s.Strategy,
	} {
		if cmd.IsSet(name) {
			*dist = cmd.String(name)
		}
	}
	for name, dist := range map[string]*int{
		"chunk-size": &s.ChunkSize,
		"bleed":      &s.Bleed,
		"max-tokens": &s.MaxTokens,
	} {
		if cmd.IsSet(name) {
			*dist = cmd.Int(name)
		}
	}
	if cmd.Bool("verbose") {
		s.LogLevel = "debug"
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level == "debug" {
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}

// readInput returns the text to work on: --file, --url, --s3, the positional
// arguments joined by spaces, or stdin.
func readInput(ctx context.Context, cmd *cli.Command, logger *zap.Logger) (string, error) {
	if fname := cmd.String("file"); fname != "" {
		doc, err := document.NewFile(fname)
		if err != nil {
			return "", err
		}
		logger.Debug("read file", zap.String("file", fname), zap.Int("bytes", doc.Len()))
		return document.Text(ctx, doc)
	}
	if link := cmd.String("url"); link != "" {
		doc, err := document.NewHttp(document.WithHttpURL(link))
		if err != nil {
			return "", err
		}
		if err := doc.ReadAll(ctx); err != nil {
			return "", err
		}
		logger.Debug("read url", zap.String("url", link), zap.Int("bytes", doc.Len()))
		return document.Text(ctx, &doc.Document)
	}
	if link := cmd.String("s3"); link != "" {
		return readS3(ctx, link, logger)
	}
	if cmd.Args().Len() > 0 {
		return strings.Join(cmd.Args().Slice(), " "), nil
	}
	bs, err := io.ReadAll(cmd.Root().Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(bs), nil
}
