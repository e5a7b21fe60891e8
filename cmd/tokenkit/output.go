package main

import (
	"context"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components/tokenizer"
	"github.com/bububa/tokenkit/config"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// env is what every subcommand needs before it can run
type env struct {
	settings *config.Settings
	logger   *zap.Logger
	resolver *tokenizer.Resolver
	input    string
}

func setup(ctx context.Context, cmd *cli.Command) (*env, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	input, err := readInput(ctx, cmd, logger)
	if err != nil {
		return nil, err
	}
	return &env{
		settings: settings,
		logger:   logger,
		resolver: newResolver(logger),
		input:    input,
	}, nil
}
