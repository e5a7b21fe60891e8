package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/bububa/tokenkit/components/trimmer"
	"github.com/bububa/tokenkit/config"
)

type trimOutput struct {
	Tokenizer      string `json:"tokenizer"`
	Strategy       string `json:"strategy"`
	MaxTokens      int    `json:"max_tokens"`
	OriginalTokens int    `json:"original_tokens"`
	Tokens         int    `json:"tokens"`
	Text           string `json:"text"`
}

func trimCmd() *cli.Command {
	return &cli.Command{
		Name:      "trim",
		Usage:     "Trim text to a maximum number of tokens",
		ArgsUsage: "[text...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-tokens",
				Usage: "token budget",
				Value: config.DefaultMaxTokens,
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "which end to keep: tail or head",
				Value: trimmer.KeepTail.String(),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()
			tcx := e.settings.TokenizerContext()
			tm := trimmer.New(
				trimmer.WithResolver(e.resolver),
				trimmer.WithStrategy(e.settings.TrimStrategy()),
				trimmer.WithLogger(e.logger),
			)
			original, err := tm.Count(ctx, e.input, tcx)
			if err != nil {
				return err
			}
			text, err := tm.Trim(ctx, e.input, e.settings.MaxTokens, tcx)
			if err != nil {
				return err
			}
			tokens, err := tm.Count(ctx, text, tcx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.Root().Writer, trimOutput{
				Tokenizer:      tm.Tokenizer(tcx).Name(),
				Strategy:       e.settings.TrimStrategy().String(),
				MaxTokens:      e.settings.MaxTokens,
				OriginalTokens: original,
				Tokens:         tokens,
				Text:           text,
			})
		},
	}
}
