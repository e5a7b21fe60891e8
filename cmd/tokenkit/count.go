package main

import (
	"context"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"github.com/bububa/tokenkit/components/tokenizer"
)

type countOutput struct {
	Tokenizer string `json:"tokenizer"`
	Tokens    int    `json:"tokens"`
	Runes     int    `json:"runes"`
	Bytes     int    `json:"bytes"`
}

func countCmd() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Count the tokens of text",
		ArgsUsage: "[text...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()
			tk := e.resolver.Resolve(e.settings.TokenizerContext())
			n, err := tokenizer.Count(ctx, tk, e.input)
			if err != nil {
				return err
			}
			return writeJSON(cmd.Root().Writer, countOutput{
				Tokenizer: tk.Name(),
				Tokens:    n,
				Runes:     utf8.RuneCountInString(e.input),
				Bytes:     len(e.input),
			})
		},
	}
}
