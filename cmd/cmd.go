package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/intarr/eval"
	"github.com/rubiojr/intarr/host"
)

// Execute runs the intarr CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "intarr",
		Usage:                  "A minimalist, array-oriented toy language",
		Version:                version,
		UseShortOptionHandling: true,
		ArgsUsage:              "<file> [args...]",
		// `intarr script.ints [args...]` is shorthand for `intarr run script.ints [args...]`.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				return usageError()
			}
			return runFile(cmd.Args().First(), cmd.Args().Tail())
		},
		Commands: []*cli.Command{
			{
				Name:            "run",
				Usage:           "Run an intarr source file",
				ArgsUsage:       "<file> [args...]",
				SkipFlagParsing: true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() < 1 {
						return usageError()
					}
					return runFile(cmd.Args().First(), cmd.Args().Tail())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func usageError() error {
	return fmt.Errorf("Usage: %s <filename> [args...]", os.Args[0])
}

func runFile(path string, args []string) error {
	if err := eval.Run(path, args, host.New()); err != nil {
		return fmt.Errorf("Error: %s", err)
	}
	return nil
}
