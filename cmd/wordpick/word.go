package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordpick/internal/bootstrap"
	"github.com/at-ishikawa/wordpick/internal/cli"
)

const maxWordCount = 1000

func newWordCommand() *cobra.Command {
	var count int
	var concurrency int
	var verbose bool

	command := &cobra.Command{
		Use:   "word",
		Short: "Print random words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > maxWordCount {
				return fmt.Errorf("count must be between 1 and %d: %d", maxWordCount, count)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			components, err := bootstrap.NewComponents(cfg)
			if err != nil {
				return fmt.Errorf("bootstrap.NewComponents > %w", err)
			}
			defer func() {
				_ = components.Close()
			}()

			printer := cli.NewDrawPrinter(cmd.OutOrStdout(), verbose)
			for _, draw := range components.Source.DrawN(cmd.Context(), count, concurrency) {
				if err := printer.PrintDraw(draw); err != nil {
					return fmt.Errorf("printer.PrintDraw > %w", err)
				}
			}
			return nil
		},
	}
	command.Flags().IntVarP(&count, "count", "n", 1, "number of words to print")
	command.Flags().IntVar(&concurrency, "concurrency", 4, "maximum number of words fetched at the same time")
	command.Flags().BoolVar(&verbose, "verbose", false, "show where each word came from")
	return command
}
