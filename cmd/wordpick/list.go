package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordpick/internal/bootstrap"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the fallback word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			list, err := bootstrap.LoadWordList(cfg.Words)
			if err != nil {
				return fmt.Errorf("bootstrap.LoadWordList > %w", err)
			}
			for _, word := range list.Words() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), word); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
			}
			return nil
		},
	}
}
