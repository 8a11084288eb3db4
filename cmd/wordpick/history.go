package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/wordpick/internal/bootstrap"
	"github.com/at-ishikawa/wordpick/internal/cli"
	"github.com/at-ishikawa/wordpick/internal/config"
)

type historyBackend config.HistoryBackend

func (b *historyBackend) Set(val string) error {
	for _, backend := range config.AllHistoryBackends {
		if val == string(backend) {
			*b = historyBackend(backend)
			return nil
		}
	}
	return fmt.Errorf("invalid history backend: %s", val)
}

func (b historyBackend) String() string {
	return string(b)
}

func (b *historyBackend) Type() string {
	return "backend"
}

var _ pflag.Value = (*historyBackend)(nil)

var errHistoryDisabled = errors.New("history is disabled. Set history.backend in the config or pass --backend")

func newHistoryCommand() *cobra.Command {
	var limit int
	var backend historyBackend

	command := &cobra.Command{
		Use:   "history",
		Short: "Show recent word draws",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("limit must be positive: %d", limit)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			selected := cfg.History.Backend
			if cmd.Flags().Changed("backend") {
				selected = config.HistoryBackend(backend)
			}

			repository, closer, err := bootstrap.OpenHistory(cfg, selected)
			if err != nil {
				return fmt.Errorf("bootstrap.OpenHistory > %w", err)
			}
			if closer != nil {
				defer func() {
					_ = closer()
				}()
			}
			if repository == nil {
				return errHistoryDisabled
			}

			draws, err := repository.FindRecent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("repository.FindRecent > %w", err)
			}
			return cli.NewDrawPrinter(cmd.OutOrStdout(), false).PrintHistory(draws)
		},
	}
	flags := command.Flags()
	flags.IntVar(&limit, "limit", 20, "number of draws to show")
	flags.Var(&backend, "backend", fmt.Sprintf("history backend to read. Possible values are %v", config.AllHistoryBackends))
	return command
}
