package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/wordpick/internal/config"
	"github.com/at-ishikawa/wordpick/internal/database"
	"github.com/at-ishikawa/wordpick/internal/history"
	"github.com/at-ishikawa/wordpick/internal/wordlist"
	"github.com/at-ishikawa/wordpick/internal/wordsource"
	"github.com/at-ishikawa/wordpick/internal/wordsource/randomword"
)

// Components holds everything a command needs to draw words.
type Components struct {
	Source *wordsource.Source
	// History is nil when the history backend is none.
	History history.Repository

	closers []func() error
}

// Close releases the HTTP client and the database connection, if any.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func NewComponents(cfg *config.Config) (*Components, error) {
	components := &Components{}

	fallback, err := LoadWordList(cfg.Words)
	if err != nil {
		return nil, fmt.Errorf("LoadWordList > %w", err)
	}

	repository, closeHistory, err := OpenHistory(cfg, cfg.History.Backend)
	if err != nil {
		return nil, fmt.Errorf("OpenHistory > %w", err)
	}
	if closeHistory != nil {
		components.closers = append(components.closers, closeHistory)
	}
	components.History = repository

	var opts []wordsource.Option
	if repository != nil {
		opts = append(opts, wordsource.WithRecorder(history.NewRecorder(repository)))
	}

	// A nil interface, not a nil *randomword.Client, disables the remote fetch.
	var fetcher wordsource.Fetcher
	if cfg.Words.Remote.Enabled {
		client := NewRandomWordClient(cfg.Words.Remote)
		components.closers = append(components.closers, client.Close)
		fetcher = client
	}

	components.Source = wordsource.New(fetcher, fallback, opts...)
	return components, nil
}

func NewRandomWordClient(cfg config.RemoteConfig) *randomword.Client {
	return randomword.NewClient(randomword.Config{
		URL:           cfg.URL,
		Length:        cfg.Length,
		Timeout:       cfg.Timeout,
		RetryAttempts: cfg.RetryAttempts,
	})
}

// LoadWordList returns the list in cfg.FallbackFile, or the bundled list when it is empty.
func LoadWordList(cfg config.WordsConfig) (*wordlist.List, error) {
	if cfg.FallbackFile == "" {
		return wordlist.Default(), nil
	}
	list, err := wordlist.LoadFile(cfg.FallbackFile)
	if err != nil {
		return nil, fmt.Errorf("wordlist.LoadFile(%s) > %w", cfg.FallbackFile, err)
	}
	slog.Default().Debug("loaded the fallback word list",
		"file", cfg.FallbackFile,
		"words", list.Len(),
	)
	return list, nil
}

// OpenHistory returns the repository for backend. The repository and the closer are nil for
// the none backend.
func OpenHistory(cfg *config.Config, backend config.HistoryBackend) (history.Repository, func() error, error) {
	switch backend {
	case config.HistoryBackendNone, "":
		return nil, nil, nil
	case config.HistoryBackendYAML:
		return history.NewYAMLRepository(cfg.History.File), nil, nil
	case config.HistoryBackendMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open > %w", err)
		}
		return history.NewDBRepository(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported history backend: %s", backend)
	}
}
