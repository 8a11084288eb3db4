package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordpick/internal/config"
	"github.com/at-ishikawa/wordpick/internal/history"
	"github.com/at-ishikawa/wordpick/internal/wordlist"
	"github.com/at-ishikawa/wordpick/internal/wordsource"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Words: config.WordsConfig{
			Remote: config.RemoteConfig{Length: 5},
		},
		History: config.HistoryConfig{
			Backend: config.HistoryBackendNone,
			File:    filepath.Join(t.TempDir(), "draws.yml"),
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "wordpick",
			Username: "user",
		},
	}
}

func TestNewComponents(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("length"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Crane"]`))
	}))
	defer remote.Close()

	fallbackFile := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(fallbackFile, []byte("# custom\nSLATE\n"), 0644))

	tests := []struct {
		name       string
		modify     func(cfg *config.Config)
		wantWord   string
		wantOrigin wordsource.Origin
		wantSaved  int
	}{
		{
			name: "remote word",
			modify: func(cfg *config.Config) {
				cfg.Words.Remote.Enabled = true
				cfg.Words.Remote.URL = remote.URL
			},
			wantWord:   "crane",
			wantOrigin: wordsource.OriginRemote,
		},
		{
			name: "remote disabled uses the fallback file",
			modify: func(cfg *config.Config) {
				cfg.Words.FallbackFile = fallbackFile
			},
			wantWord:   "slate",
			wantOrigin: wordsource.OriginFallback,
		},
		{
			name: "draws are recorded to the yaml history",
			modify: func(cfg *config.Config) {
				cfg.Words.Remote.Enabled = true
				cfg.Words.Remote.URL = remote.URL
				cfg.History.Backend = config.HistoryBackendYAML
			},
			wantWord:   "crane",
			wantOrigin: wordsource.OriginRemote,
			wantSaved:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			tt.modify(cfg)

			components, err := NewComponents(cfg)
			require.NoError(t, err)
			defer func() {
				assert.NoError(t, components.Close())
			}()

			draw := components.Source.Draw(context.Background())
			assert.Equal(t, tt.wantWord, draw.Word)
			assert.Equal(t, tt.wantOrigin, draw.Origin)

			if tt.wantSaved == 0 {
				return
			}
			require.NotNil(t, components.History)
			draws, err := components.History.FindRecent(context.Background(), 10)
			require.NoError(t, err)
			assert.Len(t, draws, tt.wantSaved)
		})
	}
}

func TestNewComponents_MissingFallbackFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Words.FallbackFile = filepath.Join(t.TempDir(), "missing.txt")

	_, err := NewComponents(cfg)
	assert.Error(t, err)
}

func TestLoadWordList(t *testing.T) {
	list, err := LoadWordList(config.WordsConfig{})
	require.NoError(t, err)
	assert.Equal(t, wordlist.Default().Len(), list.Len())

	emptyFile := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(emptyFile, []byte("# nothing\n"), 0644))
	_, err = LoadWordList(config.WordsConfig{FallbackFile: emptyFile})
	assert.ErrorIs(t, err, wordlist.ErrEmpty)
}

func TestOpenHistory(t *testing.T) {
	tests := []struct {
		name       string
		backend    config.HistoryBackend
		wantType   any
		wantCloser bool
		wantErr    bool
	}{
		{name: "none", backend: config.HistoryBackendNone},
		{name: "yaml", backend: config.HistoryBackendYAML, wantType: &history.YAMLRepository{}},
		{name: "mysql", backend: config.HistoryBackendMySQL, wantType: &history.DBRepository{}, wantCloser: true},
		{name: "unknown", backend: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository, closer, err := OpenHistory(newTestConfig(t), tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantType == nil {
				assert.Nil(t, repository)
			} else {
				assert.IsType(t, tt.wantType, repository)
			}
			if tt.wantCloser {
				require.NotNil(t, closer)
				assert.NoError(t, closer())
			} else {
				assert.Nil(t, closer)
			}
		})
	}
}
