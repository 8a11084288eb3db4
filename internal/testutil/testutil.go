// Package testutil provides shared test helpers for creating config files and a fake word API.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWords is the content of the fallback list written by SetupTestConfig.
var TestWords = []string{"slate", "audio", "pride"}

// ConfigOption configures optional fields of the generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	remoteURL      string
	historyBackend string
}

// WithRemoteURL enables the remote word API at url.
func WithRemoteURL(url string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.remoteURL = url
	}
}

// WithHistoryBackend overrides the default yaml history backend.
func WithHistoryBackend(backend string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.historyBackend = backend
	}
}

// SetupTestConfig creates a config file, a fallback word list and a history directory in tmpDir.
// By default the remote API is disabled and draws are recorded to a YAML file.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		historyBackend: "yaml",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "history"), 0755))
	wordsFile := filepath.Join(tmpDir, "words.txt")
	require.NoError(t, os.WriteFile(wordsFile, []byte(strings.Join(TestWords, "\n")+"\n"), 0644))

	remote := "    enabled: false\n"
	if cfg.remoteURL != "" {
		remote = fmt.Sprintf("    enabled: true\n    url: %s\n", cfg.remoteURL)
	}

	configContent := fmt.Sprintf(`words:
  fallback_file: %s
  remote:
%s    length: 5
history:
  backend: %s
  file: %s
database:
  host: 127.0.0.1
  port: 1
`,
		wordsFile,
		remote,
		cfg.historyBackend,
		filepath.Join(tmpDir, "history", "draws.yml"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WordAPI is a fake random word API.
type WordAPI struct {
	*httptest.Server
	calls atomic.Int32
}

// Calls returns how many requests the API received.
func (api *WordAPI) Calls() int {
	return int(api.calls.Load())
}

// StartWordAPI starts a fake word API that answers every request with body and status.
// The server is closed when the test finishes.
func StartWordAPI(t *testing.T, status int, body any) *WordAPI {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	api := &WordAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(payload)
	}))
	t.Cleanup(api.Close)
	return api
}
