package wordsource_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_wordsource "github.com/at-ishikawa/wordpick/internal/mocks/wordsource"
	"github.com/at-ishikawa/wordpick/internal/wordlist"
	"github.com/at-ishikawa/wordpick/internal/wordsource"
	"github.com/at-ishikawa/wordpick/internal/wordsource/randomword"
)

func newTestList(t *testing.T, words ...string) *wordlist.List {
	t.Helper()
	list, err := wordlist.New(words)
	require.NoError(t, err)
	return list
}

func TestSource_Draw(t *testing.T) {
	fallbackWords := []string{"Slate", "audio", "pilot"}

	tests := []struct {
		name      string
		setupMock func(fetcher *mock_wordsource.MockFetcher)

		wantWord   string
		wantOrigin wordsource.Origin
		wantErr    bool
	}{
		{
			name: "remote word is lowercased",
			setupMock: func(fetcher *mock_wordsource.MockFetcher) {
				fetcher.EXPECT().FetchWord(gomock.Any()).Return("Crane", nil)
			},
			wantWord:   "crane",
			wantOrigin: wordsource.OriginRemote,
		},
		{
			name: "remote error falls back",
			setupMock: func(fetcher *mock_wordsource.MockFetcher) {
				fetcher.EXPECT().FetchWord(gomock.Any()).Return("", errors.New("dial tcp: no such host"))
			},
			wantOrigin: wordsource.OriginFallback,
			wantErr:    true,
		},
		{
			name: "invalid response falls back",
			setupMock: func(fetcher *mock_wordsource.MockFetcher) {
				fetcher.EXPECT().FetchWord(gomock.Any()).Return("", fmt.Errorf("body.FirstWord > %w", randomword.ErrInvalidResponse))
			},
			wantOrigin: wordsource.OriginFallback,
			wantErr:    true,
		},
		{
			name: "empty word falls back",
			setupMock: func(fetcher *mock_wordsource.MockFetcher) {
				fetcher.EXPECT().FetchWord(gomock.Any()).Return("", nil)
			},
			wantOrigin: wordsource.OriginFallback,
			wantErr:    true,
		},
		{
			name: "panic falls back",
			setupMock: func(fetcher *mock_wordsource.MockFetcher) {
				fetcher.EXPECT().FetchWord(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
					panic("unexpected")
				})
			},
			wantOrigin: wordsource.OriginFallback,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mock_wordsource.NewMockFetcher(ctrl)
			tt.setupMock(fetcher)

			list := newTestList(t, fallbackWords...)
			source := wordsource.New(fetcher, list)

			var got wordsource.Draw
			require.NotPanics(t, func() {
				got = source.Draw(context.Background())
			})

			assert.Equal(t, tt.wantOrigin, got.Origin)
			assert.Equal(t, strings.ToLower(got.Word), got.Word)
			assert.NotEmpty(t, got.Word)
			if tt.wantErr {
				assert.Error(t, got.Err)
				assert.True(t, list.Contains(got.Word), "word %q should come from the fallback list", got.Word)
				return
			}
			assert.NoError(t, got.Err)
			assert.Equal(t, tt.wantWord, got.Word)
		})
	}
}

func TestSource_RandomWord_NilFetcher(t *testing.T) {
	source := wordsource.New(nil, nil)

	for range 20 {
		word := source.RandomWord(context.Background())
		assert.True(t, wordlist.Default().Contains(word))
		assert.Equal(t, strings.ToLower(word), word)
	}
}

func TestSource_RandomWord_RemoteResponses(t *testing.T) {
	fallback := []string{"slate", "audio"}

	tests := []struct {
		name         string
		status       int
		body         string
		want         string
		wantFallback bool
	}{
		{name: "single word", status: http.StatusOK, body: `["Crane"]`, want: "crane"},
		{name: "object", status: http.StatusOK, body: `{}`, wantFallback: true},
		{name: "empty array", status: http.StatusOK, body: `[]`, wantFallback: true},
		{name: "null element", status: http.StatusOK, body: `[null]`, wantFallback: true},
		{name: "malformed json", status: http.StatusOK, body: `["crane"`, wantFallback: true},
		{name: "server error", status: http.StatusInternalServerError, body: `["crane"]`, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := randomword.NewClient(randomword.Config{URL: server.URL, RetryDelay: time.Millisecond})
			defer func() { _ = client.Close() }()

			list := newTestList(t, fallback...)
			got := wordsource.New(client, list).RandomWord(context.Background())
			if tt.wantFallback {
				assert.True(t, list.Contains(got), "word %q should come from the fallback list", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSource_Draw_FallbackReachesEveryEntry(t *testing.T) {
	words := []string{"first", "second", "third", "fourth", "last"}
	list := newTestList(t, words...)
	source := wordsource.New(nil, list)

	seen := make(map[string]int)
	for range 2000 {
		seen[source.RandomWord(context.Background())]++
	}

	for _, word := range words {
		assert.Greater(t, seen[word], 0, "word %q was never drawn", word)
	}
	assert.Len(t, seen, len(words))
}

func TestSource_Draw_FallbackBoundaries(t *testing.T) {
	words := []string{"First", "middle", "LAST"}
	list := newTestList(t, words...)

	tests := []struct {
		name  string
		index func(n int) int
		want  string
	}{
		{name: "lowest index", index: func(n int) int { return 0 }, want: "first"},
		{name: "highest index", index: func(n int) int { return n - 1 }, want: "last"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := wordsource.New(nil, list, wordsource.WithIntN(tt.index))
			got := source.Draw(context.Background())
			assert.Equal(t, tt.want, got.Word)
			assert.Equal(t, wordsource.OriginFallback, got.Origin)
		})
	}
}

func TestSource_Draw_Recorder(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(recorder *mock_wordsource.MockRecorder)
	}{
		{
			name: "records the draw",
			setupMock: func(recorder *mock_wordsource.MockRecorder) {
				recorder.EXPECT().Record(gomock.Any(), wordsource.Draw{Word: "crane", Origin: wordsource.OriginRemote}).Return(nil)
			},
		},
		{
			name: "recorder error is ignored",
			setupMock: func(recorder *mock_wordsource.MockRecorder) {
				recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
		},
		{
			name: "recorder panic is ignored",
			setupMock: func(recorder *mock_wordsource.MockRecorder) {
				recorder.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, draw wordsource.Draw) error {
					panic("unexpected")
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mock_wordsource.NewMockFetcher(ctrl)
			fetcher.EXPECT().FetchWord(gomock.Any()).Return("CRANE", nil)
			recorder := mock_wordsource.NewMockRecorder(ctrl)
			tt.setupMock(recorder)

			source := wordsource.New(fetcher, newTestList(t, "slate"), wordsource.WithRecorder(recorder))

			var got string
			require.NotPanics(t, func() {
				got = source.RandomWord(context.Background())
			})
			assert.Equal(t, "crane", got)
		})
	}
}

func TestSource_RandomWord_Concurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_wordsource.NewMockFetcher(ctrl)
	fetcher.EXPECT().FetchWord(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
		return "", errors.New("offline")
	}).Times(50)

	list := newTestList(t, "slate", "audio", "crane")
	source := wordsource.New(fetcher, list)

	var wg sync.WaitGroup
	results := make(chan string, 50)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- source.RandomWord(context.Background())
		}()
	}
	wg.Wait()
	close(results)

	for word := range results {
		assert.True(t, list.Contains(word))
	}
}

func TestSource_DrawN(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		concurrency int
	}{
		{name: "sequential", n: 3, concurrency: 1},
		{name: "concurrent", n: 20, concurrency: 4},
		{name: "concurrency below one", n: 2, concurrency: 0},
		{name: "more workers than draws", n: 2, concurrency: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mock_wordsource.NewMockFetcher(ctrl)
			fetcher.EXPECT().FetchWord(gomock.Any()).Return("Crane", nil).Times(tt.n)

			source := wordsource.New(fetcher, newTestList(t, "slate"))
			got := source.DrawN(context.Background(), tt.n, tt.concurrency)

			require.Len(t, got, tt.n)
			for _, draw := range got {
				assert.Equal(t, wordsource.Draw{Word: "crane", Origin: wordsource.OriginRemote}, draw)
			}
		})
	}
}

func TestSource_DrawN_Zero(t *testing.T) {
	source := wordsource.New(nil, newTestList(t, "slate"))

	assert.Empty(t, source.DrawN(context.Background(), 0, 4))
	assert.Empty(t, source.DrawN(context.Background(), -1, 4))
}
