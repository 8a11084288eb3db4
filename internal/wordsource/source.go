// Package wordsource provides a random word, taken from a remote service when possible and
// from a bundled word list otherwise.
package wordsource

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/at-ishikawa/wordpick/internal/wordlist"
)

type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

func (o Origin) String() string {
	return string(o)
}

// Draw is the result of one request for a word.
// Err holds the reason the remote word was not used, and is nil when Origin is OriginRemote.
type Draw struct {
	Word   string
	Origin Origin
	Err    error
}

// Source returns lowercase words and never fails.
// It holds no mutable state, so one Source can serve concurrent callers.
type Source struct {
	fetcher  Fetcher
	fallback *wordlist.List
	recorder Recorder
	intN     func(n int) int
}

type Option func(*Source)

func WithRecorder(recorder Recorder) Option {
	return func(s *Source) {
		s.recorder = recorder
	}
}

// WithIntN replaces the function that picks a fallback index in [0, n).
// The function must be safe for concurrent use if the Source is shared.
func WithIntN(intN func(n int) int) Option {
	return func(s *Source) {
		s.intN = intN
	}
}

// New returns a Source. A nil fetcher always uses the fallback list, and a nil list uses
// wordlist.Default.
func New(fetcher Fetcher, fallback *wordlist.List, opts ...Option) *Source {
	if fallback == nil {
		fallback = wordlist.Default()
	}
	source := &Source{
		fetcher:  fetcher,
		fallback: fallback,
		intN:     rand.IntN,
	}
	for _, opt := range opts {
		opt(source)
	}
	return source
}

// RandomWord returns a lowercase word.
func (s *Source) RandomWord(ctx context.Context) string {
	return s.Draw(ctx).Word
}

// Draw returns a lowercase word along with where it came from.
func (s *Source) Draw(ctx context.Context) Draw {
	draw := s.draw(ctx)
	if s.recorder != nil {
		if err := s.record(ctx, draw); err != nil {
			slog.Default().Warn("failed to record a word draw",
				"word", draw.Word,
				"origin", draw.Origin,
				"error", err,
			)
		}
	}
	return draw
}

// DrawN makes n independent draws with at most concurrency draws in flight.
func (s *Source) DrawN(ctx context.Context, n, concurrency int) []Draw {
	if n <= 0 {
		return []Draw{}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	draws := make([]Draw, n)
	p := pool.New().WithMaxGoroutines(concurrency)
	for i := range n {
		p.Go(func() {
			draws[i] = s.Draw(ctx)
		})
	}
	p.Wait()
	return draws
}

func (s *Source) draw(ctx context.Context) Draw {
	word, err := s.fetch(ctx)
	if err == nil {
		return Draw{Word: word, Origin: OriginRemote}
	}

	slog.Default().Debug("use the fallback word list",
		"reason", err,
	)
	return Draw{
		Word:   s.pick(),
		Origin: OriginFallback,
		Err:    err,
	}
}

// fetch converts every failure of the fetcher, including a panic, into an error.
func (s *Source) fetch(ctx context.Context) (word string, err error) {
	if s.fetcher == nil {
		return "", fmt.Errorf("no remote word source is configured")
	}
	defer func() {
		if r := recover(); r != nil {
			word = ""
			err = fmt.Errorf("fetcher.FetchWord panicked: %v", r)
		}
	}()

	word, err = s.fetcher.FetchWord(ctx)
	if err != nil {
		return "", fmt.Errorf("fetcher.FetchWord > %w", err)
	}
	word = strings.ToLower(word)
	if word == "" {
		return "", fmt.Errorf("fetcher.FetchWord returned an empty word")
	}
	return word, nil
}

func (s *Source) pick() string {
	return strings.ToLower(s.fallback.At(s.intN(s.fallback.Len())))
}

func (s *Source) record(ctx context.Context, draw Draw) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recorder.Record panicked: %v", r)
		}
	}()
	if err := s.recorder.Record(ctx, draw); err != nil {
		return fmt.Errorf("recorder.Record > %w", err)
	}
	return nil
}
