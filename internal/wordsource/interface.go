package wordsource

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/wordsource/mock_wordsource.go -package=mock_wordsource

// Fetcher retrieves a word from a remote service.
type Fetcher interface {
	FetchWord(ctx context.Context) (string, error)
}

// Recorder is notified of every draw. Its errors never reach the caller of Source.
type Recorder interface {
	Record(ctx context.Context, draw Draw) error
}
