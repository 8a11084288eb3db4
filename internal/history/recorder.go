package history

import (
	"context"
	"time"

	"github.com/at-ishikawa/wordpick/internal/wordsource"
)

// Recorder saves every draw of a wordsource.Source into a Repository.
type Recorder struct {
	repository Repository
	now        func() time.Time
}

var _ wordsource.Recorder = (*Recorder)(nil)

func NewRecorder(repository Repository) *Recorder {
	return &Recorder{
		repository: repository,
		now:        time.Now,
	}
}

func (r *Recorder) Record(ctx context.Context, draw wordsource.Draw) error {
	record := Draw{
		Word:    draw.Word,
		Origin:  draw.Origin.String(),
		DrawnAt: r.now().UTC(),
	}
	if draw.Err != nil {
		record.FailureReason = draw.Err.Error()
	}
	return r.repository.Save(ctx, &record)
}

// Summary counts draws by origin.
type Summary struct {
	Total    int `json:"total"`
	Remote   int `json:"remote"`
	Fallback int `json:"fallback"`
}

func Summarize(draws []Draw) Summary {
	var summary Summary
	for _, draw := range draws {
		summary.Total++
		switch wordsource.Origin(draw.Origin) {
		case wordsource.OriginRemote:
			summary.Remote++
		case wordsource.OriginFallback:
			summary.Fallback++
		}
	}
	return summary
}
