// Package cli renders word draws and draw history on a terminal.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/wordpick/internal/history"
	"github.com/at-ishikawa/wordpick/internal/wordsource"
)

type DrawPrinter struct {
	stdoutWriter io.Writer
	verbose      bool
	bold         *color.Color
	green        *color.Color
	yellow       *color.Color
}

// NewDrawPrinter returns a printer. When verbose is false only the words are written,
// one per line, so the output can be piped into other commands.
func NewDrawPrinter(w io.Writer, verbose bool) *DrawPrinter {
	return &DrawPrinter{
		stdoutWriter: w,
		verbose:      verbose,
		bold:         color.New(color.Bold),
		green:        color.New(color.FgGreen),
		yellow:       color.New(color.FgYellow),
	}
}

func (p *DrawPrinter) originColor(origin string) *color.Color {
	if wordsource.Origin(origin) == wordsource.OriginRemote {
		return p.green
	}
	return p.yellow
}

func (p *DrawPrinter) PrintDraw(draw wordsource.Draw) error {
	if !p.verbose {
		if _, err := fmt.Fprintln(p.stdoutWriter, draw.Word); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(p.stdoutWriter, "%s\t%s",
		p.bold.Sprint(draw.Word),
		p.originColor(draw.Origin.String()).Sprintf("(%s)", draw.Origin),
	); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	if draw.Err != nil {
		if _, err := fmt.Fprintf(p.stdoutWriter, "\t%s", draw.Err); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	if _, err := fmt.Fprintln(p.stdoutWriter); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (p *DrawPrinter) PrintHistory(draws []history.Draw) error {
	table := tabwriter.NewWriter(p.stdoutWriter, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(table, "DRAWN AT\tWORD\tORIGIN\tREASON"); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	for _, draw := range draws {
		if _, err := fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			draw.DrawnAt.Local().Format(time.DateTime),
			draw.Word,
			draw.Origin,
			draw.FailureReason,
		); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	if err := table.Flush(); err != nil {
		return fmt.Errorf("table.Flush > %w", err)
	}

	summary := history.Summarize(draws)
	if _, err := fmt.Fprintf(p.stdoutWriter, "\n%d draws: %s, %s\n",
		summary.Total,
		p.green.Sprintf("%d remote", summary.Remote),
		p.yellow.Sprintf("%d fallback", summary.Fallback),
	); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}
