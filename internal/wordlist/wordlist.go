// Package wordlist provides the immutable word list used when the remote word API cannot be used.
package wordlist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
)

//go:embed words.txt
var embeddedWords string

var ErrEmpty = errors.New("word list is empty")

// List is an ordered, non-empty sequence of lowercase words.
// A List is never modified after it is built, so it can be shared between goroutines.
type List struct {
	words []string
}

var defaultList = sync.OnceValue(func() *List {
	list, err := Parse(strings.NewReader(embeddedWords))
	if err != nil {
		panic(fmt.Errorf("embedded word list: %w", err))
	}
	return list
})

// Default returns the list bundled into the binary.
func Default() *List {
	return defaultList()
}

// New builds a list from words. Entries are trimmed and lowercased, and blank entries are dropped.
func New(words []string) (*List, error) {
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		normalized = append(normalized, word)
	}
	if len(normalized) == 0 {
		return nil, ErrEmpty
	}
	return &List{words: normalized}, nil
}

// Parse reads one word per line. Blank lines and lines starting with '#' are ignored.
func Parse(r io.Reader) (*List, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Scan > %w", err)
	}
	return New(words)
}

func LoadFile(path string) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	list, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("Parse(%s) > %w", path, err)
	}
	return list, nil
}

func (l *List) Len() int {
	return len(l.words)
}

// At returns the i-th word. It panics when i is out of range, like a slice index.
func (l *List) At(i int) string {
	return l.words[i]
}

// Words returns a copy of the entries.
func (l *List) Words() []string {
	return slices.Clone(l.words)
}

func (l *List) Contains(word string) bool {
	return slices.Contains(l.words, strings.ToLower(word))
}
