// Package questions holds the immutable interview question list shared by all sessions.
package questions

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoQuestions is returned when a source yields no usable questions.
var ErrNoQuestions = errors.New("questions: no questions loaded")

// List is an immutable ordered sequence of unique questions.
type List struct {
	items []string
}

// New builds a List from raw entries. Blank entries are skipped and duplicates
// keep their first occurrence.
func New(raw []string) List {
	items, _ := normalize(raw)
	return List{items: items}
}

func normalize(raw []string) ([]string, int) {
	seen := make(map[string]struct{}, len(raw))
	items := make([]string, 0, len(raw))
	dups := 0
	for _, q := range raw {
		q = strings.TrimRight(q, " \t\r\n")
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			dups++
			continue
		}
		seen[q] = struct{}{}
		items = append(items, q)
	}
	return items, dups
}

// Len reports the number of questions.
func (l List) Len() int {
	return len(l.items)
}

// Items returns an independent copy of the questions in order.
func (l List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Contains reports whether q is part of the list.
func (l List) Contains(q string) bool {
	for _, item := range l.items {
		if item == q {
			return true
		}
	}
	return false
}

// Read parses one question per line.
func Read(r io.Reader) (List, int, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return List{}, 0, fmt.Errorf("questions: read: %w", err)
	}
	items, dups := normalize(raw)
	if len(items) == 0 {
		return List{}, dups, ErrNoQuestions
	}
	return List{items: items}, dups, nil
}

// LoadFile reads a question list from a plain text file, one question per line.
func LoadFile(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return List{}, fmt.Errorf("questions: open %s: %w", path, err)
	}
	defer f.Close()

	list, dups, err := Read(f)
	if err != nil {
		return List{}, err
	}
	logLoaded("file", path, list.Len(), dups)
	return list, nil
}
