// Package embedded treats Markdown checkbox lines inside a todo's content as
// addressable sub-tasks. Tasks are keyed by their zero-based line index and
// are re-derived from the content on every call.
//
// A checkbox line is: optional leading whitespace, a list marker ('-' or '*'),
// optional whitespace, a bracket holding ' ', 'x' or 'X', optional whitespace,
// then the task text. Lines are split on '\n' only; a trailing '\r' stays part
// of its line and is trimmed from the text like any other whitespace.
package embedded

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nhle/todo-journal/internal/model"
)

const lineSep = "\n"

// checkbox describes a matched line. open is the byte offset of '[' and
// mark is the bracket character.
type checkbox struct {
	open int
	mark byte
	text string
}

// matchLine reports whether line is a checkbox line.
func matchLine(line string) (checkbox, bool) {
	i := skipSpace(line, 0)
	if i >= len(line) || (line[i] != '-' && line[i] != '*') {
		return checkbox{}, false
	}
	i = skipSpace(line, i+1)
	if i+3 > len(line) || line[i] != '[' || line[i+2] != ']' {
		return checkbox{}, false
	}
	mark := line[i+1]
	if mark != ' ' && mark != 'x' && mark != 'X' {
		return checkbox{}, false
	}
	return checkbox{open: i, mark: mark, text: line[i+3:]}, true
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// Parse returns one EmbeddedTask per checkbox line with non-empty text,
// in ascending line order.
func Parse(content string) []model.EmbeddedTask {
	tasks := make([]model.EmbeddedTask, 0)
	if content == "" {
		return tasks
	}
	for idx, line := range strings.Split(content, lineSep) {
		cb, ok := matchLine(line)
		if !ok {
			continue
		}
		text := strings.TrimSpace(cb.text)
		if text == "" {
			continue
		}
		tasks = append(tasks, model.EmbeddedTask{
			LineIndex:   idx,
			Text:        text,
			IsCompleted: cb.mark == 'x' || cb.mark == 'X',
		})
	}
	return tasks
}

// SetStatus rewrites the bracket of the checkbox at lineIndex to [x] or [ ].
// Everything else on the line is kept verbatim. Content is returned unchanged
// when lineIndex is out of range or the line is not a checkbox; a concurrent
// edit may have shifted lines, so this is not an error.
func SetStatus(content string, lineIndex int, completed bool) string {
	if content == "" || lineIndex < 0 {
		return content
	}
	lines := strings.Split(content, lineSep)
	if lineIndex >= len(lines) {
		return content
	}
	line := lines[lineIndex]
	cb, ok := matchLine(line)
	if !ok {
		return content
	}

	mark := byte(' ')
	if completed {
		mark = 'x'
	}
	if cb.mark == mark {
		return content
	}
	b := []byte(line)
	b[cb.open+1] = mark
	lines[lineIndex] = string(b)
	return strings.Join(lines, lineSep)
}

// Summary counts the embedded tasks in a piece of content.
type Summary struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

// Summarize returns how many embedded tasks content holds and how many of
// them are checked.
func Summarize(content string) Summary {
	var s Summary
	for _, t := range Parse(content) {
		s.Total++
		if t.IsCompleted {
			s.Done++
		}
	}
	return s
}
