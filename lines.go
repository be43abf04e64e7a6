package libdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// LineRange is a 1-based inclusive range of lines.
type LineRange struct {
	Start int
	End   int
}

// String returns the range in START-END form.
func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ParseLineRange parses "START-END" or a single line number "N".
func ParseLineRange(s string) (LineRange, error) {
	s = strings.TrimSpace(s)
	startStr, endStr, isRange := strings.Cut(s, "-")
	if !isRange {
		endStr = startStr
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return LineRange{}, Errorf(EINVALID, "lines must be in format START-END (e.g., 1-50), got %q", s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return LineRange{}, Errorf(EINVALID, "lines must be in format START-END (e.g., 1-50), got %q", s)
	}

	r := LineRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return LineRange{}, err
	}
	return r, nil
}

// Validate returns an error if the range is not a valid 1-based range.
func (r LineRange) Validate() error {
	if r.Start < 1 {
		return Errorf(EINVALID, "start line must be >= 1")
	}
	if r.End < r.Start {
		return Errorf(EINVALID, "end line must be >= start line")
	}
	return nil
}

// CountLines returns the number of lines in text. A trailing newline does
// not start a new line.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	return len(splitLines(text))
}

// SliceLines returns lines r.Start through r.End of text, joined by newlines,
// along with the total number of lines. An end past the last line is clamped;
// a start past the last line is an error.
func SliceLines(text string, r LineRange) (string, int, error) {
	if err := r.Validate(); err != nil {
		return "", 0, err
	}
	lines := splitLines(text)
	total := len(lines)
	if text == "" {
		total = 0
	}
	if r.Start > total {
		return "", total, Errorf(EINVALID, "start line %d is beyond the end of the document (%d lines)", r.Start, total)
	}
	end := min(r.End, total)
	return strings.Join(lines[r.Start-1:end], "\n"), total, nil
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
