package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/libdoc"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fail prints err to stderr the way every command reports errors, then
// returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", message(err))
	return err
}

// message returns the domain message of err, or its text for errors that
// did not originate in libdoc.
func message(err error) string {
	var e *libdoc.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// progressBar renders "[████░░░░] n/total" lines.
type progressBar struct {
	w     io.Writer
	total int
	every int
	width int
}

func newProgressBar(w io.Writer, total int) *progressBar {
	every := max(total/5, 1)
	if total >= 1000 {
		every = 200
	}
	return &progressBar{w: w, total: total, every: every, width: 30}
}

func (p *progressBar) update(completed int) {
	if p.total == 0 || (completed%p.every != 0 && completed != p.total) {
		return
	}
	filled := p.width * completed / p.total
	fmt.Fprintf(p.w, "[%s%s] %d/%d\n",
		strings.Repeat("█", filled), strings.Repeat("░", p.width-filled), completed, p.total)
}
