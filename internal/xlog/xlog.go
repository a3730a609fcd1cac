// Package xlog is the thin logging shim used by package synth and
// cmd/skolemize — the orchestration layer. Library packages (literal,
// basis, sampler, learner, verifier, repairer, …) never import this
// package and never log: logging is confined to the entry points that
// own a run end-to-end.
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

// Logger wraps a standard log.Logger with the phase-banner and
// candidate-dump helpers the synthesis driver needs.
type Logger struct {
	*log.Logger
	debug bool
}

// New returns a Logger writing to w. When debug is false, Debugf and
// Dump are no-ops.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{Logger: log.New(w, "", log.LstdFlags), debug: debug}
}

// Default returns a Logger writing to os.Stderr.
func Default(debug bool) *Logger {
	return New(os.Stderr, debug)
}

// Phase logs a banner line marking the start of a named synthesis
// phase (sample / learn / verify / repair).
func (l *Logger) Phase(format string, args ...any) {
	l.Printf("--- %s ---", fmt.Sprintf(format, args...))
}

// Debugf logs a formatted debug line; suppressed unless debug is set.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.Printf("[debug] "+format, args...)
}

// Dump renders v with spew.Sdump and logs it at debug level, labelled.
// Used to inspect a candidate map or counterexample without hand-writing
// a String() method for every intermediate shape.
func (l *Logger) Dump(label string, v any) {
	if !l.debug {
		return
	}
	l.Printf("[debug] %s:\n%s", label, spew.Sdump(v))
}

// Diff logs a unified diff between two textual renderings of successive
// repair iterations (e.g. synth.FormatCandidates before/after a repair
// step), so a developer watching synthesis converge can see exactly
// which cube or clause changed.
func (l *Logger) Diff(label, before, after string) {
	if !l.debug || before == after {
		return
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  1,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return
	}
	l.Printf("[debug] %s diff:\n%s", label, text)
}
