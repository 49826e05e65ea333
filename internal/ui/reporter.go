package ui

import (
	"fmt"
	"io"
)

// Reporter writes progress lines: stage headers, per-item lines, a
// summary and errors. It is not safe for concurrent use.
type Reporter struct {
	w     io.Writer
	theme *Theme
}

// NewReporter creates a Reporter writing to w. Styling is applied only
// when ColorEnabled(w, noColor) holds.
func NewReporter(w io.Writer, noColor bool) *Reporter {
	return &Reporter{w: w, theme: NewTheme(w, !ColorEnabled(w, noColor))}
}

// Stage starts a new section of output.
func (r *Reporter) Stage(title string) {
	r.println("")
	r.println(r.theme.render(r.theme.Header, "==> "+title))
}

// Item reports one unit of work within a stage.
func (r *Reporter) Item(format string, args ...any) {
	r.println("  " + r.theme.render(r.theme.Item, "+") + " " + fmt.Sprintf(format, args...))
}

// Info writes a plain line.
func (r *Reporter) Info(format string, args ...any) {
	r.println(fmt.Sprintf(format, args...))
}

// Detail writes an indented, de-emphasised line.
func (r *Reporter) Detail(format string, args ...any) {
	r.println(r.theme.render(r.theme.Muted, "   - "+fmt.Sprintf(format, args...)))
}

// Success reports a completed operation.
func (r *Reporter) Success(format string, args ...any) {
	r.println(r.theme.render(r.theme.Success, "OK "+fmt.Sprintf(format, args...)))
}

// Error reports a failed operation.
func (r *Reporter) Error(format string, args ...any) {
	r.println(r.theme.render(r.theme.Error, "ERROR "+fmt.Sprintf(format, args...)))
}

func (r *Reporter) println(line string) {
	_, _ = fmt.Fprintln(r.w, line)
}

// Discard returns a Reporter that drops all output.
func Discard() *Reporter {
	return &Reporter{w: io.Discard, theme: &Theme{NoColor: true}}
}
