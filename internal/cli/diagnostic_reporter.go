package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/toyz/autoiface/internal/errors"
)

// DiagnosticReporter renders errors for users and counts what it reported.
// It is safe for concurrent use.
type DiagnosticReporter struct {
	out       io.Writer
	verbose   bool
	useColors bool

	mu       sync.Mutex
	errors   int
	warnings int
	byCode   map[errors.ErrorCode]int
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(out io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		out:       out,
		verbose:   verbose,
		useColors: !color.NoColor,
		byCode:    make(map[errors.ErrorCode]int),
	}
}

// SetColors turns colored output on or off
func (r *DiagnosticReporter) SetColors(enabled bool) {
	r.useColors = enabled
}

// ReportWarning reports a non-fatal problem
func (r *DiagnosticReporter) ReportWarning(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings++
	fmt.Fprintf(r.out, "%s %s\n", r.paint(color.FgYellow, "!"), message)
}

// ReportError reports an error. Collections are reported one entry at a time.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for _, e := range multi.Errors {
			r.ReportError(e)
		}
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors++

	var autoErr errors.AutoIfaceError
	if !stderrors.As(err, &autoErr) {
		r.byCode[errors.UnknownErrorCode]++
		fmt.Fprintf(r.out, "%s %s\n", r.paint(color.FgRed, "✗"), err.Error())
		return
	}
	r.byCode[autoErr.ErrorCode()]++
	r.reportAutoIfaceError(autoErr)
}

func (r *DiagnosticReporter) reportAutoIfaceError(err errors.AutoIfaceError) {
	header := fmt.Sprintf("[%s]", err.ErrorCode())
	fmt.Fprintf(r.out, "%s %s %s\n", r.paint(color.FgRed, "✗"), r.paint(color.FgRed, header), err.Error())

	if ctx := err.Context(); len(ctx) > 0 && r.verbose {
		keys := make([]string, 0, len(ctx))
		for key := range ctx {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(r.out, "    %s: %v\n", formatContextKey(key), ctx[key])
		}
	}

	for _, suggestion := range err.Suggestions() {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "    %s %s\n", r.paint(color.FgCyan, "hint:"), lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "          %s\n", line)
			}
		}
	}

	if r.verbose {
		depth := 1
		for cause := stderrors.Unwrap(err); cause != nil; cause = stderrors.Unwrap(cause) {
			fmt.Fprintf(r.out, "    cause %d: %s\n", depth, cause.Error())
			depth++
		}
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ErrorCount returns the number of errors reported
func (r *DiagnosticReporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}

// WarningCount returns the number of warnings reported
func (r *DiagnosticReporter) WarningCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

// CountByCode returns the number of errors reported with a code
func (r *DiagnosticReporter) CountByCode(code errors.ErrorCode) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byCode[code]
}

func (r *DiagnosticReporter) paint(attr color.Attribute, s string) string {
	if !r.useColors {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
