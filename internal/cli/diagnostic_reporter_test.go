package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/autoiface/internal/errors"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(&buf, verbose)
	reporter.SetColors(false)
	return reporter, &buf
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, buf := newTestReporter(false)

	reporter.ReportWarning("example.com/pkg: no Go files")

	assert.Equal(t, "! example.com/pkg: no Go files\n", buf.String())
	assert.Equal(t, 1, reporter.WarningCount())
	assert.Zero(t, reporter.ErrorCount())
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	reporter, buf := newTestReporter(false)

	err := errors.NewResolutionError("test.Sub", "test.Missing", "ancestor is not declared")
	err.WithSuggestion("Declare test.Missing in a descriptor file")
	reporter.ReportError(err)

	output := buf.String()
	assert.Contains(t, output, "✗ [ResolutionError] ")
	assert.Contains(t, output, "ancestor is not declared")
	assert.Contains(t, output, "hint: Declare test.Missing in a descriptor file")
	assert.NotContains(t, output, "cause")
	assert.Equal(t, 1, reporter.CountByCode(errors.ResolutionErrorCode))
}

func TestDiagnosticReporter_ReportPlainError(t *testing.T) {
	reporter, buf := newTestReporter(false)

	reporter.ReportError(stderrors.New("boom"))
	reporter.ReportError(nil)

	assert.Equal(t, "✗ boom\n", buf.String())
	assert.Equal(t, 1, reporter.ErrorCount())
	assert.Equal(t, 1, reporter.CountByCode(errors.UnknownErrorCode))
}

func TestDiagnosticReporter_ExpandsMultipleErrors(t *testing.T) {
	reporter, buf := newTestReporter(false)

	multi := errors.NewMultipleErrors()
	multi.Add(errors.New(errors.ConfigurationErrorCode, "first"))
	multi.Add(errors.NewAnnotationValidationError("interface", "name", "must be an identifier"))
	reporter.ReportError(multi)

	assert.Equal(t, 2, reporter.ErrorCount())
	assert.Equal(t, 1, reporter.CountByCode(errors.ConfigurationErrorCode))
	assert.Equal(t, 1, reporter.CountByCode(errors.AnnotationValidationErrorCode))
	assert.Contains(t, buf.String(), "[ConfigurationError] first")
}

func TestDiagnosticReporter_VerboseShowsContextAndCauses(t *testing.T) {
	reporter, buf := newTestReporter(true)

	cause := stderrors.New("permission denied")
	reporter.ReportError(errors.WrapFileSystemError("write", "/tmp/out.go", cause))

	output := buf.String()
	assert.Contains(t, output, "    Operation: write\n")
	assert.Contains(t, output, "    Path: /tmp/out.go\n")
	assert.Contains(t, output, "cause 1: permission denied")
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Config Type", formatContextKey("config_type"))
	assert.Equal(t, "Path", formatContextKey("path"))
	assert.Equal(t, "", formatContextKey(""))
}
