package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	d.SetColors(false)
	d.SetShowTime(false)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		level       DiagnosticLevel
		wantInfo    bool
		wantVerbose bool
		wantError   bool
	}{
		{level: DiagnosticSilent},
		{level: DiagnosticError, wantError: true},
		{level: DiagnosticInfo, wantInfo: true, wantError: true},
		{level: DiagnosticVerbose, wantInfo: true, wantVerbose: true, wantError: true},
	}

	for _, tt := range tests {
		d, out, errOut := newTestDiagnostics(tt.level)
		d.Info("info %d", 1)
		d.Verbose("verbose")
		d.Error("boom")

		assert.Equal(t, tt.wantInfo, bytes.Contains(out.Bytes(), []byte("[INFO] info 1\n")), "level %d", tt.level)
		assert.Equal(t, tt.wantVerbose, bytes.Contains(out.Bytes(), []byte("[VERBOSE] verbose\n")), "level %d", tt.level)
		assert.Equal(t, tt.wantError, bytes.Contains(errOut.Bytes(), []byte("[ERROR] boom\n")), "level %d", tt.level)
	}
}

func TestDiagnosticSystem_Progress(t *testing.T) {
	d, out, errOut := newTestDiagnostics(DiagnosticInfo)

	d.StartProgress("Loading %s", "packages")
	d.EndProgress(true, "")
	assert.Equal(t, "✓ Loading packages\n", out.String())

	d.StartProgress("Writing files")
	d.EndProgress(false, "2 files failed")
	assert.Equal(t, "✗ 2 files failed\n", errOut.String())
}

func TestDiagnosticSystem_SummaryAndList(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Indent()
	d.List("%s", "item")
	d.Unindent()
	d.Unindent()
	d.Summary("Done", map[string]interface{}{"b": 2, "a": 1})

	assert.Equal(t, "  - item\n\nDone\n   a: 1\n   b: 2\n\n", out.String())
}

func TestDiagnosticSystem_Colors(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.SetColors(true)
	d.Info("hello")
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "hello")
}
