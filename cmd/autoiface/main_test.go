package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func copyDir(t *testing.T, src string) string {
	t.Helper()
	dst := t.TempDir()
	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, entry.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, entry.Name()), data, 0o644))
	}
	return dst
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "autoiface version dev")
}

func TestModelCommand(t *testing.T) {
	dir := t.TempDir()
	descriptor, err := filepath.Abs(filepath.Join("..", "..", "internal", "descriptor", "testdata", "basic.yaml"))
	require.NoError(t, err)

	out, err := execute(t, "model", "-C", dir, "-o", "java", descriptor)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Generation complete")
	assert.FileExists(t, filepath.Join(dir, "java", "test", "BasicClassInterface.java"))
	assert.FileExists(t, filepath.Join(dir, "java", "test", "BasicClassDecorator.java"))
}

func TestModelCommandRequiresFiles(t *testing.T) {
	_, err := execute(t, "model")
	assert.Error(t, err)
}

func TestGenerateAndCleanCommands(t *testing.T) {
	dir := copyDir(t, filepath.Join("..", "..", "internal", "parser", "testdata", "basic"))

	out, err := execute(t, "generate", "-C", dir, "./...")
	require.NoError(t, err, out)
	assert.FileExists(t, filepath.Join(dir, "autogen_store_interface.go"))
	assert.FileExists(t, filepath.Join(dir, "autogen_box.go"))

	out, err = execute(t, "clean", "-C", dir, "--dry-run")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Would remove")
	assert.FileExists(t, filepath.Join(dir, "autogen_store_interface.go"))

	out, err = execute(t, "clean", "-C", dir)
	require.NoError(t, err, out)
	assert.NoFileExists(t, filepath.Join(dir, "autogen_store_interface.go"))
	assert.NoFileExists(t, filepath.Join(dir, "autogen_box.go"))
	assert.FileExists(t, filepath.Join(dir, "shapes.go"))
}

func TestGenerateReportsFailures(t *testing.T) {
	dir := copyDir(t, filepath.Join("..", "..", "internal", "parser", "testdata", "invalid"))

	out, err := execute(t, "generate", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error(s)")
	assert.Contains(t, out, "✗")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".autoiface.yaml"), []byte("go:\n  accessor: \"not valid\"\n"), 0o644))

	_, err := execute(t, "generate", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "go.accessor")
}

func TestVerboseAndQuietConflict(t *testing.T) {
	_, err := execute(t, "clean", "-C", t.TempDir(), "-v", "-q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
