package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/utils"
)

// copyTree copies a testdata directory into a fresh temp dir
func copyTree(t *testing.T, src string) string {
	t.Helper()
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	return dst
}

func newTestGenerator(config *Config, dir string) (*Generator, *bytes.Buffer) {
	var out bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	diagnostics.SetOutput(&out, &out)
	diagnostics.SetColors(false)
	reporter := NewDiagnosticReporter(&out, false)
	reporter.SetColors(false)
	return NewGenerator(config, dir, diagnostics, reporter), &out
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	sort.Strings(names)
	return names
}

func TestGenerator_GenerateGo(t *testing.T) {
	dir := copyTree(t, filepath.Join("..", "parser", "testdata", "basic"))
	gen, out := newTestGenerator(DefaultConfig(), dir)

	summary, err := gen.GenerateGo(context.Background(), []string{"./..."})
	require.NoError(t, err, out.String())

	assert.NotEmpty(t, summary.PassID)
	assert.Equal(t, 4, summary.Subjects)
	assert.Equal(t, 5, summary.Artifacts)
	assert.Equal(t, 5, summary.Written)
	assert.Zero(t, summary.Errors, out.String())
	assert.Equal(t, []string{
		"autogen_box.go",
		"autogen_repo.go",
		"autogen_service_decorator.go",
		"autogen_store_decorator.go",
		"autogen_store_interface.go",
	}, baseNames(summary.Files))

	for _, file := range summary.Files {
		assert.Equal(t, dir, filepath.Dir(file))
	}

	content, err := os.ReadFile(filepath.Join(dir, "autogen_store_interface.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "// Code generated by autoiface. DO NOT EDIT."))
	assert.Contains(t, string(content), "type StoreInterface interface {")
	assert.Contains(t, string(content), "Find(ctx context.Context, id string) (*User, error)")
	assert.Contains(t, string(content), "Add(item User)")
	assert.NotContains(t, string(content), "count()")

	decorator, err := os.ReadFile(filepath.Join(dir, "autogen_store_decorator.go"))
	require.NoError(t, err)
	assert.Contains(t, string(decorator), "var _ StoreInterface = (*StoreDecorator)(nil)")
}

func TestGenerator_GenerateGoIsIdempotent(t *testing.T) {
	dir := copyTree(t, filepath.Join("..", "parser", "testdata", "basic"))
	gen, out := newTestGenerator(DefaultConfig(), dir)

	_, err := gen.GenerateGo(context.Background(), nil)
	require.NoError(t, err, out.String())

	summary, err := gen.GenerateGo(context.Background(), nil)
	require.NoError(t, err, out.String())
	assert.Zero(t, summary.Written)
	assert.Equal(t, 5, summary.Unchanged)
	assert.Empty(t, summary.Files)
}

func TestGenerator_GenerateGoDryRun(t *testing.T) {
	dir := copyTree(t, filepath.Join("..", "parser", "testdata", "basic"))
	config := DefaultConfig()
	config.DryRun = true
	gen, out := newTestGenerator(config, dir)

	summary, err := gen.GenerateGo(context.Background(), nil)
	require.NoError(t, err, out.String())
	assert.Equal(t, 5, summary.DryRun)
	assert.Len(t, summary.Files, 5)

	_, err = os.Stat(filepath.Join(dir, "autogen_store_interface.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerator_GenerateGoReportsAnnotationErrors(t *testing.T) {
	dir := copyTree(t, filepath.Join("..", "parser", "testdata", "invalid"))
	gen, out := newTestGenerator(DefaultConfig(), dir)

	summary, err := gen.GenerateGo(context.Background(), nil)
	require.NoError(t, err)
	assert.Positive(t, summary.Errors)
	assert.Positive(t, gen.Reporter().ErrorCount())
	assert.Contains(t, out.String(), "✗")
}

func TestGenerator_GenerateModel(t *testing.T) {
	dir := t.TempDir()
	config := DefaultConfig()
	gen, out := newTestGenerator(config, dir)

	descriptorFile, err := filepath.Abs(filepath.Join("..", "descriptor", "testdata", "basic.yaml"))
	require.NoError(t, err)

	summary, err := gen.GenerateModel(context.Background(), []string{descriptorFile})
	require.NoError(t, err, out.String())
	assert.Equal(t, 1, summary.Subjects)
	assert.Equal(t, 2, summary.Written)
	assert.Zero(t, summary.Errors, out.String())

	iface, err := os.ReadFile(filepath.Join(dir, "generated", "test", "BasicClassInterface.java"))
	require.NoError(t, err)
	assert.Contains(t, string(iface), "public interface BasicClassInterface<T extends Integer> {")
	assert.Contains(t, string(iface), "T method1(T input);")

	decorator, err := os.ReadFile(filepath.Join(dir, "generated", "test", "BasicClassDecorator.java"))
	require.NoError(t, err)
	assert.Contains(t, string(decorator), "BasicClassInterface<T> getDecoratedObject();")
	assert.Contains(t, string(decorator), "@Override")
}

func TestGenerator_GenerateModelMissingFile(t *testing.T) {
	gen, _ := newTestGenerator(DefaultConfig(), t.TempDir())

	_, err := gen.GenerateModel(context.Background(), []string{"missing.yaml"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.FileSystemErrorCode))
}

func TestGenerationSummary_Stats(t *testing.T) {
	summary := &GenerationSummary{Subjects: 2, Artifacts: 3, Written: 3}
	stats := summary.Stats()
	assert.Equal(t, 2, stats["Subjects processed"])
	assert.NotContains(t, stats, "Dry run")
	assert.NotContains(t, stats, "Packages")

	summary.DryRun = 1
	assert.Equal(t, 1, summary.Stats()["Dry run"])
}

func TestGenerator_WarnsOnNamedInterfaceSubject(t *testing.T) {
	dir := t.TempDir()
	content := `package service

//autoiface::interface -name=Ignored -createDecorator
type Service interface {
	Run() error
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/service\n\ngo 1.22\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service.go"), []byte(content), 0o644))

	gen, out := newTestGenerator(DefaultConfig(), dir)
	summary, err := gen.GenerateGo(context.Background(), nil)
	require.NoError(t, err, out.String())

	assert.Equal(t, 1, summary.Warnings)
	assert.Contains(t, out.String(), "name=Ignored is ignored")
	assert.Equal(t, []string{"autogen_service_decorator.go"}, baseNames(summary.Files))
}
