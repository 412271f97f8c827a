package cli

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/templates"
)

// textRenderer writes the artifact name into a file named after a fixed stem
type textRenderer struct {
	fileName string
	fail     bool
}

func (r *textRenderer) Language() string { return "text" }

func (r *textRenderer) Render(artifact *models.Artifact) (*templates.File, error) {
	if r.fail {
		return nil, stderrors.New("render failed")
	}
	name := r.fileName
	if name == "" {
		name = artifact.Name + ".txt"
	}
	return &templates.File{Name: name, Content: []byte(artifact.Name + "\n"), Artifact: artifact}, nil
}

func fixedDir(dir string) Placer {
	return func(*models.Artifact) (string, error) { return dir, nil }
}

func testArtifact(name string) *models.Artifact {
	return &models.Artifact{Kind: models.ArtifactInterface, Package: "test", PackageName: "test", Name: name}
}

func TestEmitter_Emit(t *testing.T) {
	dir := t.TempDir()
	emitter := NewEmitter(&textRenderer{}, fixedDir(filepath.Join(dir, "out")), false)

	emission, err := emitter.Emit(testArtifact("FooInterface"))
	require.NoError(t, err)
	assert.Equal(t, EmitWritten, emission.Status)
	assert.Equal(t, filepath.Join(dir, "out", "FooInterface.txt"), emission.Path)

	content, err := os.ReadFile(emission.Path)
	require.NoError(t, err)
	assert.Equal(t, "FooInterface\n", string(content))
	assert.Equal(t, 1, emitter.Claimed())
}

func TestEmitter_UnchangedFileIsNotRewritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "FooInterface.txt")
	require.NoError(t, os.WriteFile(path, []byte("FooInterface\n"), 0o600))

	emission, err := NewEmitter(&textRenderer{}, fixedDir(dir), false).Emit(testArtifact("FooInterface"))
	require.NoError(t, err)
	assert.Equal(t, EmitUnchanged, emission.Status)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEmitter_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()

	emission, err := NewEmitter(&textRenderer{}, fixedDir(dir), true).Emit(testArtifact("FooInterface"))
	require.NoError(t, err)
	assert.Equal(t, EmitDryRun, emission.Status)
	assert.Equal(t, "dry-run", emission.Status.String())

	_, err = os.Stat(emission.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestEmitter_DuplicatePathFails(t *testing.T) {
	dir := t.TempDir()
	emitter := NewEmitter(&textRenderer{fileName: "shared.txt"}, fixedDir(dir), false)

	_, err := emitter.Emit(testArtifact("First"))
	require.NoError(t, err)

	_, err = emitter.Emit(testArtifact("Second"))
	require.Error(t, err)
	var emissionErr *errors.EmissionError
	require.ErrorAs(t, err, &emissionErr)
	assert.Equal(t, "test.Second", emissionErr.Artifact)
	assert.Contains(t, err.Error(), "already produced by test.First")

	content, err := os.ReadFile(filepath.Join(dir, "shared.txt"))
	require.NoError(t, err)
	assert.Equal(t, "First\n", string(content))
}

func TestEmitter_FailuresAreEmissionErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewEmitter(&textRenderer{fail: true}, fixedDir(dir), false).Emit(testArtifact("Foo"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.EmissionErrorCode))
	assert.Contains(t, err.Error(), "autoiface: error generating interface test.Foo")

	placeErr := func(*models.Artifact) (string, error) { return "", stderrors.New("no place") }
	_, err = NewEmitter(&textRenderer{}, placeErr, false).Emit(testArtifact("Foo"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.EmissionErrorCode))
}
