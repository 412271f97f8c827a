package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/templates"
)

// EmitStatus is the outcome of emitting one artifact
type EmitStatus int

const (
	EmitWritten EmitStatus = iota
	EmitUnchanged
	EmitDryRun
)

// String returns the lowercase status name
func (s EmitStatus) String() string {
	switch s {
	case EmitWritten:
		return "written"
	case EmitUnchanged:
		return "unchanged"
	default:
		return "dry-run"
	}
}

// Emission records where an artifact went
type Emission struct {
	Artifact *models.Artifact
	Path     string
	Status   EmitStatus
}

// Placer returns the directory a rendered file name is relative to
type Placer func(artifact *models.Artifact) (string, error)

// Emitter renders artifacts and writes them, claiming each output path once
// per pass. It is not safe for concurrent use.
type Emitter struct {
	renderer templates.Renderer
	place    Placer
	dryRun   bool
	claims   map[string]string // output path -> artifact
}

// NewEmitter creates an emitter for one pass
func NewEmitter(renderer templates.Renderer, place Placer, dryRun bool) *Emitter {
	return &Emitter{
		renderer: renderer,
		place:    place,
		dryRun:   dryRun,
		claims:   make(map[string]string),
	}
}

// Emit renders and writes one artifact. Every failure is an EmissionError
// for this artifact alone.
func (e *Emitter) Emit(artifact *models.Artifact) (Emission, error) {
	kind := artifact.Kind.String()
	name := artifact.QualifiedName()

	dir, err := e.place(artifact)
	if err != nil {
		return Emission{}, errors.NewEmissionError(kind, name, "", err)
	}

	file, err := e.renderer.Render(artifact)
	if err != nil {
		return Emission{}, errors.NewEmissionError(kind, name, "", err)
	}

	path := filepath.Join(dir, filepath.FromSlash(file.Name))
	if owner, claimed := e.claims[path]; claimed {
		cause := errors.Newf(errors.EmissionErrorCode, "output path already produced by %s", owner)
		return Emission{}, errors.NewEmissionError(kind, name, path, cause)
	}
	e.claims[path] = name

	emission := Emission{Artifact: artifact, Path: path}
	if e.dryRun {
		emission.Status = EmitDryRun
		return emission, nil
	}

	status, err := writeIfChanged(path, file.Content)
	if err != nil {
		return Emission{}, errors.NewEmissionError(kind, name, path, err)
	}
	emission.Status = status
	return emission, nil
}

// Claimed returns the number of output paths claimed so far
func (e *Emitter) Claimed() int {
	return len(e.claims)
}

// writeIfChanged writes content unless the file already holds it
func writeIfChanged(path string, content []byte) (EmitStatus, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return EmitUnchanged, nil
	case err != nil && !stderrors.Is(err, os.ErrNotExist):
		return 0, errors.WrapFileSystemError("read", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, errors.WrapFileSystemError("create directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return 0, errors.WrapFileSystemError("write", path, err)
	}
	return EmitWritten, nil
}
