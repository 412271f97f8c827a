package parser

import (
	"context"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/typemodel"
)

// SourceLoader loads Go packages and extracts annotated subjects
type SourceLoader interface {
	Load(ctx context.Context, patterns ...string) (*Result, error)
}

// Package is a loaded package holding at least one subject or generated file
type Package struct {
	Path string // import path
	Name string // package clause name
	Dir  string // directory on disk
}

// Result is the outcome of loading a set of packages
type Result struct {
	Universe *typemodel.Universe
	Subjects []models.Subject
	Packages []Package
	// Warnings are package load problems that did not stop loading
	Warnings []string
	// Errors are per-annotation failures; the affected types are skipped
	Errors *errors.MultipleErrors
}
