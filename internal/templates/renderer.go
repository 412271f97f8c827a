// Package templates renders synthesized artifacts into source files.
package templates

import (
	"github.com/toyz/autoiface/internal/models"
)

// Languages
const (
	LanguageGo   = "go"
	LanguageJava = "java"
)

// File is one rendered source file
type File struct {
	Name     string // path relative to the package output directory
	Content  []byte
	Artifact *models.Artifact
}

// Renderer turns one artifact into one source file
type Renderer interface {
	Language() string
	Render(artifact *models.Artifact) (*File, error)
}

// NewRenderer returns the renderer for a language
func NewRenderer(language string, prefix string) (Renderer, bool) {
	switch language {
	case LanguageGo, "":
		return NewGoRenderer(prefix), true
	case LanguageJava:
		return NewJavaRenderer(""), true
	}
	return nil, false
}
