package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{AnnotationSyntaxErrorCode, "AnnotationSyntaxError"},
		{AnnotationValidationErrorCode, "AnnotationValidationError"},
		{ResolutionErrorCode, "ResolutionError"},
		{EmissionErrorCode, "EmissionError"},
		{TemplateErrorCode, "TemplateError"},
		{LoadErrorCode, "LoadError"},
		{FileSystemErrorCode, "FileSystemError"},
		{ConfigurationErrorCode, "ConfigurationError"},
		{ErrorCode(999), "UnknownError"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestSourceLocation_String(t *testing.T) {
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.go", SourceLocation{File: "a.go"}.String())
	assert.Equal(t, "a.go:3", SourceLocation{File: "a.go", Line: 3}.String())
	assert.Equal(t, "a.go:3:7", SourceLocation{File: "a.go", Line: 3, Column: 7}.String())
}

func TestBaseError(t *testing.T) {
	t.Run("message with location and cause", func(t *testing.T) {
		cause := stderrors.New("disk full")
		err := Wrap(FileSystemErrorCode, "failed to write", cause).
			WithLocation(SourceLocation{File: "box.go", Line: 10}).
			WithContext("path", "/tmp/x").
			WithSuggestion("free some space")

		assert.Equal(t, "box.go:10: failed to write: disk full", err.Error())
		assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
		assert.Equal(t, "/tmp/x", err.Context()["path"])
		assert.Equal(t, []string{"free some space"}, err.Suggestions())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("empty context is never nil", func(t *testing.T) {
		err := &BaseError{Message: "x"}
		assert.NotNil(t, err.Context())
	})
}

func TestCodeOf(t *testing.T) {
	resolution := NewResolutionError("test.Box", "test.Base", "type argument count mismatch")
	wrapped := fmt.Errorf("processing subject: %w", resolution)

	assert.Equal(t, ResolutionErrorCode, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, ResolutionErrorCode))
	assert.False(t, IsCode(wrapped, EmissionErrorCode))
	assert.False(t, IsCode(nil, ResolutionErrorCode))
	assert.Equal(t, UnknownErrorCode, CodeOf(stderrors.New("plain")))

	var target *ResolutionError
	require.True(t, stderrors.As(wrapped, &target))
	assert.Equal(t, "test.Box", target.Subject)
	assert.Equal(t, "test.Base", target.Ancestor)
}

func TestEmissionError(t *testing.T) {
	err := NewEmissionError("interface", "test.BoxInterface", "out/BoxInterface.java", stderrors.New("permission denied"))

	assert.Equal(t, "autoiface: error generating interface test.BoxInterface: permission denied", err.Error())
	assert.Equal(t, "out/BoxInterface.java", err.Context()["path"])
	assert.True(t, IsCode(err, EmissionErrorCode))
}

func TestMultipleErrors(t *testing.T) {
	errs := NewMultipleErrors()
	assert.Nil(t, errs.ErrorOrNil())

	errs.Add(NewResolutionError("a.A", "", "first"))
	errs.Add(NewAnnotationValidationError("//autoiface::interface -x", "x", "unknown parameter"))

	require.Error(t, errs.ErrorOrNil())
	assert.Equal(t, 2, errs.Count())
	assert.Len(t, errs.GetByCode(ResolutionErrorCode), 1)
	assert.Contains(t, errs.Error(), "multiple errors (2 total)")
	assert.True(t, IsCode(errs, ResolutionErrorCode))

	var annotationErr *AnnotationError
	require.True(t, stderrors.As(errs, &annotationErr))
	assert.Equal(t, "x", annotationErr.Parameter)
}
