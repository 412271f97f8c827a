package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
)

func TestParticipleParser_ParseAnnotation(t *testing.T) {
	parser := NewParticipleParser(nil)
	loc := errors.SourceLocation{File: "service.go", Line: 10, Column: 1}

	tests := []struct {
		name     string
		input    string
		expected map[string]interface{}
	}{
		{
			name:     "bare annotation",
			input:    "//autoiface::interface",
			expected: map[string]interface{}{},
		},
		{
			name:     "space after comment marker",
			input:    "// autoiface::interface",
			expected: map[string]interface{}{},
		},
		{
			name:     "name and flags",
			input:    "//autoiface::interface -name=Store -includeInherited -createDecorator",
			expected: map[string]interface{}{"name": "Store", "includeInherited": true, "createDecorator": true},
		},
		{
			name:     "explicit boolean values",
			input:    "//autoiface::interface -includeInherited=false -createDecorator=true",
			expected: map[string]interface{}{"includeInherited": false, "createDecorator": true},
		},
		{
			name:     "quoted package path",
			input:    `//autoiface::interface -pkg="example.com/app/api" -decoratorName=StoreWrapper`,
			expected: map[string]interface{}{"pkg": "example.com/app/api", "decoratorName": "StoreWrapper"},
		},
		{
			name:     "unquoted package path",
			input:    "//autoiface::interface -pkg=example.com/app/api",
			expected: map[string]interface{}{"pkg": "example.com/app/api"},
		},
		{
			name:     "surrounding whitespace",
			input:    "   //autoiface::interface   -name=Store   ",
			expected: map[string]interface{}{"name": "Store"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parser.ParseAnnotation(tt.input, loc)
			require.NoError(t, err)
			assert.Equal(t, InterfaceAnnotation, parsed.Type)
			assert.Equal(t, tt.expected, parsed.Parameters)
			assert.Equal(t, loc, parsed.Location)
		})
	}
}

func TestParticipleParser_Errors(t *testing.T) {
	parser := NewParticipleParser(nil)
	loc := errors.SourceLocation{File: "service.go", Line: 3, Column: 1}

	tests := []struct {
		name      string
		input     string
		code      errors.ErrorCode
		parameter string
		contains  string
	}{
		{name: "missing prefix", input: "// interface -name=X", code: errors.AnnotationSyntaxErrorCode},
		{name: "parameter without dash", input: "//autoiface::interface name=X", code: errors.AnnotationSyntaxErrorCode},
		{name: "missing value after equals", input: "//autoiface::interface -name=", code: errors.AnnotationSyntaxErrorCode},
		{name: "unknown kind", input: "//autoiface::decorator", code: errors.AnnotationValidationErrorCode, contains: "unknown annotation type"},
		{name: "unknown parameter", input: "//autoiface::interface -inherit", code: errors.AnnotationValidationErrorCode, parameter: "inherit", contains: "-includeInherited"},
		{name: "duplicate parameter", input: "//autoiface::interface -name=A -name=B", code: errors.AnnotationValidationErrorCode, parameter: "name", contains: "more than once"},
		{name: "string without value", input: "//autoiface::interface -name", code: errors.AnnotationValidationErrorCode, parameter: "name", contains: "requires a value"},
		{name: "bad boolean", input: "//autoiface::interface -createDecorator=maybe", code: errors.AnnotationValidationErrorCode, parameter: "createDecorator", contains: "expected a boolean"},
		{name: "bad identifier", input: "//autoiface::interface -name=1Store", code: errors.AnnotationValidationErrorCode, parameter: "name", contains: "not a valid identifier"},
		{name: "bad import path", input: `//autoiface::interface -pkg="not a path"`, code: errors.AnnotationValidationErrorCode, parameter: "pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parser.ParseAnnotation(tt.input, loc)
			require.Error(t, err)
			assert.Nil(t, parsed)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)

			var annErr *errors.AnnotationError
			require.ErrorAs(t, err, &annErr)
			assert.Equal(t, tt.parameter, annErr.Parameter)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestParticipleParser_ParameterLocation(t *testing.T) {
	parser := NewParticipleParser(nil)

	_, err := parser.ParseAnnotation("//autoiface::interface -bogus", errors.SourceLocation{File: "a.go", Line: 7, Column: 1})
	require.Error(t, err)

	var annErr *errors.AnnotationError
	require.ErrorAs(t, err, &annErr)
	assert.Equal(t, errors.SourceLocation{File: "a.go", Line: 7, Column: 24}, annErr.Location())
}

func TestIsAnnotation(t *testing.T) {
	assert.True(t, IsAnnotation("//autoiface::interface"))
	assert.True(t, IsAnnotation("  //  autoiface::interface -name=X"))
	assert.False(t, IsAnnotation("// plain comment"))
	assert.False(t, IsAnnotation("//wire::service"))
}

func TestParsedAnnotation_Options(t *testing.T) {
	parser := NewParticipleParser(nil)
	defaults := models.Options{IncludeInherited: true, CreateDecorator: true, Pkg: "example.com/app/gen"}

	t.Run("absent parameters keep defaults", func(t *testing.T) {
		parsed, err := parser.ParseAnnotation("//autoiface::interface -name=Store", errors.SourceLocation{})
		require.NoError(t, err)
		assert.Equal(t, models.Options{
			Name:             "Store",
			Pkg:              "example.com/app/gen",
			IncludeInherited: true,
			CreateDecorator:  true,
		}, parsed.Options(defaults))
	})

	t.Run("explicit false overrides a true default", func(t *testing.T) {
		parsed, err := parser.ParseAnnotation("//autoiface::interface -createDecorator=false", errors.SourceLocation{})
		require.NoError(t, err)
		opts := parsed.Options(defaults)
		assert.False(t, opts.CreateDecorator)
		assert.True(t, opts.IncludeInherited)
	})
}

func TestParsedAnnotation_Getters(t *testing.T) {
	parsed := &ParsedAnnotation{Parameters: map[string]interface{}{"name": "Store", "createDecorator": true}}

	assert.True(t, parsed.HasParameter("name"))
	assert.False(t, parsed.HasParameter("pkg"))
	assert.Equal(t, "Store", parsed.GetString("name"))
	assert.Equal(t, "fallback", parsed.GetString("pkg", "fallback"))
	assert.Equal(t, "", parsed.GetString("createDecorator"), "wrong type falls back")
	assert.True(t, parsed.GetBool("createDecorator"))
	assert.True(t, parsed.GetBool("includeInherited", true))
	assert.False(t, parsed.GetBool("includeInherited"))
}
