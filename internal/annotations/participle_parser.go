package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/autoiface/internal/errors"
)

// Prefix marks a comment line as an autoiface annotation
const Prefix = "autoiface::"

// annotationAST is the grammar root of an autoiface comment
type annotationAST struct {
	Prefix string      `parser:"@Prefix"`
	Kind   string      `parser:"@Word"`
	Params []*paramAST `parser:"@@*"`
}

// paramAST is a single -flag or -flag=value
type paramAST struct {
	Pos   lexer.Position
	Name  string  `parser:"@Flag"`
	Value *string `parser:"( Equals @(String | Word) )?"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Prefix", Pattern: `//\s*autoiface::`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Flag", Pattern: `-[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Word", Pattern: `[^\s"=-][^\s"=]*`},
})

// ParticipleParser parses autoiface annotations with alecthomas/participle
type ParticipleParser struct {
	parser   *participle.Parser[annotationAST]
	registry AnnotationRegistry
}

// NewParticipleParser creates a new parser validating against registry.
// A nil registry means DefaultRegistry.
func NewParticipleParser(registry AnnotationRegistry) *ParticipleParser {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &ParticipleParser{
		parser: participle.MustBuild[annotationAST](
			participle.Lexer(annotationLexer),
			participle.Unquote("String"),
			participle.Elide("Whitespace"),
		),
		registry: registry,
	}
}

// IsAnnotation reports whether a comment line is an autoiface annotation
func IsAnnotation(comment string) bool {
	content := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(content, Prefix)
}

// ParseAnnotation parses and validates one annotation comment line
func (p *ParticipleParser) ParseAnnotation(comment string, location errors.SourceLocation) (*ParsedAnnotation, error) {
	raw := strings.TrimSpace(comment)
	ast, err := p.parser.ParseString(location.File, raw)
	if err != nil {
		parseErr := errors.NewAnnotationSyntaxError(raw, err)
		parseErr.WithLocation(location)
		return nil, parseErr
	}

	annotationType, err := ParseAnnotationType(ast.Kind)
	if err != nil {
		validationErr := errors.NewAnnotationValidationError(raw, "", err.Error())
		validationErr.WithLocation(location)
		return nil, validationErr
	}

	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		validationErr := errors.NewAnnotationValidationError(raw, "", err.Error())
		validationErr.WithLocation(location)
		return nil, validationErr
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        raw,
	}

	for _, param := range ast.Params {
		name := strings.TrimPrefix(param.Name, "-")
		paramLocation := location
		paramLocation.Column = location.Column + param.Pos.Column - 1

		if err := p.setParameter(parsed, schema, name, param.Value); err != nil {
			validationErr := errors.NewAnnotationValidationError(raw, name, err.Error())
			validationErr.WithLocation(paramLocation)
			return nil, validationErr
		}
	}

	return parsed, nil
}

func (p *ParticipleParser) setParameter(parsed *ParsedAnnotation, schema AnnotationSchema, name string, raw *string) error {
	spec, known := schema.Parameters[name]
	if !known {
		return fmt.Errorf("unknown parameter '-%s' for %s annotation (valid: %s)", name, schema.Type.String(), strings.Join(parameterNames(schema), ", "))
	}
	if parsed.HasParameter(name) {
		return fmt.Errorf("parameter '-%s' given more than once", name)
	}

	value, err := spec.Convert(raw)
	if err != nil {
		return fmt.Errorf("parameter '-%s' %s", name, err.Error())
	}
	if spec.Validator != nil {
		if err := spec.Validator(value); err != nil {
			return fmt.Errorf("parameter '-%s': %w", name, err)
		}
	}

	parsed.Parameters[name] = value
	return nil
}

func parameterNames(schema AnnotationSchema) []string {
	names := make([]string, 0, len(schema.Parameters))
	for _, name := range []string{ParamName, ParamPkg, ParamIncludeInherited, ParamCreateDecorator, ParamDecoratorName} {
		if _, ok := schema.Parameters[name]; ok {
			names = append(names, "-"+name)
		}
	}
	return names
}
