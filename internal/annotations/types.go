package annotations

import (
	"fmt"
	"strconv"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
)

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	UnknownAnnotation AnnotationType = iota
	InterfaceAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case InterfaceAnnotation:
		return "interface"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "interface":
		return InterfaceAnnotation, nil
	default:
		return UnknownAnnotation, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// Parameter names of the interface annotation
const (
	ParamName             = "name"
	ParamPkg              = "pkg"
	ParamIncludeInherited = "includeInherited"
	ParamCreateDecorator  = "createDecorator"
	ParamDecoratorName    = "decoratorName"
)

// ParsedAnnotation represents a fully parsed annotation with type-safe parameters
type ParsedAnnotation struct {
	Type       AnnotationType         // Annotation type enum
	Target     string                 // Annotated type name
	Parameters map[string]interface{} // Typed parameters, only those present in the source
	Location   errors.SourceLocation  // Source location
	Raw        string                 // Original annotation text
}

// HasParameter checks if a parameter was written in the annotation
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(paramName string, defaultValue ...bool) bool {
	if value, exists := p.Parameters[paramName]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// Options applies the annotation's parameters over project defaults
func (p *ParsedAnnotation) Options(defaults models.Options) models.Options {
	return models.Options{
		Name:             p.GetString(ParamName, defaults.Name),
		Pkg:              p.GetString(ParamPkg, defaults.Pkg),
		IncludeInherited: p.GetBool(ParamIncludeInherited, defaults.IncludeInherited),
		CreateDecorator:  p.GetBool(ParamCreateDecorator, defaults.CreateDecorator),
		DecoratorName:    p.GetString(ParamDecoratorName, defaults.DecoratorName),
	}
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Type        ParameterType           // Parameter type
	Description string                  // Parameter description
	Validator   func(interface{}) error // Custom validator function
}

// Convert turns a raw token into the parameter's typed value. A flag written
// without a value is true for bool parameters.
func (s ParameterSpec) Convert(raw *string) (interface{}, error) {
	switch s.Type {
	case BoolType:
		if raw == nil {
			return true, nil
		}
		value, err := strconv.ParseBool(*raw)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean, got '%s'", *raw)
		}
		return value, nil
	default:
		if raw == nil {
			return nil, fmt.Errorf("requires a value")
		}
		return *raw, nil
	}
}

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Description string                   // Human-readable description
	Parameters  map[string]ParameterSpec // Parameter specifications
	Examples    []string                 // Usage examples
}
