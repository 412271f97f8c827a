package annotations

import (
	"fmt"
	"go/token"

	"golang.org/x/mod/module"
)

// Built-in annotation schemas

// InterfaceAnnotationSchema defines the schema for //autoiface::interface annotations
var InterfaceAnnotationSchema = AnnotationSchema{
	Type:        InterfaceAnnotation,
	Description: "Generates an interface from a type's exported methods, and optionally a forwarding decorator",
	Parameters: map[string]ParameterSpec{
		ParamName: {
			Type:        StringType,
			Description: "Interface name; defaults to the type name plus 'Interface'",
			Validator:   validateIdentifier,
		},
		ParamPkg: {
			Type:        StringType,
			Description: "Import path of the output package; defaults to the type's own package",
			Validator: func(v interface{}) error {
				return module.CheckImportPath(v.(string))
			},
		},
		ParamIncludeInherited: {
			Type:        BoolType,
			Description: "Include methods promoted from embedded types",
		},
		ParamCreateDecorator: {
			Type:        BoolType,
			Description: "Also generate a decorator forwarding every method to a delegate",
		},
		ParamDecoratorName: {
			Type:        StringType,
			Description: "Decorator name; defaults to the interface base name plus 'Decorator'",
			Validator:   validateIdentifier,
		},
	},
	Examples: []string{
		"//autoiface::interface",
		"//autoiface::interface -name=Store",
		"//autoiface::interface -includeInherited -createDecorator",
		"//autoiface::interface -pkg=\"example.com/app/api\" -decoratorName=StoreWrapper",
	},
}

func validateIdentifier(v interface{}) error {
	name := v.(string)
	if !token.IsIdentifier(name) {
		return fmt.Errorf("'%s' is not a valid identifier", name)
	}
	return nil
}
