// Package descriptor loads a Java-like class hierarchy described in YAML and
// exposes it as a type model with generation subjects.
package descriptor

import (
	"gopkg.in/yaml.v3"

	"github.com/toyz/autoiface/internal/models"
)

// File is the top-level document of a descriptor model
type File struct {
	Root  string      `yaml:"root,omitempty"`
	Types []yaml.Node `yaml:"types"`
}

// TypeDecl describes one class, interface or other holder
type TypeDecl struct {
	Package       string         `yaml:"package"`
	Name          string         `yaml:"name"`
	Enclosing     string         `yaml:"enclosing,omitempty"`
	Kind          string         `yaml:"kind,omitempty"`
	TypeParams    []string       `yaml:"typeParams,omitempty"`
	Extends       []string       `yaml:"extends,omitempty"`
	Members       []MemberDecl   `yaml:"members,omitempty"`
	AutoInterface *AutoInterface `yaml:"autoInterface,omitempty"`
}

// MemberDecl describes one member of a type
type MemberDecl struct {
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind,omitempty"`
	Params     []string `yaml:"params,omitempty"`
	Returns    string   `yaml:"returns,omitempty"`
	Throws     []string `yaml:"throws,omitempty"`
	TypeParams []string `yaml:"typeParams,omitempty"`
	Static     bool     `yaml:"static,omitempty"`
	Visibility string   `yaml:"visibility,omitempty"`
}

// AutoInterface marks a type as a subject. Unset fields take the loader's
// defaults.
type AutoInterface struct {
	Name             *string `yaml:"name,omitempty"`
	Pkg              *string `yaml:"pkg,omitempty"`
	IncludeInherited *bool   `yaml:"includeInherited,omitempty"`
	CreateDecorator  *bool   `yaml:"createDecorator,omitempty"`
	DecoratorName    *string `yaml:"decoratorName,omitempty"`
}

// Options applies the block over defaults
func (a *AutoInterface) Options(defaults models.Options) models.Options {
	opts := defaults
	if a.Name != nil {
		opts.Name = *a.Name
	}
	if a.Pkg != nil {
		opts.Pkg = *a.Pkg
	}
	if a.IncludeInherited != nil {
		opts.IncludeInherited = *a.IncludeInherited
	}
	if a.CreateDecorator != nil {
		opts.CreateDecorator = *a.CreateDecorator
	}
	if a.DecoratorName != nil {
		opts.DecoratorName = *a.DecoratorName
	}
	return opts
}

func holderKind(kind string) (models.HolderKind, bool) {
	switch kind {
	case "", "class":
		return models.HolderClass, true
	case "interface":
		return models.HolderInterface, true
	case "enum", "record", "annotation":
		return models.HolderOther, true
	default:
		return 0, false
	}
}

func memberKind(kind string) (models.MemberKind, bool) {
	switch kind {
	case "", "method":
		return models.MemberMethod, true
	case "field":
		return models.MemberField, true
	case "constructor":
		return models.MemberConstructor, true
	default:
		return 0, false
	}
}

func visibility(v string) (models.Visibility, bool) {
	switch v {
	case "", "public":
		return models.VisibilityPublic, true
	case "protected":
		return models.VisibilityProtected, true
	case "package":
		return models.VisibilityPackage, true
	case "private":
		return models.VisibilityPrivate, true
	default:
		return 0, false
	}
}

var javaPrimitives = map[string]bool{
	"boolean": true, "byte": true, "short": true, "int": true,
	"long": true, "char": true, "float": true, "double": true, "void": true,
}
