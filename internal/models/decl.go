package models

import (
	"strings"

	"github.com/toyz/autoiface/internal/errors"
)

// HolderKind tags the kind of a type that holds members
type HolderKind int

const (
	HolderClass HolderKind = iota
	HolderInterface
	HolderOther
)

// String returns the lowercase holder kind name
func (k HolderKind) String() string {
	switch k {
	case HolderClass:
		return "class"
	case HolderInterface:
		return "interface"
	default:
		return "other"
	}
}

// MemberKind tags the kind of a declared member
type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberField
	MemberConstructor
)

// Visibility of a declared member
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPackage
	VisibilityPrivate
)

// Param is a named, typed parameter
type Param struct {
	Name string
	Type TypeRef
}

// Member is a member as declared on its holder, before substitution
type Member struct {
	Kind       MemberKind
	Name       string
	Params     []Param
	Results    []TypeRef // empty means the method produces no value
	Throws     []TypeRef
	TypeParams []TypeParam
	Variadic   bool
	Static     bool
	Visibility Visibility
}

// IsPublic reports whether the member is visible outside its package
func (m Member) IsPublic() bool {
	return m.Visibility == VisibilityPublic
}

// ClassDecl is the read-only projection of a type supplied by a host type model
type ClassDecl struct {
	Package     string   // package path
	PackageName string   // package clause name
	Name        string   // simple name
	Enclosing   []string // enclosing type names, outermost first
	Kind        HolderKind
	TypeParams  []TypeParam
	Supers      []TypeRef // superclass first then interfaces, or embedded types in order
	Members     []Member

	Location  errors.SourceLocation
	SourceDir string // directory holding the declaration, when known
}

// LocalName returns the name within its package, dotted for nested types
func (d *ClassDecl) LocalName() string {
	if len(d.Enclosing) == 0 {
		return d.Name
	}
	return strings.Join(d.Enclosing, ".") + "." + d.Name
}

// QualifiedName returns the package-qualified name
func (d *ClassDecl) QualifiedName() string {
	if d.Package == "" {
		return d.LocalName()
	}
	return d.Package + "." + d.LocalName()
}

// Ref returns a reference to the declaration parameterized by its own type variables
func (d *ClassDecl) Ref() TypeRef {
	ref := Named(d.Package, d.LocalName(), VariablesOf(d.TypeParams)...)
	ref.PkgName = d.PackageName
	return ref
}

// IsInterface reports whether the declaration is an interface holder
func (d *ClassDecl) IsInterface() bool {
	return d.Kind == HolderInterface
}

// Options is the per-subject configuration record
type Options struct {
	Name             string `yaml:"name,omitempty"`
	Pkg              string `yaml:"pkg,omitempty"`
	IncludeInherited bool   `yaml:"includeInherited,omitempty"`
	CreateDecorator  bool   `yaml:"createDecorator,omitempty"`
	DecoratorName    string `yaml:"decoratorName,omitempty"`
}

// Subject is one annotated type scheduled for generation
type Subject struct {
	Decl    *ClassDecl
	Options Options
}
