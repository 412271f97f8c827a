package models

import "strings"

// RefKind identifies the shape of a TypeRef
type RefKind int

const (
	RefPrimitive RefKind = iota
	RefNamed
	RefVariable
	RefArray
	RefSlice
	RefPointer
	RefMap
	RefChan
	RefFunc
	RefWildcard
	RefOpaque
)

// ChanDir is the direction of a channel type
type ChanDir int

const (
	ChanBoth ChanDir = iota
	ChanSend
	ChanRecv
)

// BoundKind is the bound of a wildcard type argument
type BoundKind int

const (
	BoundNone BoundKind = iota
	BoundExtends
	BoundSuper
)

// Import is a package referenced by an opaque type
type Import struct {
	Path string
	Name string
}

// TypeRef is a host-independent type expression
type TypeRef struct {
	Kind RefKind

	// Name is the primitive name, the type variable name, or the local name
	// of a named type (dotted for nested types, e.g. "Outer.Inner").
	Name string
	// Package is the package path of a named type; empty for builtins.
	Package string
	// PkgName is the package clause name, when it differs from the last
	// element of Package.
	PkgName string

	Args    []TypeRef // type arguments, or func parameters
	Results []TypeRef // func results
	Elem    *TypeRef  // element of array, slice, pointer, chan, map value, wildcard bound
	MapKey  *TypeRef  // map key

	Len      string // array length; empty for unsized arrays
	Variadic bool   // func with a variadic last parameter
	Dir      ChanDir
	Bound    BoundKind

	Text    string   // opaque rendering
	Imports []Import // packages referenced by Text
}

// Primitive returns a builtin type reference
func Primitive(name string) TypeRef {
	return TypeRef{Kind: RefPrimitive, Name: name}
}

// Named returns a reference to a named type
func Named(pkg, name string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: RefNamed, Package: pkg, Name: name, Args: args}
}

// Variable returns a type parameter reference
func Variable(name string) TypeRef {
	return TypeRef{Kind: RefVariable, Name: name}
}

// ArrayOf returns an array of elem
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefArray, Elem: &elem}
}

// SliceOf returns a slice of elem
func SliceOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefSlice, Elem: &elem}
}

// PointerTo returns a pointer to elem
func PointerTo(elem TypeRef) TypeRef {
	return TypeRef{Kind: RefPointer, Elem: &elem}
}

// Wildcard returns a wildcard type argument with an optional bound
func Wildcard(kind BoundKind, bound *TypeRef) TypeRef {
	return TypeRef{Kind: RefWildcard, Bound: kind, Elem: bound}
}

// QualifiedName returns package and local name joined with a dot
func (r TypeRef) QualifiedName() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// IsVoid reports whether the reference denotes "no value"
func (r TypeRef) IsVoid() bool {
	return r.Kind == RefPrimitive && r.Name == "void"
}

// Key returns a canonical identity string for the type expression
func (r TypeRef) Key() string {
	var b strings.Builder
	writeKey(&b, r)
	return b.String()
}

func writeKey(b *strings.Builder, r TypeRef) {
	switch r.Kind {
	case RefPrimitive, RefVariable:
		b.WriteString(r.Name)
	case RefNamed:
		b.WriteString(r.QualifiedName())
		if len(r.Args) > 0 {
			b.WriteByte('<')
			writeKeys(b, r.Args)
			b.WriteByte('>')
		}
	case RefArray:
		writeElemKey(b, r.Elem)
		b.WriteString("[" + r.Len + "]")
	case RefSlice:
		b.WriteString("[]")
		writeElemKey(b, r.Elem)
	case RefPointer:
		b.WriteByte('*')
		writeElemKey(b, r.Elem)
	case RefMap:
		b.WriteString("map[")
		writeElemKey(b, r.MapKey)
		b.WriteByte(']')
		writeElemKey(b, r.Elem)
	case RefChan:
		switch r.Dir {
		case ChanSend:
			b.WriteString("chan<- ")
		case ChanRecv:
			b.WriteString("<-chan ")
		default:
			b.WriteString("chan ")
		}
		writeElemKey(b, r.Elem)
	case RefFunc:
		b.WriteString("func(")
		writeKeys(b, r.Args)
		if r.Variadic {
			b.WriteString("...")
		}
		b.WriteString(")(")
		writeKeys(b, r.Results)
		b.WriteByte(')')
	case RefWildcard:
		b.WriteByte('?')
		switch r.Bound {
		case BoundExtends:
			b.WriteString(" extends ")
			writeElemKey(b, r.Elem)
		case BoundSuper:
			b.WriteString(" super ")
			writeElemKey(b, r.Elem)
		}
	case RefOpaque:
		b.WriteString(r.Text)
	}
}

func writeKeys(b *strings.Builder, refs []TypeRef) {
	for i, ref := range refs {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(b, ref)
	}
}

func writeElemKey(b *strings.Builder, r *TypeRef) {
	if r != nil {
		writeKey(b, *r)
	}
}

// TypeParam is a declared generic type parameter
type TypeParam struct {
	Name   string
	Bounds []TypeRef
}

// VariablesOf returns a variable reference for each type parameter, in order
func VariablesOf(params []TypeParam) []TypeRef {
	if len(params) == 0 {
		return nil
	}
	refs := make([]TypeRef, len(params))
	for i, p := range params {
		refs[i] = Variable(p.Name)
	}
	return refs
}
