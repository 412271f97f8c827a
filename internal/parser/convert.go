package parser

import (
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
)

// converter projects go/types declarations into the host-independent model
type converter struct {
	fset *token.FileSet
	// rename maps receiver type parameters onto the declared names of
	// their type, for the method being converted
	rename map[*types.TypeParam]string
}

func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

// decl converts a generic or plain named type. Supers lists the embedded
// types in declaration order; ancestors returns their origins for loading.
func (c *converter) decl(named *types.Named) (*models.ClassDecl, []*types.Named) {
	named = named.Origin()
	obj := named.Obj()

	decl := &models.ClassDecl{
		Name: obj.Name(),
		Kind: models.HolderClass,
	}
	if pkg := obj.Pkg(); pkg != nil {
		decl.Package = pkg.Path()
		decl.PackageName = pkg.Name()
	}
	if obj.Pos().IsValid() && c.fset != nil {
		pos := c.fset.Position(obj.Pos())
		decl.Location = errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
		decl.SourceDir = filepath.Dir(pos.Filename)
	}

	for i := 0; i < named.TypeParams().Len(); i++ {
		decl.TypeParams = append(decl.TypeParams, c.typeParam(named.TypeParams().At(i)))
	}

	var ancestors []*types.Named
	embed := func(t types.Type) {
		if ptr, ok := t.(*types.Pointer); ok {
			t = ptr.Elem()
		}
		t = types.Unalias(t)
		n, ok := t.(*types.Named)
		if !ok {
			return
		}
		decl.Supers = append(decl.Supers, c.ref(n))
		ancestors = append(ancestors, n.Origin())
	}

	switch under := named.Underlying().(type) {
	case *types.Interface:
		decl.Kind = models.HolderInterface
		for i := 0; i < under.NumEmbeddeds(); i++ {
			embed(under.EmbeddedType(i))
		}
		for i := 0; i < under.NumExplicitMethods(); i++ {
			decl.Members = append(decl.Members, c.method(under.ExplicitMethod(i), nil))
		}
	case *types.Struct:
		for i := 0; i < under.NumFields(); i++ {
			field := under.Field(i)
			if field.Embedded() {
				embed(field.Type())
				continue
			}
			decl.Members = append(decl.Members, models.Member{
				Kind:       models.MemberField,
				Name:       field.Name(),
				Results:    []models.TypeRef{c.ref(field.Type())},
				Visibility: visibility(field.Exported()),
			})
		}
	}

	if _, isInterface := named.Underlying().(*types.Interface); !isInterface {
		for i := 0; i < named.NumMethods(); i++ {
			decl.Members = append(decl.Members, c.method(named.Method(i), named.TypeParams()))
		}
	}

	return decl, ancestors
}

func visibility(exported bool) models.Visibility {
	if exported {
		return models.VisibilityPublic
	}
	return models.VisibilityPackage
}

// method converts a declared method. Receiver type parameters are renamed to
// the names declared on the type.
func (c *converter) method(fn *types.Func, declared *types.TypeParamList) models.Member {
	sig := fn.Type().(*types.Signature)

	if recv := sig.RecvTypeParams(); recv != nil && declared != nil {
		c.rename = make(map[*types.TypeParam]string, recv.Len())
		for i := 0; i < recv.Len() && i < declared.Len(); i++ {
			c.rename[recv.At(i)] = declared.At(i).Obj().Name()
		}
		defer func() { c.rename = nil }()
	}

	m := models.Member{
		Kind:       models.MemberMethod,
		Name:       fn.Name(),
		Variadic:   sig.Variadic(),
		Visibility: visibility(fn.Exported()),
	}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		m.Params = append(m.Params, models.Param{Name: p.Name(), Type: c.ref(p.Type())})
	}
	for i := 0; i < sig.Results().Len(); i++ {
		m.Results = append(m.Results, c.ref(sig.Results().At(i).Type()))
	}
	return m
}

func (c *converter) typeParam(tp *types.TypeParam) models.TypeParam {
	p := models.TypeParam{Name: tp.Obj().Name()}
	constraint := c.ref(tp.Constraint())
	if constraint.Kind != models.RefPrimitive || constraint.Name != "any" {
		p.Bounds = []models.TypeRef{constraint}
	}
	return p
}

// ref converts a type expression. Literal struct and non-empty interface
// types are kept as opaque text with the imports they reference.
func (c *converter) ref(t types.Type) models.TypeRef {
	switch t := t.(type) {
	case *types.Alias:
		if t.Obj().Pkg() == nil && t.Obj().Name() == "any" {
			return models.Primitive("any")
		}
		return c.ref(types.Unalias(t))
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return models.TypeRef{Kind: models.RefOpaque, Text: "unsafe.Pointer", Imports: []models.Import{{Path: "unsafe", Name: "unsafe"}}}
		}
		return models.Primitive(t.Name())
	case *types.Named:
		obj := t.Obj()
		var args []models.TypeRef
		for i := 0; i < t.TypeArgs().Len(); i++ {
			args = append(args, c.ref(t.TypeArgs().At(i)))
		}
		if obj.Pkg() == nil {
			return models.Named("", obj.Name(), args...)
		}
		ref := models.Named(obj.Pkg().Path(), obj.Name(), args...)
		ref.PkgName = obj.Pkg().Name()
		return ref
	case *types.TypeParam:
		if name, ok := c.rename[t]; ok {
			return models.Variable(name)
		}
		return models.Variable(t.Obj().Name())
	case *types.Pointer:
		return models.PointerTo(c.ref(t.Elem()))
	case *types.Slice:
		return models.SliceOf(c.ref(t.Elem()))
	case *types.Array:
		ref := models.ArrayOf(c.ref(t.Elem()))
		ref.Len = strconv.FormatInt(t.Len(), 10)
		return ref
	case *types.Map:
		key, elem := c.ref(t.Key()), c.ref(t.Elem())
		return models.TypeRef{Kind: models.RefMap, MapKey: &key, Elem: &elem}
	case *types.Chan:
		elem := c.ref(t.Elem())
		ref := models.TypeRef{Kind: models.RefChan, Elem: &elem}
		switch t.Dir() {
		case types.SendOnly:
			ref.Dir = models.ChanSend
		case types.RecvOnly:
			ref.Dir = models.ChanRecv
		}
		return ref
	case *types.Signature:
		ref := models.TypeRef{Kind: models.RefFunc, Variadic: t.Variadic()}
		for i := 0; i < t.Params().Len(); i++ {
			ref.Args = append(ref.Args, c.ref(t.Params().At(i).Type()))
		}
		for i := 0; i < t.Results().Len(); i++ {
			ref.Results = append(ref.Results, c.ref(t.Results().At(i).Type()))
		}
		return ref
	case *types.Interface:
		if t.Empty() && !t.IsImplicit() {
			return models.Primitive("any")
		}
		return c.opaque(t)
	default:
		return c.opaque(t)
	}
}

func (c *converter) opaque(t types.Type) models.TypeRef {
	ref := models.TypeRef{Kind: models.RefOpaque}
	seen := make(map[string]bool)
	ref.Text = types.TypeString(t, func(pkg *types.Package) string {
		if !seen[pkg.Path()] {
			seen[pkg.Path()] = true
			ref.Imports = append(ref.Imports, models.Import{Path: pkg.Path(), Name: pkg.Name()})
		}
		return pkg.Name()
	})
	return ref
}
