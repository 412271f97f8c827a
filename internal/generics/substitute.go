// Package generics computes inherited member signatures as seen through a
// subject type's concrete type-argument bindings.
package generics

import (
	"github.com/toyz/autoiface/internal/models"
)

// Bindings maps a declaration's type parameter names to type expressions in
// the subject's terms. Unbound variables are left untouched.
type Bindings map[string]models.TypeRef

// Without returns a copy of b with the given names removed. Used for
// method-level type parameters, which shadow class-level bindings.
func (b Bindings) Without(params []models.TypeParam) Bindings {
	if len(params) == 0 || len(b) == 0 {
		return b
	}
	out := make(Bindings, len(b))
	for name, ref := range b {
		out[name] = ref
	}
	for _, p := range params {
		delete(out, p.Name)
	}
	return out
}

// Key returns a canonical string for the bindings of the given parameters
func (b Bindings) Key(params []models.TypeParam) string {
	key := ""
	for i, p := range params {
		if i > 0 {
			key += ","
		}
		ref, ok := b[p.Name]
		if !ok {
			ref = models.Variable(p.Name)
		}
		key += ref.Key()
	}
	return key
}

// Substitute rewrites every bound type variable in ref
func Substitute(ref models.TypeRef, b Bindings) models.TypeRef {
	if len(b) == 0 {
		return ref
	}
	switch ref.Kind {
	case models.RefVariable:
		if bound, ok := b[ref.Name]; ok {
			return bound
		}
		return ref
	case models.RefPrimitive, models.RefOpaque:
		return ref
	}

	out := ref
	out.Args = SubstituteAll(ref.Args, b)
	out.Results = SubstituteAll(ref.Results, b)
	out.Elem = substitutePtr(ref.Elem, b)
	out.MapKey = substitutePtr(ref.MapKey, b)
	return out
}

// SubstituteAll rewrites a list of type expressions
func SubstituteAll(refs []models.TypeRef, b Bindings) []models.TypeRef {
	if refs == nil {
		return nil
	}
	out := make([]models.TypeRef, len(refs))
	for i, ref := range refs {
		out[i] = Substitute(ref, b)
	}
	return out
}

func substitutePtr(ref *models.TypeRef, b Bindings) *models.TypeRef {
	if ref == nil {
		return nil
	}
	out := Substitute(*ref, b)
	return &out
}

// SubstituteTypeParams rewrites the bounds of method-level type parameters
func SubstituteTypeParams(params []models.TypeParam, b Bindings) []models.TypeParam {
	if params == nil {
		return nil
	}
	out := make([]models.TypeParam, len(params))
	for i, p := range params {
		out[i] = models.TypeParam{Name: p.Name, Bounds: SubstituteAll(p.Bounds, b)}
	}
	return out
}
