package generics

import (
	"fmt"
	"strings"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/typemodel"
)

// Ancestor is one type of a subject's linearized ancestor graph together with
// the bindings of its type parameters in the subject's terms
type Ancestor struct {
	Decl     *models.ClassDecl
	Bindings Bindings
	Depth    int
}

// Engine resolves ancestor bindings against a type model
type Engine struct {
	model typemodel.TypeModel
}

// NewEngine creates a substitution engine over a type model
func NewEngine(model typemodel.TypeModel) *Engine {
	return &Engine{model: model}
}

// Ancestors returns the subject followed by every ancestor, breadth first,
// each visited once. Depth 0 is the subject.
func (e *Engine) Ancestors(subject *models.ClassDecl) ([]Ancestor, error) {
	result := []Ancestor{{Decl: subject, Depth: 0}}
	seen := map[string]int{subject.QualifiedName(): 0}

	for i := 0; i < len(result); i++ {
		current := result[i]
		for _, super := range current.Decl.Supers {
			decl, ok := e.model.Lookup(super)
			if !ok {
				err := errors.NewResolutionError(subject.QualifiedName(), super.QualifiedName(),
					fmt.Sprintf("ancestor %s of %s is not in the type model", super.QualifiedName(), current.Decl.QualifiedName()))
				err.WithSuggestion("Make sure every supertype is declared in the loaded model")
				return nil, err
			}

			seenRef := Substitute(super, current.Bindings)
			bindings, err := e.bind(subject, decl, seenRef)
			if err != nil {
				return nil, err
			}

			name := decl.QualifiedName()
			if idx, visited := seen[name]; visited {
				prev := result[idx]
				if prev.Bindings.Key(decl.TypeParams) != bindings.Key(decl.TypeParams) {
					return nil, errors.NewResolutionError(subject.QualifiedName(), name,
						fmt.Sprintf("%s is inherited with inconsistent type arguments <%s> and <%s>",
							name, prev.Bindings.Key(decl.TypeParams), bindings.Key(decl.TypeParams)))
				}
				continue
			}

			seen[name] = len(result)
			result = append(result, Ancestor{Decl: decl, Bindings: bindings, Depth: current.Depth + 1})
		}
	}

	return result, nil
}

// bind maps decl's type parameters onto the arguments of ref
func (e *Engine) bind(subject, decl *models.ClassDecl, ref models.TypeRef) (Bindings, error) {
	params := decl.TypeParams
	if len(params) == 0 {
		if len(ref.Args) > 0 {
			return nil, e.arityError(subject, decl, ref)
		}
		return nil, nil
	}

	bindings := make(Bindings, len(params))
	if len(ref.Args) == 0 {
		for _, p := range params {
			bindings[p.Name] = e.Erasure(decl, p)
		}
		return bindings, nil
	}

	if len(ref.Args) != len(params) {
		return nil, e.arityError(subject, decl, ref)
	}
	for i, p := range params {
		bindings[p.Name] = ref.Args[i]
	}
	return bindings, nil
}

func (e *Engine) arityError(subject, decl *models.ClassDecl, ref models.TypeRef) error {
	names := make([]string, len(decl.TypeParams))
	for i, p := range decl.TypeParams {
		names[i] = p.Name
	}
	return errors.NewResolutionError(subject.QualifiedName(), decl.QualifiedName(),
		fmt.Sprintf("%s declares %d type parameter(s) <%s> but is referenced with %d argument(s) as %s",
			decl.QualifiedName(), len(names), strings.Join(names, ","), len(ref.Args), ref.Key()))
}

// Erasure returns the type a raw reference binds p to: the erasure of its
// first bound, or the root object type when it has none.
func (e *Engine) Erasure(decl *models.ClassDecl, p models.TypeParam) models.TypeRef {
	return e.erase(decl, p, map[string]bool{})
}

func (e *Engine) erase(decl *models.ClassDecl, p models.TypeParam, visiting map[string]bool) models.TypeRef {
	if len(p.Bounds) == 0 || visiting[p.Name] {
		return e.rootRef()
	}
	visiting[p.Name] = true

	bound := p.Bounds[0]
	switch bound.Kind {
	case models.RefVariable:
		for _, other := range decl.TypeParams {
			if other.Name == bound.Name {
				return e.erase(decl, other, visiting)
			}
		}
		return e.rootRef()
	case models.RefNamed:
		erased := bound
		erased.Args = nil
		return erased
	default:
		return bound
	}
}

func (e *Engine) rootRef() models.TypeRef {
	if root := e.model.Root(); root != nil {
		ref := root.Ref()
		ref.Args = nil
		return ref
	}
	return models.Primitive("any")
}

// AsMemberOf returns member's signature with bindings applied. Method-level
// type parameters shadow the bindings and stay generic.
func AsMemberOf(member models.Member, bindings Bindings) models.Member {
	scoped := bindings.Without(member.TypeParams)
	out := member
	out.Params = make([]models.Param, len(member.Params))
	for i, p := range member.Params {
		out.Params[i] = models.Param{Name: p.Name, Type: Substitute(p.Type, scoped)}
	}
	out.Results = SubstituteAll(member.Results, scoped)
	out.Throws = SubstituteAll(member.Throws, scoped)
	out.TypeParams = SubstituteTypeParams(member.TypeParams, scoped)
	return out
}
