// Package resolver harvests the eligible public instance method set of a
// subject type, optionally across its whole ancestor graph.
package resolver

import (
	"github.com/toyz/autoiface/internal/generics"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/typemodel"
)

// Filter decides whether a member declared on holder is eligible
type Filter struct {
	Name string
	Keep func(holder *models.ClassDecl, member models.Member) bool
}

// Resolver computes method sets against one type model. It is safe for
// concurrent use: its state is computed once at construction.
type Resolver struct {
	engine   *generics.Engine
	rootKeys map[string]bool
	filters  []Filter
}

// NewResolver creates a resolver and precomputes the root object exclusion set
func NewResolver(model typemodel.TypeModel) *Resolver {
	r := &Resolver{
		engine:   generics.NewEngine(model),
		rootKeys: RootSignatures(model),
	}
	r.filters = []Filter{
		{Name: "method", Keep: func(_ *models.ClassDecl, m models.Member) bool {
			return m.Kind == models.MemberMethod
		}},
		{Name: "holder", Keep: func(h *models.ClassDecl, _ models.Member) bool {
			return h.Kind == models.HolderClass || h.Kind == models.HolderInterface
		}},
		{Name: "root", Keep: func(_ *models.ClassDecl, m models.Member) bool {
			return !r.rootKeys[MemberKey(m)]
		}},
		{Name: "static", Keep: func(_ *models.ClassDecl, m models.Member) bool {
			return !m.Static
		}},
		{Name: "public", Keep: func(_ *models.ClassDecl, m models.Member) bool {
			return m.IsPublic()
		}},
	}
	return r
}

// RootSignatures returns the keys of the root object type's instance methods
func RootSignatures(model typemodel.TypeModel) map[string]bool {
	keys := make(map[string]bool)
	root := model.Root()
	if root == nil {
		return keys
	}
	for _, m := range root.Members {
		if m.Kind == models.MemberMethod && !m.Static {
			keys[MemberKey(m)] = true
		}
	}
	return keys
}

// IsRootMethod reports whether a member collides with a root object method
func (r *Resolver) IsRootMethod(m models.Member) bool {
	return r.rootKeys[MemberKey(m)]
}

// Eligible applies the member filters in order
func (r *Resolver) Eligible(holder *models.ClassDecl, m models.Member) bool {
	for _, f := range r.filters {
		if !f.Keep(holder, m) {
			return false
		}
	}
	return true
}

// Resolve returns the subject's eligible methods as seen through the subject.
// With includeInherited the ancestor graph is walked most-derived first and
// the first occurrence of each signature key wins.
func (r *Resolver) Resolve(subject *models.ClassDecl, includeInherited bool) ([]models.MethodDescriptor, error) {
	ancestors := []generics.Ancestor{{Decl: subject}}
	if includeInherited {
		var err error
		ancestors, err = r.engine.Ancestors(subject)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)
	methods := make([]models.MethodDescriptor, 0)
	for _, ancestor := range ancestors {
		for _, member := range ancestor.Decl.Members {
			if !r.Eligible(ancestor.Decl, member) {
				continue
			}

			resolved := generics.AsMemberOf(member, ancestor.Bindings)
			key := MemberKey(resolved)
			if seen[key] {
				continue
			}
			seen[key] = true

			methods = append(methods, models.MethodDescriptor{
				Name:       resolved.Name,
				Params:     resolved.Params,
				Results:    resolved.Results,
				Throws:     resolved.Throws,
				TypeParams: resolved.TypeParams,
				Variadic:   resolved.Variadic,
				Origin:     ancestor.Decl.QualifiedName(),
				Key:        key,
			})
		}
	}
	return methods, nil
}
