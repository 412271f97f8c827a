package resolver

import (
	"strconv"
	"strings"

	"github.com/toyz/autoiface/internal/generics"
	"github.com/toyz/autoiface/internal/models"
)

// SignatureKey returns the identity of a method: its name and parameter types.
// Method-level type variables are replaced by their position and the erasure
// of their first bound, so renamed but equivalent generic methods collide
// while overloads differing only in a bound stay apart.
func SignatureKey(name string, params []models.Param, typeParams []models.TypeParam) string {
	var canon generics.Bindings
	if len(typeParams) > 0 {
		canon = make(generics.Bindings, len(typeParams))
		for i, p := range typeParams {
			placeholder := "#" + strconv.Itoa(i)
			if bound := boundErasure(p, typeParams, map[string]bool{}); bound != "" {
				placeholder += ":" + bound
			}
			canon[p.Name] = models.Variable(placeholder)
		}
	}

	keys := make([]string, len(params))
	for i, p := range params {
		keys[i] = generics.Substitute(p.Type, canon).Key()
	}
	return name + "(" + strings.Join(keys, ",") + ")"
}

// boundErasure returns the key of the erased first bound of p, following
// bounds that name another method type variable. Unbounded yields "".
func boundErasure(p models.TypeParam, typeParams []models.TypeParam, visiting map[string]bool) string {
	if len(p.Bounds) == 0 || visiting[p.Name] {
		return ""
	}
	visiting[p.Name] = true

	bound := p.Bounds[0]
	switch bound.Kind {
	case models.RefVariable:
		for _, other := range typeParams {
			if other.Name == bound.Name {
				return boundErasure(other, typeParams, visiting)
			}
		}
		return bound.Key()
	case models.RefNamed:
		bound.Args = nil
		return bound.Key()
	default:
		return bound.Key()
	}
}

// MemberKey returns the signature key of a member as declared
func MemberKey(m models.Member) string {
	return SignatureKey(m.Name, m.Params, m.TypeParams)
}
