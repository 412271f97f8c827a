package generator

import (
	"fmt"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/naming"
)

// DefaultAccessor is the accessor name used when none is configured
const DefaultAccessor = "DecoratedObject"

// Synthesizer builds interface and decorator artifacts from resolved methods
type Synthesizer struct {
	accessor string
}

// NewSynthesizer creates a synthesizer whose decorators expose the delegate
// through the named accessor
func NewSynthesizer(accessor string) *Synthesizer {
	if accessor == "" {
		accessor = DefaultAccessor
	}
	return &Synthesizer{accessor: accessor}
}

// Interface builds the interface artifact: one abstract signature per method
func (s *Synthesizer) Interface(target naming.Target, typeParams []models.TypeParam, methods []models.MethodDescriptor, origin *models.ClassDecl) *models.Artifact {
	abstract := make([]models.MethodDescriptor, len(methods))
	for i, m := range methods {
		m.Forward = nil
		abstract[i] = m
	}

	return &models.Artifact{
		Kind:        models.ArtifactInterface,
		Package:     target.Package,
		PackageName: target.PackageName,
		Name:        target.Name,
		TypeParams:  typeParams,
		Methods:     abstract,
		Complete:    true,
		Origin:      origin.QualifiedName(),
		OriginDecl:  origin,
	}
}

// Decorator builds the decorator artifact. super is the interface artifact or
// the subject interface, parameterized with the decorator's type variables.
// complete reports whether methods covers super's whole method set. A method
// with the accessor's name and no parameters cannot be forwarded.
func (s *Synthesizer) Decorator(target naming.Target, super models.TypeRef, typeParams []models.TypeParam, methods []models.MethodDescriptor, complete bool, origin *models.ClassDecl) (*models.Artifact, error) {
	forwarding := make([]models.MethodDescriptor, len(methods))
	for i, m := range methods {
		if m.Name == s.accessor && len(m.Params) == 0 {
			return nil, errors.NewEmissionError("decorator", target.QualifiedName(), "",
				fmt.Errorf("method %s of %s collides with the decorator accessor", m.Name, origin.QualifiedName()))
		}
		forwarding[i] = s.forward(m)
	}

	return &models.Artifact{
		Kind:        models.ArtifactDecorator,
		Package:     target.Package,
		PackageName: target.PackageName,
		Name:        target.Name,
		TypeParams:  typeParams,
		Methods:     forwarding,
		Super:       &super,
		Accessor: &models.MethodDescriptor{
			Name:    s.accessor,
			Results: []models.TypeRef{super},
		},
		Complete:   complete,
		Origin:     origin.QualifiedName(),
		OriginDecl: origin,
	}, nil
}

func (s *Synthesizer) forward(m models.MethodDescriptor) models.MethodDescriptor {
	params := make([]models.Param, len(m.Params))
	args := make([]string, len(m.Params))
	for i, p := range m.Params {
		if p.Name == "" || p.Name == "_" {
			p.Name = fmt.Sprintf("arg%d", i)
		}
		params[i] = p
		args[i] = p.Name
	}

	m.Params = params
	m.Forward = &models.ForwardCall{
		Accessor: s.accessor,
		Method:   m.Name,
		Args:     args,
		Spread:   m.Variadic && len(args) > 0,
		Return:   m.HasResult(),
	}
	return m
}
