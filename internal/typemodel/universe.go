// Package typemodel defines the read-only type model consumed by the
// generator core, and the in-memory universe that host loaders populate.
package typemodel

import (
	"fmt"

	"github.com/toyz/autoiface/internal/models"
)

// TypeModel is the query surface of a host type model. Implementations must
// be safe for concurrent readers once loading has finished.
type TypeModel interface {
	// Lookup returns the declaration a named reference points at.
	Lookup(ref models.TypeRef) (*models.ClassDecl, bool)
	// Decl returns a declaration by qualified name.
	Decl(qualifiedName string) (*models.ClassDecl, bool)
	// Root returns the universal root object type, or nil when the host
	// type system has none.
	Root() *models.ClassDecl
}

// Universe is a map-backed TypeModel. It is populated once by a loader and
// never mutated afterwards.
type Universe struct {
	decls map[string]*models.ClassDecl
	order []string
	root  string
}

// NewUniverse creates an empty universe
func NewUniverse() *Universe {
	return &Universe{decls: make(map[string]*models.ClassDecl)}
}

// Add registers a declaration. Registering the same qualified name twice is
// an error.
func (u *Universe) Add(decl *models.ClassDecl) error {
	name := decl.QualifiedName()
	if _, exists := u.decls[name]; exists {
		return fmt.Errorf("type %s declared more than once", name)
	}
	u.decls[name] = decl
	u.order = append(u.order, name)
	return nil
}

// Has reports whether a qualified name is registered
func (u *Universe) Has(qualifiedName string) bool {
	_, ok := u.decls[qualifiedName]
	return ok
}

// SetRoot marks the universal root object type
func (u *Universe) SetRoot(qualifiedName string) error {
	if qualifiedName != "" && !u.Has(qualifiedName) {
		return fmt.Errorf("root type %s is not declared", qualifiedName)
	}
	u.root = qualifiedName
	return nil
}

// Lookup implements TypeModel
func (u *Universe) Lookup(ref models.TypeRef) (*models.ClassDecl, bool) {
	if ref.Kind != models.RefNamed {
		return nil, false
	}
	return u.Decl(ref.QualifiedName())
}

// Decl implements TypeModel
func (u *Universe) Decl(qualifiedName string) (*models.ClassDecl, bool) {
	decl, ok := u.decls[qualifiedName]
	return decl, ok
}

// Root implements TypeModel
func (u *Universe) Root() *models.ClassDecl {
	if u.root == "" {
		return nil
	}
	return u.decls[u.root]
}

// Decls returns all declarations in registration order
func (u *Universe) Decls() []*models.ClassDecl {
	decls := make([]*models.ClassDecl, 0, len(u.order))
	for _, name := range u.order {
		decls = append(decls, u.decls[name])
	}
	return decls
}

// Len returns the number of declarations
func (u *Universe) Len() int {
	return len(u.order)
}
