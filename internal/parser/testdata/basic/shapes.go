package basic

import (
	"context"
	"io"
)

// Base holds items of any type
type Base[T any] struct {
	items []T
}

func (b *Base[E]) Add(item E) { b.items = append(b.items, item) }

func (b *Base[E]) All() []E { return b.items }

func (b *Base[E]) count() int { return len(b.items) }

// User is a stored record
type User struct {
	ID string
}

// Store keeps users
//
//autoiface::interface -includeInherited -createDecorator
type Store struct {
	*Base[User]
	io.Closer
	Name string
}

func (s *Store) Find(ctx context.Context, id string) (*User, error) { return nil, nil }

func (s Store) Logf(format string, args ...any) {}

func (s *Store) Close() error { return nil }

// Repository is a generic lookup table
//
//autoiface::interface -name=Repo -createDecorator=false
type Repository[K comparable, V any] struct {
	data map[K]V
}

func (r *Repository[A, B]) Get(key A) (B, bool) {
	v, ok := r.data[key]
	return v, ok
}

func (r *Repository[A, B]) Each(fn func(A, B) bool) {}

// Service is implemented elsewhere
//
//autoiface::interface -createDecorator
type Service interface {
	error
	Run(ctx context.Context) error
	Stop()
}

type (
	// Plain is not a subject
	Plain struct{}

	//autoiface::interface -name=Box
	Boxed struct{}
)
