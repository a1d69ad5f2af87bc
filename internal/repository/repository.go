// Package repository is the document store adapter.
//
// Every resource lives in a named collection of keyed documents. Collection
// exposes the operations handlers need (get, set, create, partial update,
// delete, filtered and ordered listing, atomic increment) and reports absent
// documents as ErrNotFound so callers can answer 404 instead of 500.
package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists is returned by Create when the key is taken.
	ErrAlreadyExists = errors.New("document already exists")
)

// Direction orders a listing.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter is an equality condition on a single field.
type Filter struct {
	Field  string
	Equals any
}

// Identifiable is implemented by models that carry their document key.
// Collections call SetID after decoding a document.
type Identifiable interface {
	SetID(id string)
}

// Collection is a typed view of one document collection.
//
// Field names in Filter, Update, ListOrdered and Increment are stored field
// names (the `firestore` tag of T).
type Collection[T any] interface {
	// Get returns the document with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Set writes doc under id, replacing any existing document. An empty id
	// generates one. The used id is returned.
	Set(ctx context.Context, id string, doc T) (string, error)

	// Create writes doc under id only if no document exists there;
	// otherwise it returns ErrAlreadyExists.
	Create(ctx context.Context, id string, doc T) error

	// Update merges fields into an existing document. Fields not named are
	// left untouched. Missing documents yield ErrNotFound.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes an existing document or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns every document, optionally restricted by filter.
	List(ctx context.Context, filter *Filter) ([]T, error)

	// ListOrdered is List sorted by field.
	ListOrdered(ctx context.Context, filter *Filter, field string, dir Direction) ([]T, error)

	// Increment atomically adds delta to a numeric field of an existing
	// document and returns the resulting value. Missing documents yield
	// ErrNotFound.
	Increment(ctx context.Context, id, field string, delta int64) (int64, error)
}

func setID[T any](doc *T, id string) {
	if v, ok := any(doc).(Identifiable); ok {
		v.SetID(id)
	}
}
