// Package storagetest provides an in-memory storage.BlobStore for tests.
package storagetest

import (
	"context"
	"sync"

	"github.com/deppfellow/portfolio-api/internal/storage"
)

// BaseURL prefixes the URLs returned by Store.
const BaseURL = "https://blobs.test/assets/"

// Object is a stored blob.
type Object struct {
	Data        []byte
	ContentType string
}

// Store keeps blobs in a map.
type Store struct {
	mu      sync.Mutex
	objects map[string]Object

	// Err, when set, fails every call.
	Err error
}

var _ storage.BlobStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{objects: make(map[string]Object)}
}

func (s *Store) PutObject(_ context.Context, name string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.objects[name] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return BaseURL + name, nil
}

func (s *Store) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

// Object returns the blob stored under name.
func (s *Store) Object(name string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[name]
	return obj, ok
}
