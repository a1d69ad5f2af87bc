// Package repositorytest provides an in-memory repository.Collection for
// tests. Documents are held as JSON-shaped maps, so models must use the same
// names in their `json` and `firestore` tags.
package repositorytest

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/google/uuid"
)

// Collection is a goroutine-safe in-memory collection.
type Collection[T any] struct {
	mu   sync.Mutex
	docs map[string]map[string]any

	// Err, when set, is returned by every operation.
	Err error

	// Writes counts successful mutating calls.
	Writes int
}

// NewCollection returns an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{docs: make(map[string]map[string]any)}
}

var _ repository.Collection[struct{}] = (*Collection[struct{}])(nil)

// Len returns the number of stored documents.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

// Raw returns a copy of the stored fields of id.
func (c *Collection[T]) Raw(id string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	cp := make(map[string]any, len(doc))
	for k, v := range doc {
		cp[k] = v
	}
	return cp, true
}

func (c *Collection[T]) Get(_ context.Context, id string) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return zero, c.Err
	}
	fields, ok := c.docs[id]
	if !ok {
		return zero, repository.ErrNotFound
	}
	return decode[T](id, fields)
}

func (c *Collection[T]) Set(_ context.Context, id string, doc T) (string, error) {
	fields, err := encode(doc)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	c.docs[id] = fields
	c.Writes++
	return id, nil
}

func (c *Collection[T]) Create(_ context.Context, id string, doc T) error {
	fields, err := encode(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if _, ok := c.docs[id]; ok {
		return repository.ErrAlreadyExists
	}
	c.docs[id] = fields
	c.Writes++
	return nil
}

func (c *Collection[T]) Update(_ context.Context, id string, fields map[string]any) error {
	normalized, err := normalize(fields)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	doc, ok := c.docs[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range normalized {
		doc[k] = v
	}
	c.Writes++
	return nil
}

func (c *Collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if _, ok := c.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(c.docs, id)
	c.Writes++
	return nil
}

func (c *Collection[T]) List(ctx context.Context, filter *repository.Filter) ([]T, error) {
	return c.ListOrdered(ctx, filter, "", repository.Asc)
}

func (c *Collection[T]) ListOrdered(_ context.Context, filter *repository.Filter, field string, dir repository.Direction) ([]T, error) {
	var want any
	if filter != nil {
		v, err := normalizeValue(filter.Equals)
		if err != nil {
			return nil, err
		}
		want = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}

	ids := make([]string, 0, len(c.docs))
	for id, doc := range c.docs {
		if filter != nil && !reflect.DeepEqual(doc[filter.Field], want) {
			continue
		}
		ids = append(ids, id)
	}

	sort.SliceStable(ids, func(i, j int) bool {
		if field == "" {
			return ids[i] < ids[j]
		}
		less := compare(c.docs[ids[i]][field], c.docs[ids[j]][field])
		if dir == repository.Desc {
			return less > 0
		}
		return less < 0
	})

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		doc, err := decode[T](id, c.docs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *Collection[T]) Increment(_ context.Context, id, field string, delta int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	doc, ok := c.docs[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	current, _ := doc[field].(float64)
	next := int64(current) + delta
	doc[field] = float64(next)
	c.Writes++
	return next, nil
}

func encode(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	// The key lives outside the stored fields, as in Firestore.
	delete(fields, "id")
	return fields, nil
}

func decode[T any](id string, fields map[string]any) (T, error) {
	var doc T
	raw, err := json.Marshal(fields)
	if err != nil {
		return doc, fmt.Errorf("decode document %s: %w", id, err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode document %s: %w", id, err)
	}
	if v, ok := any(&doc).(repository.Identifiable); ok {
		v.SetID(id)
	}
	return doc, nil
}

func normalize(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		nv, err := normalizeValue(v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// compare orders numbers numerically, RFC 3339 strings chronologically and
// other strings lexically. Absent values sort first.
func compare(a, b any) int {
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case string:
		bv, _ := b.(string)
		at, aerr := time.Parse(time.RFC3339Nano, av)
		bt, berr := time.Parse(time.RFC3339Nano, bv)
		if aerr == nil && berr == nil {
			return at.Compare(bt)
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	return 0
}
