package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreCollection implements Collection on a Firestore collection.
type FirestoreCollection[T any] struct {
	client *firestore.Client
	name   string
}

// NewFirestoreCollection returns the collection called name.
func NewFirestoreCollection[T any](client *firestore.Client, name string) *FirestoreCollection[T] {
	return &FirestoreCollection[T]{client: client, name: name}
}

var _ Collection[struct{}] = (*FirestoreCollection[struct{}])(nil)

func (c *FirestoreCollection[T]) col() *firestore.CollectionRef {
	return c.client.Collection(c.name)
}

// translate maps driver status codes onto the package sentinels.
func (c *FirestoreCollection[T]) translate(err error, op, id string) error {
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	}
	if id == "" {
		return errors.Wrapf(err, "%s %s", op, c.name)
	}
	return errors.Wrapf(err, "%s %s/%s", op, c.name, id)
}

func (c *FirestoreCollection[T]) decode(snap *firestore.DocumentSnapshot) (T, error) {
	var doc T
	if err := snap.DataTo(&doc); err != nil {
		return doc, errors.Wrapf(err, "decode %s/%s", c.name, snap.Ref.ID)
	}
	setID(&doc, snap.Ref.ID)
	return doc, nil
}

func (c *FirestoreCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	snap, err := c.col().Doc(id).Get(ctx)
	if err != nil {
		return zero, c.translate(err, "get", id)
	}
	return c.decode(snap)
}

func (c *FirestoreCollection[T]) Set(ctx context.Context, id string, doc T) (string, error) {
	ref := c.col().NewDoc()
	if id != "" {
		ref = c.col().Doc(id)
	}
	if _, err := ref.Set(ctx, doc); err != nil {
		return "", c.translate(err, "set", ref.ID)
	}
	return ref.ID, nil
}

func (c *FirestoreCollection[T]) Create(ctx context.Context, id string, doc T) error {
	if _, err := c.col().Doc(id).Create(ctx, doc); err != nil {
		return c.translate(err, "create", id)
	}
	return nil
}

func (c *FirestoreCollection[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	if _, err := c.col().Doc(id).Update(ctx, toUpdates(fields)); err != nil {
		return c.translate(err, "update", id)
	}
	return nil
}

// Delete uses an existence precondition so a missing document is reported.
func (c *FirestoreCollection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return c.translate(err, "delete", id)
	}
	return nil
}

func (c *FirestoreCollection[T]) List(ctx context.Context, filter *Filter) ([]T, error) {
	return c.run(ctx, c.query(filter))
}

func (c *FirestoreCollection[T]) ListOrdered(ctx context.Context, filter *Filter, field string, dir Direction) ([]T, error) {
	fsDir := firestore.Asc
	if dir == Desc {
		fsDir = firestore.Desc
	}
	return c.run(ctx, c.query(filter).OrderBy(field, fsDir))
}

// Increment reads and bumps the field inside one transaction. Firestore
// retries the transaction on contention, so concurrent callers never lose an
// update and each one gets back the value its own increment produced.
func (c *FirestoreCollection[T]) Increment(ctx context.Context, id, field string, delta int64) (int64, error) {
	ref := c.col().Doc(id)

	var next int64
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		current := int64(0)
		if value, err := snap.DataAt(field); err == nil {
			current = toInt64(value)
		}

		next = current + delta
		return tx.Update(ref, []firestore.Update{{Path: field, Value: next}})
	})
	if err != nil {
		return 0, c.translate(err, "increment", id)
	}
	return next, nil
}

func (c *FirestoreCollection[T]) query(filter *Filter) firestore.Query {
	q := c.col().Query
	if filter != nil {
		q = q.Where(filter.Field, "==", filter.Equals)
	}
	return q
}

func (c *FirestoreCollection[T]) run(ctx context.Context, q firestore.Query) ([]T, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, c.translate(err, "list", "")
	}

	docs := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		doc, err := c.decode(snap)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// toUpdates converts a field map into Firestore updates in a stable order.
func toUpdates(fields map[string]any) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}
	return updates
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
