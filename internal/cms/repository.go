// Package cms exposes the content collections edited from the dashboard.
// Unlike the registration services it never substitutes mock data: every
// store failure reaches the caller as an *Error.
package cms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nrednav/cuid2"

	"regadmin/dashboard/internal/docstore"
)

var ErrImmutableID = errors.New("id cannot be changed")

type Error struct {
	Entity string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Repository is the CRUD surface of one collection. Documents are decoded
// with a tolerant decoder, so malformed fields never fail a listing.
type Repository[T any] struct {
	entity  string
	coll    docstore.Collection
	decode  func(docstore.Document) T
	stamped bool
	now     func() time.Time
}

func NewRepository[T any](entity string, coll docstore.Collection, decode func(docstore.Document) T, stamped bool) *Repository[T] {
	return &Repository[T]{
		entity:  entity,
		coll:    coll,
		decode:  decode,
		stamped: stamped,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *Repository[T]) ListAll(ctx context.Context) ([]T, error) {
	docs, err := r.coll.All(ctx)
	if err != nil {
		return nil, r.fail("list", err)
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		out = append(out, r.decode(doc))
	}
	return out, nil
}

// Create stores fields under a freshly generated identifier. A
// client-supplied id is ignored.
func (r *Repository[T]) Create(ctx context.Context, fields docstore.Document) (T, error) {
	doc := make(docstore.Document, len(fields)+3)
	for key, value := range fields {
		doc[key] = value
	}
	doc["id"] = cuid2.Generate()
	if r.stamped {
		now := r.now()
		doc["createdAt"] = now
		doc["updatedAt"] = now
	}
	if err := r.coll.Insert(ctx, doc); err != nil {
		var zero T
		return zero, r.fail("create", err)
	}
	return r.decode(doc), nil
}

// Update applies a partial patch. The patch may repeat the document id but
// not change it.
func (r *Repository[T]) Update(ctx context.Context, id string, fields docstore.Document) error {
	if raw, ok := fields["id"]; ok {
		if patched, _ := raw.(string); patched != id {
			return r.fail("update", ErrImmutableID)
		}
	}
	patch := make(docstore.Document, len(fields)+1)
	for key, value := range fields {
		if key == "id" {
			continue
		}
		patch[key] = value
	}
	if r.stamped {
		patch["updatedAt"] = r.now()
	}
	if err := r.coll.Update(ctx, id, patch); err != nil {
		return r.fail("update", err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		return r.fail("delete", err)
	}
	return nil
}

func (r *Repository[T]) fail(op string, err error) error {
	return &Error{Entity: r.entity, Op: op, Err: err}
}
