// Package docstore is a minimal document-collection abstraction with
// MongoDB, PostgreSQL (JSONB) and in-memory drivers.
package docstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Document is a raw stored record. The identifier is always exposed under
// "id" regardless of how the driver stores it.
type Document map[string]interface{}

func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

type Collection interface {
	All(ctx context.Context) ([]Document, error)
	// Insert stores doc, which must carry an "id".
	Insert(ctx context.Context, doc Document) error
	// Update merges fields into the document with the given id.
	Update(ctx context.Context, id string, fields Document) error
	Delete(ctx context.Context, id string) error
}

type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var errMissingID = errors.New("document id is required")

func withoutID(fields Document) Document {
	out := make(Document, len(fields))
	for key, value := range fields {
		if key == "id" || key == "_id" {
			continue
		}
		out[key] = value
	}
	return out
}
