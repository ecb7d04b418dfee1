package docstore

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]Document)}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Ping(context.Context) error  { return nil }
func (s *MemoryStore) Close(context.Context) error { return nil }

type memoryCollection struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]Document
}

func (c *memoryCollection) All(context.Context) ([]Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, copyDoc(c.docs[id]))
	}
	return out, nil
}

func (c *memoryCollection) Insert(_ context.Context, doc Document) error {
	id := doc.ID()
	if id == "" {
		return errMissingID
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = copyDoc(doc)
	return nil
}

func (c *memoryCollection) Update(_ context.Context, id string, fields Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range withoutID(fields) {
		doc[key] = value
	}
	return nil
}

func (c *memoryCollection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyDoc(doc Document) Document {
	out := make(Document, len(doc))
	for key, value := range doc {
		out[key] = value
	}
	return out
}
