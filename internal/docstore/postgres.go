package docstore

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"

  "github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
  CREATE TABLE IF NOT EXISTS documents (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    body JSONB NOT NULL DEFAULT '{}'::jsonb,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (collection, id)
  )
`

type PostgresStore struct {
  pool *pgxpool.Pool
}

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
  pool, err := pgxpool.New(ctx, databaseURL)
  if err != nil {
    return nil, fmt.Errorf("connect postgres: %w", err)
  }
  return pool, nil
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
  return &PostgresStore{pool: pool}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
  _, err := s.pool.Exec(ctx, schema)
  return err
}

func (s *PostgresStore) Collection(name string) Collection {
  return &postgresCollection{pool: s.pool, name: name}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
  return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close(context.Context) error {
  s.pool.Close()
  return nil
}

type postgresCollection struct {
  pool *pgxpool.Pool
  name string
}

func (c *postgresCollection) All(ctx context.Context) ([]Document, error) {
  rows, err := c.pool.Query(ctx, `
    SELECT id, body
    FROM documents
    WHERE collection = $1
    ORDER BY created_at, id
  `, c.name)
  if err != nil {
    return nil, err
  }
  defer rows.Close()

  out := []Document{}
  for rows.Next() {
    var id string
    var body []byte
    if err := rows.Scan(&id, &body); err != nil {
      return nil, err
    }
    doc, err := decodeBody(body)
    if err != nil {
      return nil, fmt.Errorf("decode document %s: %w", id, err)
    }
    doc["id"] = id
    out = append(out, doc)
  }
  return out, rows.Err()
}

func (c *postgresCollection) Insert(ctx context.Context, doc Document) error {
  id := doc.ID()
  if id == "" {
    return errMissingID
  }
  body, err := json.Marshal(withoutID(doc))
  if err != nil {
    return err
  }
  _, err = c.pool.Exec(ctx, `
    INSERT INTO documents (collection, id, body)
    VALUES ($1, $2, $3::jsonb)
  `, c.name, id, body)
  return err
}

func (c *postgresCollection) Update(ctx context.Context, id string, fields Document) error {
  body, err := json.Marshal(withoutID(fields))
  if err != nil {
    return err
  }
  tag, err := c.pool.Exec(ctx, `
    UPDATE documents
    SET body = body || $3::jsonb
    WHERE collection = $1 AND id = $2
  `, c.name, id, body)
  if err != nil {
    return err
  }
  if tag.RowsAffected() == 0 {
    return ErrNotFound
  }
  return nil
}

func (c *postgresCollection) Delete(ctx context.Context, id string) error {
  tag, err := c.pool.Exec(ctx, `
    DELETE FROM documents
    WHERE collection = $1 AND id = $2
  `, c.name, id)
  if err != nil {
    return err
  }
  if tag.RowsAffected() == 0 {
    return ErrNotFound
  }
  return nil
}

// decodeBody keeps numbers as json.Number so millisecond timestamps survive
// without float rounding.
func decodeBody(body []byte) (Document, error) {
  doc := Document{}
  dec := json.NewDecoder(bytes.NewReader(body))
  dec.UseNumber()
  if err := dec.Decode(&doc); err != nil {
    return nil, err
  }
  return doc, nil
}
