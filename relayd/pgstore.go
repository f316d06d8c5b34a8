package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
    id         text PRIMARY KEY,
    body       jsonb NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT now()
)`

// pgStore persists documents in PostgreSQL, for relays that must survive
// restarts.
type pgStore struct {
	db *sqlx.DB
}

func newPGStore(dsn string) (*pgStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	if _, err := db.Exec(documentsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create documents table: %w", err)
	}
	return &pgStore{db: db}, nil
}

func (s *pgStore) Create(ctx context.Context, doc json.RawMessage) (string, error) {
	id := uuid.NewString()
	const query = `INSERT INTO documents (id, body) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, query, id, []byte(doc)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *pgStore) Get(ctx context.Context, id string) (json.RawMessage, error) {
	const query = `SELECT body FROM documents WHERE id = $1`
	var body []byte
	err := s.db.GetContext(ctx, &body, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (s *pgStore) Put(ctx context.Context, id string, doc json.RawMessage) error {
	const query = `UPDATE documents SET body = $2, updated_at = now() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, []byte(doc))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) Close() error { return s.db.Close() }
