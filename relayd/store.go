package main

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no document exists under the requested id.
var ErrNotFound = errors.New("document not found")

// DocumentStore persists anonymous JSON documents by id. The relay treats
// the body as opaque: it never inspects ledger fields.
type DocumentStore interface {
	// Create stores a new document under a fresh id and returns the id.
	Create(ctx context.Context, doc json.RawMessage) (string, error)
	// Get returns the document stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) (json.RawMessage, error)
	// Put replaces the document stored under id, or returns ErrNotFound.
	Put(ctx context.Context, id string, doc json.RawMessage) error
	Close() error
}

// memoryStore keeps documents in process memory. Good for tests and for
// running a throwaway relay; restarts lose everything.
type memoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string]json.RawMessage)}
}

func (s *memoryStore) Create(_ context.Context, doc json.RawMessage) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = append(json.RawMessage(nil), doc...)
	return id, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append(json.RawMessage(nil), doc...), nil
}

func (s *memoryStore) Put(_ context.Context, id string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	s.docs[id] = append(json.RawMessage(nil), doc...)
	return nil
}

func (s *memoryStore) Close() error { return nil }
