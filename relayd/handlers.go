package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// maxDocumentSize bounds uploads; a two-party ledger is a few kilobytes.
const maxDocumentSize = 1 << 20

// newRouter wires the document endpoints:
//
//	POST /       create a document, respond {"id": <key>}
//	GET  /{id}   fetch a document
//	PUT  /{id}   replace a document
//
// The surface mirrors the public JSON bin the clients default to, so a
// self-hosted relay is a drop-in -relay-url away.
func newRouter(store DocumentStore, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Post("/", handleCreate(store))
	r.Get("/{id}", handleGet(store))
	r.Put("/{id}", handlePut(store))

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	return c.Handler(r)
}

func handleCreate(store DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := readDocument(w, r)
		if !ok {
			return
		}
		id, err := store.Create(r.Context(), doc)
		if err != nil {
			http.Error(w, "could not store document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": id})
	}
}

func handleGet(store DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "could not read document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(doc)
	}
}

func handlePut(store DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := readDocument(w, r)
		if !ok {
			return
		}
		err := store.Put(r.Context(), chi.URLParam(r, "id"), doc)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "could not store document", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// readDocument reads and validates the request body as a JSON object. On
// failure it writes the error response and returns ok=false.
func readDocument(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize))
	if err != nil {
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		log.Printf("rejecting document: %v", err)
		http.Error(w, "body must be a JSON object", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}
