package duoledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRelayCreateExtractsKey(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		// The bin echoes the stored document plus metadata around the id.
		w.Write([]byte(`{"id":"key-42","contents":{},"apiKey":"irrelevant"}`))
	}))
	defer srv.Close()

	l := NewLedger()
	l.AppendSecurityLog(NewSecurityLog("x@example.com", LogWrongPassword))

	key, err := NewHTTPRelay(srv.URL).Create(context.Background(), l)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if key != "key-42" {
		t.Errorf("key = %q, want key-42", key)
	}

	var sent Ledger
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("sent body is not a ledger: %v", err)
	}
	if len(sent.SecurityLogs) != 0 {
		t.Error("security log must never cross the relay")
	}
}

func TestRelayCreateWithoutIDFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"contents":{}}`))
	}))
	defer srv.Close()

	_, err := NewHTTPRelay(srv.URL).Create(context.Background(), NewLedger())
	if err == nil {
		t.Fatal("Create should fail when the response carries no id")
	}
}

func TestRelayPushStripsSecurityLog(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	l := NewLedger()
	l.AppendCharge(NewCharge(Today(), "Design", "", decimal.NewFromInt(500), "designer"))
	l.AppendSecurityLog(NewSecurityLog("x@example.com", LogUnauthorizedEmail))

	if err := NewHTTPRelay(srv.URL).Push(context.Background(), "key-42", l); err != nil {
		t.Fatalf("Push returned error: %v", err)
	}
	if gotPath != "/key-42" {
		t.Errorf("push path = %q, want /key-42", gotPath)
	}
	var sent Ledger
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("sent body is not a ledger: %v", err)
	}
	if len(sent.SecurityLogs) != 0 {
		t.Error("security log must never cross the relay")
	}
	if len(sent.Charges) != 1 {
		t.Errorf("pushed %d charges, want 1", len(sent.Charges))
	}
}

func TestRelayPullMissingDocument(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		got, err := NewHTTPRelay(srv.URL).Pull(context.Background(), "key-42")
		srv.Close()
		if err != nil {
			t.Errorf("status %d: Pull returned error: %v", status, err)
		}
		if got != nil {
			t.Errorf("status %d: Pull = %+v, want nil document", status, got)
		}
	}
}

func TestRelayPullServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPRelay(srv.URL).Pull(context.Background(), "key-42")
	if err == nil {
		t.Fatal("Pull should fail on a server error")
	}
	if !errors.Is(err, ErrRelayUnavailable) {
		t.Errorf("error %v should wrap ErrRelayUnavailable", err)
	}
}

func TestRelayPullMalformedBodyYieldsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{broken"))
	}))
	defer srv.Close()

	got, err := NewHTTPRelay(srv.URL).Pull(context.Background(), "key-42")
	if err != nil {
		t.Fatalf("Pull returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Pull = %+v, want nil document for malformed body", got)
	}
}

func TestRelayPullDropsRemoteSecurityLog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"charges":[],"payments":[],"securityLogs":[{"id":"1","attemptedEmail":"x@example.com","timestamp":1,"date":"2025-01-01 00:00:00","status":"WRONG_PASSWORD"}],"updatedAt":5}`))
	}))
	defer srv.Close()

	got, err := NewHTTPRelay(srv.URL).Pull(context.Background(), "key-42")
	if err != nil {
		t.Fatalf("Pull returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Pull = nil, want a document")
	}
	if len(got.SecurityLogs) != 0 {
		t.Error("a pulled document's security log is never authoritative")
	}
}
