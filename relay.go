package duoledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// ErrRelayUnavailable signals a network or HTTP failure talking to the relay.
var ErrRelayUnavailable = errors.New("relay unavailable")

// DefaultRelayURL is a public JSON document store. Any server speaking the
// same create/replace/fetch protocol works, including the bundled relayd.
const DefaultRelayURL = "https://api.npoint.io"

// relayTimeout bounds every relay call so a hung request cannot starve the
// poller's in-flight guard.
const relayTimeout = 15 * time.Second

// Relay is a remote JSON document store keyed by an opaque sync key.
//
// Every payload crossing a Relay has the security log stripped, and a pulled
// document's security log is never merged back into local state.
type Relay interface {
	// Create stores a new document seeded from doc and returns its key.
	Create(ctx context.Context, doc *Ledger) (string, error)
	// Push replaces the remote document under key.
	Push(ctx context.Context, key string, doc *Ledger) error
	// Pull fetches the remote document under key. An absent or malformed
	// remote document yields (nil, nil): no usable remote data.
	Pull(ctx context.Context, key string) (*Ledger, error)
}

// httpRelay talks to an npoint-style document store: POST the base URL to
// create (the key is echoed back in the body), PUT /{key} to replace,
// GET /{key} to fetch.
type httpRelay struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRelay returns a Relay over HTTP with an explicit request timeout.
func NewHTTPRelay(baseURL string) Relay {
	return &httpRelay{
		baseURL: baseURL,
		client:  &http.Client{Timeout: relayTimeout},
	}
}

// Create POSTs the stripped document and extracts the new key from the
// response body.
func (r *httpRelay) Create(ctx context.Context, doc *Ledger) (string, error) {
	body, err := json.Marshal(doc.Stripped())
	if err != nil {
		return "", fmt.Errorf("could not encode document for relay: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not build relay create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: relay create returned status %d", ErrRelayUnavailable, resp.StatusCode)
	}

	// The relay echoes the stored body with an "id" property added; the rest
	// of the response shape is the relay's business.
	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return "", fmt.Errorf("%w: could not decode relay create response: %v", ErrRelayUnavailable, err)
	}
	jval, err := jsonpath.Get("$.id", jobj)
	if err != nil {
		return "", fmt.Errorf("%w: relay create response carries no id: %v", ErrRelayUnavailable, err)
	}
	key, ok := jval.(string)
	if !ok || key == "" {
		return "", fmt.Errorf("%w: relay create response carries an invalid id %v", ErrRelayUnavailable, jval)
	}
	return key, nil
}

// Push PUTs the stripped document under key. No response body is expected.
func (r *httpRelay) Push(ctx context.Context, key string, doc *Ledger) error {
	addr, err := url.JoinPath(r.baseURL, key)
	if err != nil {
		return fmt.Errorf("could not build relay push URL: %w", err)
	}
	body, err := json.Marshal(doc.Stripped())
	if err != nil {
		return fmt.Errorf("could not encode document for relay: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, addr, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not build relay push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: relay push returned status %d", ErrRelayUnavailable, resp.StatusCode)
	}
	return nil
}

// Pull GETs the document under key. A 404-class response or an unparseable
// body is not an error: there is simply no usable remote data. The pulled
// document's security log is dropped regardless of what the relay returned.
func (r *httpRelay) Pull(ctx context.Context, key string) (*Ledger, error) {
	addr, err := url.JoinPath(r.baseURL, key)
	if err != nil {
		return nil, fmt.Errorf("could not build relay pull URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build relay pull request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: relay pull returned status %d", ErrRelayUnavailable, resp.StatusCode)
	}

	remote, err := DecodeLedger(resp.Body)
	if err != nil {
		log.Printf("ignoring malformed remote document for key %q: %v", key, err)
		return nil, nil
	}
	// The remote's stripped security log is never authoritative.
	remote.SecurityLogs = []SecurityLogEntry{}
	return remote, nil
}
