// Package testutil provides testing utilities for the travel client.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// MockBackend is a configurable mock travel agency API for testing.
//
// By default every resource lists as an empty bare array and every
// mutation acknowledges {"success": true}. Failure modes reject the
// parameter-encoded primary transport, the JSON-body fallback, or list
// reads independently, so tests can drive each branch of the
// dual-strategy client.
type MockBackend struct {
	server *httptest.Server

	mu           sync.RWMutex
	lists        map[string]string // resource → raw list body
	handlers     map[string]http.HandlerFunc
	failPrimary  bool
	failFallback bool
	failLists    bool
	gate         chan struct{} // non-nil blocks mutations until closed

	// Tracking
	listRequests  int
	formMutations int
	jsonMutations int
	lastForm      url.Values
}

// NewMockBackend starts a mock backend server.
func NewMockBackend() *MockBackend {
	m := &MockBackend{
		lists:    make(map[string]string),
		handlers: make(map[string]http.HandlerFunc),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.dispatch))
	return m
}

// URL returns the mock server URL, usable as the client base URL.
func (m *MockBackend) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockBackend) Close() {
	m.server.Close()
}

// SetList configures the raw body served for GET /<resource>.
func (m *MockBackend) SetList(resource, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[resource] = body
}

// SetHandler installs a custom handler for an exact path, overriding the
// default behavior.
func (m *MockBackend) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// FailPrimary makes the parameter-encoded mutation transport return 500.
func (m *MockBackend) FailPrimary(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPrimary = fail
}

// FailFallback makes the JSON-body mutation transport return 500.
func (m *MockBackend) FailFallback(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failFallback = fail
}

// FailLists makes list reads return 500.
func (m *MockBackend) FailLists(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLists = fail
}

// HoldMutations blocks every mutation request until the returned release
// function is called. Used to keep a mutation in flight.
func (m *MockBackend) HoldMutations() (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.gate = gate
	m.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(gate)
			m.mu.Lock()
			m.gate = nil
			m.mu.Unlock()
		})
	}
}

// ListRequests returns the number of list reads served.
func (m *MockBackend) ListRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listRequests
}

// FormMutations returns the number of parameter-encoded mutation attempts.
func (m *MockBackend) FormMutations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.formMutations
}

// JSONMutations returns the number of JSON-body mutation attempts.
func (m *MockBackend) JSONMutations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jsonMutations
}

// MutationAttempts returns all mutation attempts across both transports.
func (m *MockBackend) MutationAttempts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.formMutations + m.jsonMutations
}

// LastForm returns the form values of the most recent parameter-encoded
// mutation.
func (m *MockBackend) LastForm() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastForm
}

func (m *MockBackend) dispatch(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	handler, custom := m.handlers[r.URL.Path]
	m.mu.RUnlock()
	if custom {
		handler(w, r)
		return
	}

	if r.Method == http.MethodGet {
		m.serveList(w, r)
		return
	}
	m.serveMutation(w, r)
}

func (m *MockBackend) serveList(w http.ResponseWriter, r *http.Request) {
	resource := firstSegment(r.URL.Path)

	m.mu.Lock()
	m.listRequests++
	failing := m.failLists
	body, ok := m.lists[resource]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal server error"}`))
		return
	}
	if !ok {
		body = "[]"
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (m *MockBackend) serveMutation(w http.ResponseWriter, r *http.Request) {
	isForm := strings.Contains(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")

	// Count before blocking so tests can wait for the request to arrive.
	m.mu.Lock()
	if isForm {
		m.formMutations++
		if err := r.ParseForm(); err == nil {
			m.lastForm = r.PostForm
		}
	} else {
		m.jsonMutations++
	}
	failing := (isForm && m.failPrimary) || (!isForm && m.failFallback)
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal server error"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true}`))
}

func firstSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
