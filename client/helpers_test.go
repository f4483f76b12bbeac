package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/atomic"

	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

var testNow = time.Unix(1700000000, 0)

type backend struct {
	*httptest.Server
	hits *atomic.Int32
}

// newBackend serves routes and counts every request that reaches it.
func newBackend(t *testing.T, routes func(r chi.Router)) *backend {
	t.Helper()

	hits := atomic.NewInt32(0)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Inc()
			next.ServeHTTP(w, r)
		})
	})
	routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &backend{Server: srv, hits: hits}
}

func writeEnvelope(w http.ResponseWriter, status, code int, msg string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": code, "msg": msg, "data": data})
}

func ok(data interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, http.StatusOK, "success", data)
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	errors   []string
	warnings []string
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

// countingStore counts Clear calls on top of a memory store.
type countingStore struct {
	*session.MemoryStore
	clears *atomic.Int32
}

func newCountingStore(s session.Session) *countingStore {
	return &countingStore{MemoryStore: session.NewMemoryStore(s), clears: atomic.NewInt32(0)}
}

func (s *countingStore) Clear() error {
	s.clears.Inc()

	return s.MemoryStore.Clear()
}

type redirects struct {
	mu    sync.Mutex
	paths []string
}

func (r *redirects) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func validSession() session.Session {
	return session.New("tok-1", testNow.Add(time.Hour).Unix())
}
