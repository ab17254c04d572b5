package pxtest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// WriteDocument writes a PX document to a fresh temporary file and
// returns its path. The file is cleaned up with the test.
func WriteDocument(t testing.TB, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "document.px")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

// Response configures one mocked endpoint on a Server.
type Response struct {
	// StatusCode defaults to 200 when zero.
	StatusCode int

	// Body is written verbatim.
	Body string

	// Delay is slept before answering, for timeout tests.
	Delay time.Duration

	// Headers are set on the response.
	Headers map[string]string
}

// Server serves PX documents over HTTP for URL-locator tests. Paths
// without a configured response answer 404.
type Server struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	requests  int
}

// NewServer starts a server with no configured endpoints. Callers own
// the shutdown:
//
//	srv := pxtest.NewServer()
//	defer srv.Close()
//	srv.SetDocument("/population.px", pxtest.SimpleDocument)
func NewServer() *Server {
	s := &Server{
		responses: make(map[string]Response),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.server.Close()
}

// SetDocument serves doc with status 200 at the given path.
func (s *Server) SetDocument(path, doc string) {
	s.SetResponse(path, Response{StatusCode: http.StatusOK, Body: doc})
}

// SetResponse configures the response for a path, replacing any
// previous one.
func (s *Server) SetResponse(path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[path] = resp
}

// RequestCount returns how many requests the server has answered.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	resp, ok := s.responses[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}

	code := resp.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	_, _ = w.Write([]byte(resp.Body))
}
