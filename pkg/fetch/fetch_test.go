package fetch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabworks/pxtab/pkg/telemetry/logging"
)

const testDoc = `TITLE="Population";
STUB="area";
VALUES("area")="North","South";
DATA=11 21;
`

func TestFetcher_Fetch_URL(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(testDoc))
	}))
	defer server.Close()

	f := New(DefaultConfig())
	text, err := f.Fetch(context.Background(), server.URL, "")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if text != testDoc {
		t.Errorf("Fetch() = %q, want %q", text, testDoc)
	}
	if gotAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotAgent, DefaultUserAgent)
	}
}

func TestFetcher_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := New(DefaultConfig())
	_, err := f.Fetch(context.Background(), server.URL+"/missing.px", "")
	if err == nil {
		t.Fatal("Fetch() succeeded, want status error")
	}

	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error is %T, want *StatusError", err)
	}
	if serr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", serr.StatusCode, http.StatusNotFound)
	}
}

func TestFetcher_Fetch_Charset(t *testing.T) {
	// "Väestö" in ISO-8859-1
	raw := []byte{'V', 0xe4, 'e', 's', 't', 0xf6}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(raw)
	}))
	defer server.Close()

	f := New(DefaultConfig())
	text, err := f.Fetch(context.Background(), server.URL, "ISO-8859-1")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if text != "Väestö" {
		t.Errorf("Fetch() = %q, want %q", text, "Väestö")
	}
}

func TestFetcher_Fetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("9 ", 100)))
	}))
	defer server.Close()

	config := DefaultConfig()
	config.MaxBodySize = 16
	f := New(config)

	_, err := f.Fetch(context.Background(), server.URL, "")
	if err == nil {
		t.Fatal("Fetch() succeeded, want byte limit error")
	}
	if !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("error = %q, want byte limit error", err)
	}
}

func TestFetcher_Fetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.px")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	f := New(DefaultConfig())
	text, err := f.Fetch(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if text != testDoc {
		t.Errorf("Fetch() = %q, want %q", text, testDoc)
	}
}

func TestFetcher_Fetch_FileMissing(t *testing.T) {
	f := New(DefaultConfig())
	_, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.px"), "")
	if err == nil {
		t.Fatal("Fetch() succeeded, want file error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestFetcher_Fetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(DefaultConfig())
	if _, err := f.Fetch(ctx, server.URL, ""); err == nil {
		t.Fatal("Fetch() succeeded, want context error")
	}
}

func TestFetcher_Fetch_RequestIDFromContext(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	path := filepath.Join(t.TempDir(), "table.px")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	ctx := logging.WithRequestID(context.Background(), "req-42")

	f := New(DefaultConfig())
	if _, err := f.Fetch(ctx, path, ""); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}

	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Errorf("log output missing caller request ID:\n%s", buf.String())
	}
}
