package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Write([]byte(`{"version":"1.0.0"}`))
	}))
	defer srv.Close()

	body, err := New().Bytes(context.Background(), srv.URL+"/info.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"version":"1.0.0"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestBytes_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := New().Bytes(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestToFile(t *testing.T) {
	payload := []byte("archive bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "registry.json.zip")
	if err := New().ToFile(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("downloaded content mismatch: %q", got)
	}
}

func TestToFile_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.zip")
	if err := New().ToFile(context.Background(), srv.URL, dest); err == nil {
		t.Fatal("expected error for 500 response")
	}
	// No file should be left behind for a failed fetch.
	if _, err := os.Stat(dest); err == nil {
		t.Error("expected no file for failed download")
	}
}
