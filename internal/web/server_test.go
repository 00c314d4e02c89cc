package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":     "<html>dashboard</html>",
		"iipl_data.json": `{"inquiries":[],"metadata":{"total_records":0}}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestServer_ServesFiles(t *testing.T) {
	srv := NewServer(Options{Dir: newTestDir(t)})

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "dashboard"},
		{"/index.html", http.StatusMovedPermanently, ""},
		{"/iipl_data.json", http.StatusOK, `"total_records":0`},
		{"/missing.js", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.wantStatus)
		}
		if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
			t.Errorf("GET %s body = %q, want it to contain %q", tt.path, rec.Body.String(), tt.wantBody)
		}
	}
}

func TestServer_DisablesCaching(t *testing.T) {
	srv := NewServer(Options{Dir: newTestDir(t)})

	req := httptest.NewRequest(http.MethodGet, "/iipl_data.json", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
		t.Errorf("Cache-Control = %q, want no-cache", cc)
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := NewServer(Options{Dir: newTestDir(t), ReadTimeout: time.Second})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/iipl_data.json")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "inquiries") {
		t.Errorf("unexpected body %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Serve returned %v after shutdown, want nil", err)
	}
}

func TestOpenBrowser(t *testing.T) {
	opened := make(chan string, 1)
	prev := openURL
	openURL = func(url string) error {
		opened <- url
		return nil
	}
	defer func() { openURL = prev }()

	OpenBrowser(context.Background(), "http://localhost:8000", 10*time.Millisecond)

	select {
	case got := <-opened:
		if got != "http://localhost:8000" {
			t.Errorf("opened %q, want http://localhost:8000", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("browser was not opened")
	}
}

func TestOpenBrowser_Cancelled(t *testing.T) {
	opened := make(chan string, 1)
	prev := openURL
	openURL = func(url string) error {
		opened <- url
		return nil
	}
	defer func() { openURL = prev }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	OpenBrowser(ctx, "http://localhost:8000", 50*time.Millisecond)

	select {
	case got := <-opened:
		t.Errorf("browser opened %q after cancellation", got)
	case <-time.After(200 * time.Millisecond):
	}
}
