package scanner

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/odget-downloader/odget/internal/testutil"
)

func TestScanFindsMatchingLinks(t *testing.T) {
	srv := testutil.NewHTTPServerT(t, testutil.ListingHandler("Index of /files",
		"report-2024.pdf",
		"Report-2025.PDF",
		"notes.txt",
		"subdir/",
	))
	defer srv.Close()

	s := New(2*time.Second, "")
	links := s.Scan(context.Background(), []string{srv.URL + "/files/"}, "report")

	if len(links) != 2 {
		t.Fatalf("got %d links %v, want 2", len(links), links)
	}
	if links[0].Name != "report-2024.pdf" {
		t.Errorf("first match = %q, want report-2024.pdf", links[0].Name)
	}
	// Matching is case-insensitive on the final path segment.
	if links[1].Name != "Report-2025.PDF" {
		t.Errorf("second match = %q, want Report-2025.PDF", links[1].Name)
	}
	if links[0].URL != srv.URL+"/files/report-2024.pdf" {
		t.Errorf("relative href resolved to %q", links[0].URL)
	}
	if links[0].MIME != "application/pdf" {
		t.Errorf("MIME = %q, want application/pdf", links[0].MIME)
	}
}

func TestScanSkipsSortAndFragmentLinks(t *testing.T) {
	srv := testutil.NewHTTPServerT(t, testutil.ListingHandler("Index",
		"?C=N;O=D",
		"#top",
		"data.bin",
	))
	defer srv.Close()

	s := New(2*time.Second, "")
	links := s.Scan(context.Background(), []string{srv.URL + "/"}, "")

	if len(links) != 1 || links[0].Name != "data.bin" {
		t.Errorf("sort/fragment anchors should be skipped, got %v", links)
	}
}

func TestScanResolvesAbsoluteAndFullHrefs(t *testing.T) {
	srv := testutil.NewHTTPServerT(t, testutil.ListingHandler("Index",
		"/pub/tool.zip",
		"http://elsewhere.example.com/mirror/tool.zip",
	))
	defer srv.Close()

	s := New(2*time.Second, "")
	links := s.Scan(context.Background(), []string{srv.URL + "/listing/"}, "tool")

	if len(links) != 2 {
		t.Fatalf("got %v, want 2 links", links)
	}
	if links[0].URL != srv.URL+"/pub/tool.zip" {
		t.Errorf("root-relative href resolved to %q", links[0].URL)
	}
	if links[1].URL != "http://elsewhere.example.com/mirror/tool.zip" {
		t.Errorf("full href should pass through, got %q", links[1].URL)
	}
}

func TestScanContinuesPastFailedSource(t *testing.T) {
	good := testutil.NewHTTPServerT(t, testutil.ListingHandler("Index", "file.iso"))
	defer good.Close()
	bad := testutil.NewHTTPServerT(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer bad.Close()

	var logged []string
	s := New(2*time.Second, "")
	s.Log = func(line string) { logged = append(logged, line) }

	sources := []string{bad.URL + "/", good.URL + "/"}
	links := s.Scan(context.Background(), sources, "file")

	if len(links) != 1 || links[0].Name != "file.iso" {
		t.Fatalf("failed source should not stop the scan, got %v", links)
	}
	found := false
	for _, line := range logged {
		if len(line) > 5 && line[:5] == "Error" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error log line for the failed source, got %v", logged)
	}
}

func TestScanDeduplicatesAcrossSources(t *testing.T) {
	srv := testutil.NewHTTPServerT(t, testutil.ListingHandler("Index", "/shared/common.tar.gz"))
	defer srv.Close()

	s := New(2*time.Second, "")
	// Both listings resolve the href to the same absolute URL.
	links := s.Scan(context.Background(), []string{srv.URL + "/a/", srv.URL + "/b/"}, "common")

	if len(links) != 1 {
		t.Errorf("duplicate URLs should collapse, got %v", links)
	}
}

func TestScanSkipsNonHTMLSource(t *testing.T) {
	srv := testutil.NewHTTPServerT(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("\x00\x01binary"))
	}))
	defer srv.Close()

	s := New(2*time.Second, "")
	links := s.Scan(context.Background(), []string{srv.URL + "/"}, "")

	if len(links) != 0 {
		t.Errorf("binary source should be skipped, got %v", links)
	}
}

func TestScanCancelledBetweenSources(t *testing.T) {
	srv := testutil.NewHTTPServerT(t, testutil.ListingHandler("Index", "a.txt"))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(2*time.Second, "")
	links := s.Scan(ctx, []string{srv.URL + "/"}, "a")
	if len(links) != 0 {
		t.Errorf("cancelled scan should fetch nothing, got %v", links)
	}
}

func TestScanSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := testutil.NewHTTPServerT(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		testutil.ListingHandler("Index").ServeHTTP(w, r)
	}))
	defer srv.Close()

	s := New(2*time.Second, "TestAgent/1.0")
	s.Scan(context.Background(), []string{srv.URL + "/"}, "x")

	if gotUA != "TestAgent/1.0" {
		t.Errorf("User-Agent = %q, want TestAgent/1.0", gotUA)
	}
}

func TestFinalPathSegment(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"http://h/a/b/file.zip", "file.zip"},
		{"http://h/dir/", ""},
		{"http://h", ""},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.href)
		if err != nil {
			t.Fatal(err)
		}
		if got := finalPathSegment(u); got != tt.want {
			t.Errorf("finalPathSegment(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
