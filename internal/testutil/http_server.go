package testutil

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewHTTPServerT starts an httptest server bound to IPv4 (IPv6 listeners are
// unavailable in some sandboxed CI environments) and skips the test if
// binding fails.
func NewHTTPServerT(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("tcp4 listener unavailable: %v", err)
		return nil
	}

	srv := &httptest.Server{
		Listener: ln,
		Config: &http.Server{
			Handler: handler,
		},
	}
	srv.Start()
	return srv
}

// ListingHandler serves a minimal auto-index style HTML page for the given
// hrefs, mimicking what web servers generate for open directories.
func ListingHandler(title string, hrefs ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><head><title>" + title + "</title></head><body><h1>" + title + "</h1><ul>"))
		for _, href := range hrefs {
			_, _ = w.Write([]byte(`<li><a href="` + href + `">` + href + `</a></li>`))
		}
		_, _ = w.Write([]byte("</ul></body></html>"))
	})
}
