// Package scanner locates files across open directory listings. It fetches
// each listing page, extracts anchor links, and matches filenames against a
// search term. One attempt per source, no retries: a failed source is logged
// and the scan moves on.
package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/vfaronov/httpheader"
	"golang.org/x/net/html"

	"github.com/odget-downloader/odget/internal/utils"
)

// DefaultTimeout bounds each listing fetch.
const DefaultTimeout = 10 * time.Second

// Link is a resolved absolute URL discovered inside a listing page.
type Link struct {
	URL  string
	Name string // final path segment
	MIME string // best-effort guess from the extension, may be empty
}

// Scanner fetches directory listing pages and extracts matching file links.
type Scanner struct {
	client    *http.Client
	userAgent string

	// Log receives user-facing progress lines. Nil means discard.
	Log func(line string)
	// OnSource is called before each source fetch, for progress display.
	// Nil means no reporting.
	OnSource func(index, total int, source string)
}

// New returns a Scanner with the given per-request timeout and User-Agent.
// Zero timeout means DefaultTimeout.
func New(timeout time.Duration, userAgent string) *Scanner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0"
	}
	return &Scanner{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (s *Scanner) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	utils.Debug("scanner: %s", line)
	if s.Log != nil {
		s.Log(line)
	}
}

// Scan fetches every source sequentially and returns links whose final path
// segment contains term, case-insensitively. Results keep per-source
// discovery order and are deduplicated by absolute URL across sources.
// Cancellation is checked between sources only; an in-flight fetch runs to
// completion or timeout.
func (s *Scanner) Scan(ctx context.Context, sources []string, term string) []Link {
	term = strings.ToLower(strings.TrimSpace(term))

	var results []Link
	seen := make(map[string]bool)

	for i, source := range sources {
		if ctx.Err() != nil {
			s.logf("Scan cancelled, %d of %d sources checked", i, len(sources))
			break
		}
		if s.OnSource != nil {
			s.OnSource(i, len(sources), source)
		}

		links, err := s.scanSource(ctx, source, term)
		if err != nil {
			s.logf("Error fetching %s: %v", source, err)
			continue
		}
		for _, l := range links {
			if seen[l.URL] {
				continue
			}
			seen[l.URL] = true
			results = append(results, l)
			s.logf("  Found: %s", l.URL)
		}
	}
	return results
}

func (s *Scanner) scanSource(ctx context.Context, source, term string) ([]Link, error) {
	base, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	s.logf("Fetching directory listing from: %s", source)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	// Listing generators serve HTML. Skip anything else rather than
	// tokenizing binary data.
	if mtype, _ := httpheader.ContentType(resp.Header); mtype != "" &&
		mtype != "text/html" && mtype != "application/xhtml+xml" {
		return nil, fmt.Errorf("not an HTML listing (Content-Type %s)", mtype)
	}

	var links []Link
	// The tokenizer substitutes invalid byte sequences instead of failing,
	// which matches the tolerant decode the listing scan needs.
	z := html.NewTokenizer(resp.Body)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF ends the document; a mid-parse error still keeps
			// everything extracted so far.
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if len(name) != 1 || name[0] != 'a' || !hasAttr {
			continue
		}
		href, ok := anchorHref(z)
		if !ok {
			continue
		}
		link, ok := resolveListingLink(base, href)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(link.Name), term) {
			links = append(links, link)
		}
	}
	return links, nil
}

// anchorHref pulls the href attribute off the current anchor tag.
func anchorHref(z *html.Tokenizer) (string, bool) {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "href" {
			return string(val), true
		}
		if !more {
			return "", false
		}
	}
}

// resolveListingLink resolves href against base and filters out the
// listing-generator UI affordances (fragment and query-only links like sort
// headers and "parent directory" anchors).
func resolveListingLink(base *url.URL, href string) (Link, bool) {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "?") {
		return Link{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return Link{}, false
	}
	abs := base.ResolveReference(ref)
	name := finalPathSegment(abs)
	return Link{
		URL:  abs.String(),
		Name: name,
		MIME: guessMIME(name),
	}, true
}

// finalPathSegment returns the last component of the URL path, or "" for
// directory links ending in a slash.
func finalPathSegment(u *url.URL) string {
	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	return path.Base(p)
}

// guessMIME maps a filename extension to a MIME type for display. Unknown
// extensions yield "".
func guessMIME(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ext == "" {
		return ""
	}
	t := filetype.GetType(ext)
	if t == filetype.Unknown {
		return ""
	}
	return t.MIME.Value
}
