package tui

import (
	"strings"
	"testing"

	"github.com/odget-downloader/odget/internal/scanner"
	"github.com/odget-downloader/odget/internal/wget"
)

func TestOptionRowsCoverEveryField(t *testing.T) {
	rows := optionRows()
	if len(rows) != 18 {
		t.Fatalf("got %d option rows, want 18", len(rows))
	}
	seen := make(map[string]bool)
	for _, row := range rows {
		if row.Flag == "" || row.Label == "" {
			t.Errorf("row %+v missing label or flag", row)
		}
		if seen[row.Flag] {
			t.Errorf("duplicate flag %q", row.Flag)
		}
		seen[row.Flag] = true
	}
}

func TestOptionRowToggleAndEdit(t *testing.T) {
	opts := wget.DefaultOptions()
	rows := optionRows()

	var mirror, depth, rate *optionRow
	for i := range rows {
		switch rows[i].Flag {
		case "-m":
			mirror = &rows[i]
		case "-l":
			depth = &rows[i]
		case "--limit-rate":
			rate = &rows[i]
		}
	}

	if mirror.Get(&opts) != "off" {
		t.Errorf("mirror default = %q, want off", mirror.Get(&opts))
	}
	mirror.Set(&opts, "")
	if !opts.Mirror {
		t.Error("toggling the mirror row should flip the field")
	}

	depth.Set(&opts, "7")
	if opts.Depth != 7 {
		t.Errorf("depth = %d, want 7", opts.Depth)
	}
	depth.Set(&opts, "not a number")
	if opts.Depth != 7 {
		t.Errorf("invalid input should leave depth at 7, got %d", opts.Depth)
	}

	rate.Set(&opts, "100k")
	if opts.LimitRate != "100k" {
		t.Errorf("rate = %q, want 100k", opts.LimitRate)
	}
}

func TestPreviewCommandReflectsState(t *testing.T) {
	m := RootModel{
		opts:    wget.DefaultOptions(),
		dest:    "/data/My Files",
		sources: []string{"https://example.com/pub/"},
	}

	preview := m.previewCommand()
	if !strings.HasPrefix(preview, "wget -r -np") {
		t.Errorf("preview = %q", preview)
	}
	if !strings.Contains(preview, "'/data/My Files'") {
		t.Errorf("destination with spaces should be quoted: %q", preview)
	}
	if !strings.HasSuffix(preview, "https://example.com/pub/") {
		t.Errorf("preview should end with the URL: %q", preview)
	}
}

func TestSelectedURLsFollowsListingOrder(t *testing.T) {
	m := RootModel{
		results: []scanner.Link{
			{URL: "http://h/a.zip", Name: "a.zip"},
			{URL: "http://h/b.zip", Name: "b.zip"},
			{URL: "http://h/c.zip", Name: "c.zip"},
		},
		selected: map[int]bool{0: true, 2: true},
	}

	urls := m.selectedURLs()
	if len(urls) != 2 || urls[0] != "http://h/a.zip" || urls[1] != "http://h/c.zip" {
		t.Errorf("selectedURLs() = %v", urls)
	}
}

func TestAddSourceRejectsDuplicates(t *testing.T) {
	m := RootModel{}
	m.addSource("http://a/")
	m.addSource("http://b/")
	m.addSource("http://a/")
	m.addSource("")

	if len(m.sources) != 2 {
		t.Errorf("sources = %v, want 2 unique entries", m.sources)
	}
}
