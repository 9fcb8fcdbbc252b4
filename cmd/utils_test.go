package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# mirror list
https://a.example.com/pub/

https://b.example.com/files/
  https://c.example.com/iso/
# trailing comment
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := readURLsFromFile(path)
	if err != nil {
		t.Fatalf("readURLsFromFile() error: %v", err)
	}
	want := []string{
		"https://a.example.com/pub/",
		"https://b.example.com/files/",
		"https://c.example.com/iso/",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("got %v, want %v", urls, want)
	}
}

func TestReadURLsFromFileMissing(t *testing.T) {
	if _, err := readURLsFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDedupeURLs(t *testing.T) {
	in := []string{"http://a/", "http://b/", "http://a/", "", "http://c/", "http://b/"}
	want := []string{"http://a/", "http://b/", "http://c/"}
	if got := dedupeURLs(in); !reflect.DeepEqual(got, want) {
		t.Errorf("dedupeURLs() = %v, want %v", got, want)
	}
}

func TestOptionsFromFlagsRoundTrip(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	addOptionFlags(c)

	if err := c.Flags().Parse([]string{
		"--mirror",
		"--depth", "2",
		"--cut-dirs", "1",
		"--limit-rate", "200k",
		"--accept", "zip",
		"--user-agent", "UA/1",
	}); err != nil {
		t.Fatal(err)
	}

	opts := optionsFromFlags(c)
	if !opts.Mirror || opts.Depth != 2 || opts.CutDirs != 1 {
		t.Errorf("flag parse mismatch: %+v", opts)
	}
	if opts.LimitRate != "200k" || opts.Accept != "zip" || opts.UserAgent != "UA/1" {
		t.Errorf("string flags mismatch: %+v", opts)
	}
	// Unset flags keep option defaults.
	if !opts.Recursive || !opts.NoParent || opts.Tries != 20 {
		t.Errorf("defaults not preserved: %+v", opts)
	}
}
