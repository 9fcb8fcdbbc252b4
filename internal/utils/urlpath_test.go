package utils

import "testing"

func TestFileNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/a/b/file.zip", "file.zip"},
		{"https://example.com/a/b/", "b"},
		{"https://example.com/", "example.com"},
		{"https://example.com", "example.com"},
		{"https://example.com/file.iso?token=abc", "file.iso"},
	}
	for _, tt := range tests {
		if got := FileNameFromURL(tt.url); got != tt.want {
			t.Errorf("FileNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
