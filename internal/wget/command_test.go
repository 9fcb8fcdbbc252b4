package wget

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildArgsDefaults(t *testing.T) {
	args := BuildArgs(DefaultOptions(), "/tmp/dl", "https://example.com/files/")

	want := []string{
		"-r", "-np", "-nH",
		"-l", "5",
		"-c",
		"--tries=20",
		"--timeout=30",
		"-P", "/tmp/dl",
		RestrictFileNamesFlag,
		"https://example.com/files/",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("BuildArgs() = %v, want %v", args, want)
	}
}

func TestBuildArgsMirrorSuppressesRecursionFlags(t *testing.T) {
	opts := DefaultOptions()
	opts.Mirror = true

	args := BuildArgs(opts, "/tmp/dl", "https://example.com/files/")

	for _, forbidden := range []string{"-r", "-np", "-l"} {
		for _, a := range args {
			if a == forbidden {
				t.Errorf("mirror mode emitted %q: %v", forbidden, args)
			}
		}
	}
	if args[0] != "-m" {
		t.Errorf("mirror mode should lead with -m, got %v", args)
	}
}

func TestBuildArgsDepthOmittedWhenZero(t *testing.T) {
	opts := DefaultOptions()
	opts.Depth = 0

	args := BuildArgs(opts, "/tmp/dl", "https://example.com/")
	for _, a := range args {
		if a == "-l" {
			t.Errorf("depth 0 should omit -l: %v", args)
		}
	}
}

func TestBuildArgsDepthOmittedWhenNotRecursive(t *testing.T) {
	opts := DefaultOptions()
	opts.Recursive = false
	opts.Depth = 3

	args := BuildArgs(opts, "/tmp/dl", "https://example.com/")
	for _, a := range args {
		if a == "-l" || a == "-r" {
			t.Errorf("non-recursive run should omit %q: %v", a, args)
		}
	}
}

func TestBuildArgsValueFlags(t *testing.T) {
	opts := Options{
		CutDirs:     2,
		LimitRate:   "500k",
		Tries:       3,
		Timeout:     15,
		Accept:      "zip,iso",
		Reject:      "html,tmp",
		RejectRegex: `.*\?C=.*`,
		UserAgent:   "Mozilla/5.0",
		SpanHosts:   true,
		FollowFTP:   true,
	}

	args := BuildArgs(opts, "/data", "http://host/dir/")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"--cut-dirs=2",
		"--limit-rate=500k",
		"--tries=3",
		"--timeout=15",
		"--accept=zip,iso",
		"--reject=html,tmp",
		`--reject-regex=.*\?C=.*`,
		"--user-agent=Mozilla/5.0",
		"-H",
		"-F",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, args)
		}
	}
}

func TestBuildArgsEmptyValuesOmitted(t *testing.T) {
	args := BuildArgs(Options{}, "/data", "http://host/")

	want := []string{"-P", "/data", RestrictFileNamesFlag, "http://host/"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("zero options should compile to the fixed tail only, got %v", args)
	}
}

func TestBuildArgsTailOrder(t *testing.T) {
	opts := DefaultOptions()
	args := BuildArgs(opts, "/dest dir", "https://example.com/x")

	n := len(args)
	if n < 4 {
		t.Fatalf("too few args: %v", args)
	}
	tail := args[n-4:]
	want := []string{"-P", "/dest dir", RestrictFileNamesFlag, "https://example.com/x"}
	if !reflect.DeepEqual(tail, want) {
		t.Errorf("tail = %v, want %v", tail, want)
	}
}

func TestFetchArgs(t *testing.T) {
	tests := []struct {
		name   string
		resume bool
		want   []string
	}{
		{"plain", false, []string{"-P", "/d", "http://h/f.zip"}},
		{"resume", true, []string{"-P", "/d", "-c", "http://h/f.zip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FetchArgs("/d", tt.resume, "http://h/f.zip")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FetchArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}
