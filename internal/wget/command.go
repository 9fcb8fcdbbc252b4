package wget

import (
	"fmt"
	"os/exec"
)

// RestrictFileNamesFlag is always appended so wget never writes control
// characters into local filenames.
const RestrictFileNamesFlag = "--restrict-file-names=nocontrol"

// LookPath resolves the wget executable. An explicit override wins over the
// environment's search path. The returned error means the tool is missing and
// must be surfaced to the user before any launch attempt.
func LookPath(override string) (string, error) {
	if override != "" {
		return exec.LookPath(override)
	}
	return exec.LookPath("wget")
}

// BuildArgs compiles an option record and a target URL into the argument
// vector passed to wget (executable path excluded). Order follows the UI's
// display convention: recursion shape, directory shape, transfer behavior,
// limits, filters, identity, then destination and URL.
//
// Mirror mode implies its own recursion defaults, so -r/-np/-l are suppressed
// when it is set. Timestamp (-N) and continue (-c) are passed through without
// mutual-exclusion checks; wget itself rejects the combination.
func BuildArgs(opts Options, dest, url string) []string {
	var args []string

	if opts.Mirror {
		args = append(args, "-m")
	} else {
		if opts.Recursive {
			args = append(args, "-r")
		}
		if opts.NoParent {
			args = append(args, "-np")
		}
	}
	if opts.NoHostDir {
		args = append(args, "-nH")
	}

	if opts.CutDirs > 0 {
		args = append(args, fmt.Sprintf("--cut-dirs=%d", opts.CutDirs))
	}

	// Depth 0 means "leave wget's default"; mirror already implies -l inf.
	if opts.Recursive && opts.Depth > 0 && !opts.Mirror {
		args = append(args, "-l", fmt.Sprintf("%d", opts.Depth))
	}

	if opts.Timestamp {
		args = append(args, "-N")
	}
	if opts.Continue {
		args = append(args, "-c")
	}
	if opts.DoNotClobber {
		args = append(args, "-nc")
	}

	if opts.LimitRate != "" {
		args = append(args, "--limit-rate="+opts.LimitRate)
	}
	if opts.Tries > 0 {
		args = append(args, fmt.Sprintf("--tries=%d", opts.Tries))
	}
	if opts.Timeout > 0 {
		args = append(args, fmt.Sprintf("--timeout=%d", opts.Timeout))
	}

	// Comma-separated suffix lists and the regex pass through unmodified.
	if opts.Accept != "" {
		args = append(args, "--accept="+opts.Accept)
	}
	if opts.Reject != "" {
		args = append(args, "--reject="+opts.Reject)
	}
	if opts.RejectRegex != "" {
		args = append(args, "--reject-regex="+opts.RejectRegex)
	}

	if opts.UserAgent != "" {
		args = append(args, "--user-agent="+opts.UserAgent)
	}

	if opts.SpanHosts {
		args = append(args, "-H")
	}
	if opts.FollowFTP {
		args = append(args, "-F")
	}

	args = append(args, "-P", dest, RestrictFileNamesFlag, url)
	return args
}

// FetchArgs compiles the minimal argument vector used for single-file batch
// fetches of search results: destination, optional resume, URL.
func FetchArgs(dest string, resume bool, url string) []string {
	args := []string{"-P", dest}
	if resume {
		args = append(args, "-c")
	}
	return append(args, url)
}
