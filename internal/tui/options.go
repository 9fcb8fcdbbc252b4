package tui

import (
	"fmt"
	"strconv"

	"github.com/odget-downloader/odget/internal/wget"
)

// optionKind tells the options pane how a row is edited.
type optionKind int

const (
	optBool optionKind = iota
	optInt
	optString
)

// optionRow describes one editable wget option for the options pane.
type optionRow struct {
	Label string
	Flag  string // the wget flag it compiles to, shown as a hint
	Kind  optionKind
	Get   func(*wget.Options) string
	Set   func(*wget.Options, string)
}

func boolRow(label, flag string, get func(*wget.Options) *bool) optionRow {
	return optionRow{
		Label: label,
		Flag:  flag,
		Kind:  optBool,
		Get: func(o *wget.Options) string {
			if *get(o) {
				return "on"
			}
			return "off"
		},
		Set: func(o *wget.Options, _ string) {
			v := get(o)
			*v = !*v
		},
	}
}

func intRow(label, flag string, get func(*wget.Options) *int) optionRow {
	return optionRow{
		Label: label,
		Flag:  flag,
		Kind:  optInt,
		Get:   func(o *wget.Options) string { return strconv.Itoa(*get(o)) },
		Set: func(o *wget.Options, s string) {
			if n, err := strconv.Atoi(s); err == nil && n >= 0 {
				*get(o) = n
			}
		},
	}
}

func stringRow(label, flag string, get func(*wget.Options) *string) optionRow {
	return optionRow{
		Label: label,
		Flag:  flag,
		Kind:  optString,
		Get: func(o *wget.Options) string {
			if v := *get(o); v != "" {
				return v
			}
			return "(empty)"
		},
		Set: func(o *wget.Options, s string) { *get(o) = s },
	}
}

// optionRows returns the rows of the options pane in display order,
// mirroring the flag groups of the compiled command.
func optionRows() []optionRow {
	return []optionRow{
		boolRow("Recursive", "-r", func(o *wget.Options) *bool { return &o.Recursive }),
		boolRow("No parent", "-np", func(o *wget.Options) *bool { return &o.NoParent }),
		boolRow("Mirror", "-m", func(o *wget.Options) *bool { return &o.Mirror }),
		intRow("Recursion depth", "-l", func(o *wget.Options) *int { return &o.Depth }),
		intRow("Cut dirs", "--cut-dirs", func(o *wget.Options) *int { return &o.CutDirs }),
		boolRow("No host directories", "-nH", func(o *wget.Options) *bool { return &o.NoHostDir }),
		boolRow("Timestamping", "-N", func(o *wget.Options) *bool { return &o.Timestamp }),
		boolRow("Continue/Resume", "-c", func(o *wget.Options) *bool { return &o.Continue }),
		boolRow("Do not clobber", "-nc", func(o *wget.Options) *bool { return &o.DoNotClobber }),
		stringRow("Rate limit", "--limit-rate", func(o *wget.Options) *string { return &o.LimitRate }),
		intRow("Max retries", "--tries", func(o *wget.Options) *int { return &o.Tries }),
		intRow("Timeout (s)", "--timeout", func(o *wget.Options) *int { return &o.Timeout }),
		stringRow("Accept types", "--accept", func(o *wget.Options) *string { return &o.Accept }),
		stringRow("Reject types", "--reject", func(o *wget.Options) *string { return &o.Reject }),
		stringRow("Reject regex", "--reject-regex", func(o *wget.Options) *string { return &o.RejectRegex }),
		stringRow("User-Agent", "--user-agent", func(o *wget.Options) *string { return &o.UserAgent }),
		boolRow("Span hosts", "-H", func(o *wget.Options) *bool { return &o.SpanHosts }),
		boolRow("Follow FTP", "-F", func(o *wget.Options) *bool { return &o.FollowFTP }),
	}
}

// optionLine renders one row for the options pane.
func optionLine(row optionRow, opts *wget.Options) string {
	return fmt.Sprintf("%-20s %-14s %s", row.Label, row.Flag, row.Get(opts))
}
