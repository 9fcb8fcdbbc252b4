package wget

import (
	"regexp"
	"strings"
)

var needsQuoting = regexp.MustCompile(`\s|'|"`)

// Quote returns s in POSIX shell quoting suitable for a human-readable
// command preview. Tokens without whitespace or quote characters pass through
// untouched; anything else is wrapped in single quotes with embedded single
// quotes rendered as '"'"'.
//
// The preview is never handed to a shell. Execution always uses the argument
// vector directly.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !needsQuoting.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// QuoteCommand renders an argument vector as a single preview line.
func QuoteCommand(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}
