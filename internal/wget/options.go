// Package wget builds argument vectors for the external wget executable and
// supervises its execution. Compilation of options into flags is pure; the
// runner owns all subprocess plumbing.
package wget

// Options is a flat record of independent wget settings as exposed in the UI.
// JSON tags match the preset document format on disk.
type Options struct {
	Recursive    bool   `json:"recursive"`
	NoParent     bool   `json:"no_parent"`
	Mirror       bool   `json:"mirror"`
	Depth        int    `json:"depth"`
	CutDirs      int    `json:"cutdirs"`
	NoHostDir    bool   `json:"no_host_dir"`
	Timestamp    bool   `json:"timestamp"`
	Continue     bool   `json:"continue"`
	DoNotClobber bool   `json:"do_not_clobber"`
	LimitRate    string `json:"limit_rate"`
	Tries        int    `json:"tries"`
	Timeout      int    `json:"timeout"`
	Accept       string `json:"accept"`
	Reject       string `json:"reject"`
	RejectRegex  string `json:"rej_regex"`
	UserAgent    string `json:"user_agent"`
	SpanHosts    bool   `json:"span_hosts"`
	FollowFTP    bool   `json:"follow_ftp"`
}

// DefaultOptions returns the option record new presets and fresh sessions
// start from: recursive no-parent scraping confined to the source host, with
// resume enabled.
func DefaultOptions() Options {
	return Options{
		Recursive: true,
		NoParent:  true,
		Depth:     5,
		NoHostDir: true,
		Continue:  true,
		Tries:     20,
		Timeout:   30,
	}
}
