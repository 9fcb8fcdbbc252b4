// Package preset persists named download configurations (source URLs plus a
// full wget option record) as a single JSON document.
package preset

import (
	"encoding/json"

	"github.com/odget-downloader/odget/internal/wget"
)

// Preset is a named snapshot of source URLs, destination, and options.
// The legacy on-disk format carried a single "url" field; it is upgraded to a
// one-element URLs list on load but only rewritten on the next save.
type Preset struct {
	URLs []string `json:"urls"`
	Dest string   `json:"dest"`
	wget.Options
}

// legacyURL mirrors the pre-list document shape for reads.
type legacyURL struct {
	URL string `json:"url"`
}

// UnmarshalJSON fills missing option fields from defaults and upgrades the
// legacy single-URL field.
func (p *Preset) UnmarshalJSON(data []byte) error {
	type alias Preset
	tmp := alias{Options: wget.DefaultOptions()}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = Preset(tmp)

	if len(p.URLs) == 0 {
		var legacy legacyURL
		if err := json.Unmarshal(data, &legacy); err == nil && legacy.URL != "" {
			p.URLs = []string{legacy.URL}
		}
	}
	return nil
}

// New returns a Preset with default options and no sources.
func New() Preset {
	return Preset{Options: wget.DefaultOptions()}
}

// AddURL appends a source URL, preserving order and rejecting duplicates.
// It reports whether the URL was added.
func (p *Preset) AddURL(url string) bool {
	if url == "" {
		return false
	}
	for _, existing := range p.URLs {
		if existing == url {
			return false
		}
	}
	p.URLs = append(p.URLs, url)
	return true
}

// RemoveURL deletes a source URL, preserving relative order of the rest.
func (p *Preset) RemoveURL(url string) {
	kept := p.URLs[:0]
	for _, existing := range p.URLs {
		if existing != url {
			kept = append(kept, existing)
		}
	}
	p.URLs = kept
}
