package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/odget-downloader/odget/internal/config"
	"github.com/odget-downloader/odget/internal/events"
	"github.com/odget-downloader/odget/internal/preset"
	"github.com/odget-downloader/odget/internal/scanner"
	"github.com/odget-downloader/odget/internal/wget"
)

type UIState int

const (
	DashboardState  UIState = iota // browse mode, plain-letter keys
	AddSourceState                 // URL text input
	SearchState                    // search term text input
	DestState                      // destination text input
	OptionsState                   // options pane navigation
	OptionEditState                // inline value edit in the options pane
	ResultsState                   // search results checkbox list
	PresetSaveState                // preset name text input
	PresetLoadState                // preset selection list
)

// RootModel is the whole TUI: the configuration form, the wget runner wiring
// and the search results selection.
type RootModel struct {
	settings *config.Settings
	version  string
	eventCh  chan any

	width  int
	height int
	state  UIState

	// Configuration being edited
	sources      []string
	opts         wget.Options
	dest         string
	sourceCursor int

	// Inputs
	urlInput    textinput.Model
	searchInput textinput.Model
	destInput   textinput.Model
	nameInput   textinput.Model
	valueInput  textinput.Model

	// Options pane
	optionRows   []optionRow
	optionCursor int

	// Presets
	presets      *preset.Store
	presetCursor int

	// Runner state
	wgetPath  string
	runner    *wget.Runner
	running   bool
	batchStop context.CancelFunc
	percent   int
	speed     string
	eta       string
	progress  progress.Model
	status    string

	// Scan state
	scanning bool
	scanStop context.CancelFunc
	spinner  spinner.Model
	scan     *scanner.Scanner

	// Search results
	results      []scanner.Link
	resultCursor int
	selected     map[int]bool
	lastSearch   string

	// Log
	logLines []string
	logView  viewport.Model
	logReady bool
}

// InitialRootModel builds the TUI model. eventCh is the channel the runner
// and scanner publish to; the caller pumps it into the bubbletea program.
func InitialRootModel(settings *config.Settings, version string, eventCh chan any) RootModel {
	ConfigureStyles(settings.General.Theme)

	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com/path/to/directory/"
	urlInput.Width = InputWidth
	urlInput.Prompt = ""

	searchInput := textinput.New()
	searchInput.Placeholder = "filename or pattern"
	searchInput.Width = InputWidth
	searchInput.Prompt = ""

	destInput := textinput.New()
	destInput.Width = InputWidth
	destInput.Prompt = ""
	destInput.SetValue(settings.General.DefaultDestDir)

	nameInput := textinput.New()
	nameInput.Placeholder = "preset name"
	nameInput.Width = 30
	nameInput.Prompt = ""

	valueInput := textinput.New()
	valueInput.Width = 30
	valueInput.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SelectedItemStyle

	s := scanner.New(settings.Scan.Timeout, settings.Scan.UserAgent)

	m := RootModel{
		settings:    settings,
		version:     version,
		eventCh:     eventCh,
		state:       DashboardState,
		opts:        wget.DefaultOptions(),
		dest:        settings.General.DefaultDestDir,
		urlInput:    urlInput,
		searchInput: searchInput,
		destInput:   destInput,
		nameInput:   nameInput,
		valueInput:  valueInput,
		optionRows:  optionRows(),
		presets:     preset.Load(),
		runner:      wget.NewRunner(eventCh),
		progress:    progress.New(progress.WithDefaultGradient()),
		spinner:     sp,
		scan:        s,
		selected:    make(map[int]bool),
		status:      "Idle",
	}

	// Scanner callbacks publish through the same channel as the runner.
	s.Log = func(line string) { eventCh <- events.LogLineMsg{Line: line} }
	s.OnSource = func(i, total int, src string) {
		eventCh <- events.ScanSourceMsg{Index: i, Total: total, Source: src}
	}

	if path, err := wget.LookPath(settings.Tool.WgetPath); err != nil {
		m.appendLog("WARNING: 'wget' not found in PATH. Please install wget (or use WSL on Windows).")
	} else {
		m.wgetPath = path
		m.appendLog(fmt.Sprintf("Found wget at: %s", path))
	}

	return m
}

func (m RootModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// appendLog adds a line to the scrollback, trimming it to MaxLogLines.
func (m *RootModel) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > MaxLogLines {
		m.logLines = m.logLines[len(m.logLines)-MaxLogLines:]
	}
	if m.logReady {
		m.logView.SetContent(joinLines(m.logLines))
		m.logView.GotoBottom()
	}
}

// previewCommand renders the compiled command for the current form state.
func (m *RootModel) previewCommand() string {
	target := "<URL>"
	if len(m.sources) == 1 {
		target = m.sources[0]
	} else if len(m.sources) > 1 {
		target = fmt.Sprintf("<%d URLs>", len(m.sources))
	}
	argv := append([]string{"wget"}, wget.BuildArgs(m.opts, m.dest, target)...)
	return wget.QuoteCommand(argv)
}

// addSource appends a URL to the ordered, duplicate-free source set.
func (m *RootModel) addSource(url string) {
	if url == "" {
		return
	}
	for _, existing := range m.sources {
		if existing == url {
			m.appendLog("This URL is already in the list.")
			return
		}
	}
	m.sources = append(m.sources, url)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
