package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/odget-downloader/odget/internal/events"
	"github.com/odget-downloader/odget/internal/history"
	"github.com/odget-downloader/odget/internal/preset"
	"github.com/odget-downloader/odget/internal/wget"
)

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 24
		logHeight := msg.Height - SourcesPanelHeight - 14
		if logHeight < LogPanelMinHeight {
			logHeight = LogPanelMinHeight
		}
		if !m.logReady {
			m.logView = viewport.New(msg.Width-4, logHeight)
			m.logReady = true
		} else {
			m.logView.Width = msg.Width - 4
			m.logView.Height = logHeight
		}
		m.logView.SetContent(joinLines(m.logLines))
		m.logView.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd

	case events.LogLineMsg:
		m.appendLog(msg.Line)
		return m, nil

	case events.ProgressMsg:
		m.percent = msg.Percent
		if msg.Speed != "" {
			m.speed = msg.Speed
		}
		if msg.ETA != "" {
			m.eta = msg.ETA
		}
		return m, m.progress.SetPercent(float64(msg.Percent) / 100)

	case events.RunStartedMsg:
		m.running = true
		m.percent = 0
		m.speed = ""
		m.eta = ""
		m.status = "Downloading " + msg.URL
		m.appendLog("$ " + msg.Command)
		return m, m.progress.SetPercent(0)

	case events.RunFinishedMsg:
		if msg.ExitCode == 0 {
			m.status = fmt.Sprintf("Finished %s in %s", msg.URL, msg.Elapsed.Round(time.Second))
			return m, m.progress.SetPercent(1)
		}
		m.status = fmt.Sprintf("wget exited with code %d", msg.ExitCode)
		return m, nil

	case events.BatchItemMsg:
		m.status = fmt.Sprintf("[%d/%d] %s", msg.Index+1, msg.Total, msg.URL)
		return m, nil

	case events.BatchDoneMsg:
		m.running = false
		m.batchStop = nil
		if msg.Failed == 0 {
			m.status = fmt.Sprintf("All %d downloads finished", msg.Total)
		} else {
			m.status = fmt.Sprintf("%d of %d downloads failed", msg.Failed, msg.Total)
		}
		return m, nil

	case events.ScanSourceMsg:
		m.status = fmt.Sprintf("Scanning %d/%d: %s", msg.Index+1, msg.Total, msg.Source)
		return m, nil

	case events.ScanDoneMsg:
		m.scanning = false
		m.scanStop = nil
		m.results = msg.Links
		m.selected = make(map[int]bool)
		m.resultCursor = 0
		if len(m.results) == 0 {
			m.status = fmt.Sprintf("No files matching %q found", msg.Term)
			return m, nil
		}
		for i := range m.results {
			m.selected[i] = true
		}
		m.status = fmt.Sprintf("%d files matching %q", len(m.results), msg.Term)
		m.state = ResultsState
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.shutdown()
		return m, tea.Quit
	}

	switch m.state {
	case DashboardState:
		return m.updateDashboard(msg)
	case AddSourceState:
		return m.updateAddSource(msg)
	case SearchState:
		return m.updateSearch(msg)
	case DestState:
		return m.updateDest(msg)
	case OptionsState:
		return m.updateOptions(msg)
	case OptionEditState:
		return m.updateOptionEdit(msg)
	case ResultsState:
		return m.updateResults(msg)
	case PresetSaveState:
		return m.updatePresetSave(msg)
	case PresetLoadState:
		return m.updatePresetLoad(msg)
	}
	return m, nil
}

// shutdown terminates any subprocess and in-flight scan before the program
// exits.
func (m *RootModel) shutdown() {
	if m.scanStop != nil {
		m.scanStop()
	}
	if m.batchStop != nil {
		m.batchStop()
	}
	m.runner.Stop()
}

func (m RootModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.shutdown()
		return m, tea.Quit

	case "a":
		m.state = AddSourceState
		m.urlInput.SetValue("")
		m.urlInput.Focus()
		return m, nil

	case "v", "ctrl+v":
		text, err := clipboard.ReadAll()
		if err != nil {
			m.appendLog("Clipboard read failed: " + err.Error())
			return m, nil
		}
		text = strings.TrimSpace(text)
		if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") || strings.HasPrefix(text, "ftp://") {
			m.addSource(text)
		} else {
			m.appendLog("Clipboard does not contain a URL.")
		}
		return m, nil

	case "d":
		if len(m.sources) > 0 {
			m.sources = append(m.sources[:m.sourceCursor], m.sources[m.sourceCursor+1:]...)
			if m.sourceCursor >= len(m.sources) && m.sourceCursor > 0 {
				m.sourceCursor--
			}
		}
		return m, nil

	case "j", "down":
		if m.sourceCursor < len(m.sources)-1 {
			m.sourceCursor++
		}
		return m, nil

	case "k", "up":
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
		return m, nil

	case "s":
		if len(m.sources) == 0 {
			m.appendLog("Add at least one source URL before searching.")
			return m, nil
		}
		m.state = SearchState
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, nil

	case "e":
		m.state = DestState
		m.destInput.SetValue(m.dest)
		m.destInput.Focus()
		return m, nil

	case "o":
		m.state = OptionsState
		return m, nil

	case "g":
		return m.startDownloads()

	case "x":
		if m.scanStop != nil {
			m.scanStop()
			m.scanning = false
			m.scanStop = nil
			m.status = "Search cancelled"
			return m, nil
		}
		if m.batchStop != nil {
			m.batchStop()
		}
		if m.runner.Running() {
			m.runner.Stop()
			m.status = "Download stopped"
		}
		return m, nil

	case "r":
		if len(m.results) > 0 {
			m.state = ResultsState
		}
		return m, nil

	case "p":
		m.presets = preset.Load()
		if m.presets.Len() == 0 {
			m.appendLog("No presets saved yet.")
			return m, nil
		}
		m.presetCursor = 0
		m.state = PresetLoadState
		return m, nil

	case "w":
		if len(m.sources) == 0 {
			m.appendLog("Nothing to save: the source list is empty.")
			return m, nil
		}
		m.state = PresetSaveState
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, nil
	}

	return m, nil
}

func (m RootModel) updateAddSource(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.addSource(strings.TrimSpace(m.urlInput.Value()))
		m.urlInput.Blur()
		m.state = DashboardState
		return m, nil
	case tea.KeyEsc:
		m.urlInput.Blur()
		m.state = DashboardState
		return m, nil
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m RootModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		term := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.state = DashboardState
		if term == "" {
			return m, nil
		}
		return m.startScan(term)
	case tea.KeyEsc:
		m.searchInput.Blur()
		m.state = DashboardState
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m RootModel) updateDest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if v := strings.TrimSpace(m.destInput.Value()); v != "" {
			m.dest = v
		}
		m.destInput.Blur()
		m.state = DashboardState
		return m, nil
	case tea.KeyEsc:
		m.destInput.Blur()
		m.state = DashboardState
		return m, nil
	}
	var cmd tea.Cmd
	m.destInput, cmd = m.destInput.Update(msg)
	return m, cmd
}

func (m RootModel) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "o", "q":
		m.state = DashboardState
		return m, nil
	case "j", "down":
		if m.optionCursor < len(m.optionRows)-1 {
			m.optionCursor++
		}
		return m, nil
	case "k", "up":
		if m.optionCursor > 0 {
			m.optionCursor--
		}
		return m, nil
	case " ", "enter":
		row := m.optionRows[m.optionCursor]
		if row.Kind == optBool {
			row.Set(&m.opts, "")
			return m, nil
		}
		if msg.String() == "enter" {
			current := row.Get(&m.opts)
			if current == "(empty)" {
				current = ""
			}
			m.valueInput.SetValue(current)
			m.valueInput.CursorEnd()
			m.valueInput.Focus()
			m.state = OptionEditState
		}
		return m, nil
	}
	return m, nil
}

func (m RootModel) updateOptionEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		row := m.optionRows[m.optionCursor]
		row.Set(&m.opts, strings.TrimSpace(m.valueInput.Value()))
		m.valueInput.Blur()
		m.state = OptionsState
		return m, nil
	case tea.KeyEsc:
		m.valueInput.Blur()
		m.state = OptionsState
		return m, nil
	}
	var cmd tea.Cmd
	m.valueInput, cmd = m.valueInput.Update(msg)
	return m, cmd
}

func (m RootModel) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.state = DashboardState
		return m, nil
	case "j", "down":
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
		return m, nil
	case "k", "up":
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	case " ":
		m.selected[m.resultCursor] = !m.selected[m.resultCursor]
		return m, nil
	case "a":
		all := len(m.selectedURLs()) == len(m.results)
		for i := range m.results {
			m.selected[i] = !all
		}
		return m, nil
	case "enter":
		return m.startResultsDownload()
	}
	return m, nil
}

func (m RootModel) updatePresetSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		m.nameInput.Blur()
		m.state = DashboardState
		if name == "" {
			return m, nil
		}
		p := preset.Preset{
			URLs:    append([]string(nil), m.sources...),
			Dest:    m.dest,
			Options: m.opts,
		}
		m.presets.Set(name, p)
		if err := m.presets.Save(); err != nil {
			m.appendLog("Failed to save preset: " + err.Error())
		} else {
			m.appendLog(fmt.Sprintf("Preset %q saved.", name))
		}
		return m, nil
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.state = DashboardState
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m RootModel) updatePresetLoad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.presets.Names()
	switch msg.String() {
	case "esc", "q":
		m.state = DashboardState
		return m, nil
	case "j", "down":
		if m.presetCursor < len(names)-1 {
			m.presetCursor++
		}
		return m, nil
	case "k", "up":
		if m.presetCursor > 0 {
			m.presetCursor--
		}
		return m, nil
	case "x":
		if len(names) > 0 {
			m.presets.Delete(names[m.presetCursor])
			if err := m.presets.Save(); err != nil {
				m.appendLog("Failed to save presets: " + err.Error())
			}
			if m.presetCursor > 0 {
				m.presetCursor--
			}
			if m.presets.Len() == 0 {
				m.state = DashboardState
			}
		}
		return m, nil
	case "enter":
		if len(names) == 0 {
			m.state = DashboardState
			return m, nil
		}
		name := names[m.presetCursor]
		p, ok := m.presets.Get(name)
		if !ok {
			m.state = DashboardState
			return m, nil
		}
		m.sources = append([]string(nil), p.URLs...)
		m.sourceCursor = 0
		m.opts = p.Options
		if p.Dest != "" {
			m.dest = p.Dest
		}
		m.appendLog(fmt.Sprintf("Preset %q loaded (%d sources).", name, len(m.sources)))
		m.state = DashboardState
		return m, nil
	}
	return m, nil
}

// startDownloads launches the full recursive download of every source URL,
// one wget process at a time.
func (m RootModel) startDownloads() (tea.Model, tea.Cmd) {
	if m.running || m.scanning {
		m.appendLog("A download or search is already in progress.")
		return m, nil
	}
	if len(m.sources) == 0 {
		m.appendLog("Add at least one source URL first.")
		return m, nil
	}
	if m.wgetPath == "" {
		m.appendLog("Cannot start: wget was not found. Set tool.wget_path in settings or install wget.")
		m.status = "wget not found"
		return m, nil
	}
	if err := os.MkdirAll(m.dest, 0755); err != nil {
		m.appendLog("Failed to create destination directory: " + err.Error())
		m.status = "Destination error"
		return m, nil
	}

	m.running = true
	m.status = "Starting..."

	ctx, cancel := context.WithCancel(context.Background())
	m.batchStop = cancel

	sources := append([]string(nil), m.sources...)
	opts := m.opts
	dest := m.dest
	bin := m.wgetPath
	runner := m.runner
	eventCh := m.eventCh

	go func() {
		defer cancel()
		done := 0
		failed := 0
		for i, src := range sources {
			// Stopping cancels the whole batch, not just the current item.
			if ctx.Err() != nil {
				break
			}
			runID := uuid.New().String()
			eventCh <- events.BatchItemMsg{RunID: runID, Index: i, Total: len(sources), URL: src}

			args := wget.BuildArgs(opts, dest, src)
			finishedCh, err := runner.Start(runID, bin, args, dest, src)
			if err != nil {
				eventCh <- events.LogLineMsg{Line: fmt.Sprintf("Failed to launch wget for %s: %v", src, err)}
				done++
				failed++
				continue
			}
			fin := <-finishedCh
			history.Record(history.Entry{
				ID:         runID,
				URL:        src,
				Command:    wget.QuoteCommand(append([]string{bin}, args...)),
				ExitCode:   fin.ExitCode,
				StartedAt:  time.Now().Add(-fin.Elapsed),
				FinishedAt: time.Now(),
			})
			done++
			if fin.ExitCode != 0 {
				failed++
			}
		}
		eventCh <- events.BatchDoneMsg{Total: done, Failed: failed}
	}()

	return m, nil
}

// startScan kicks off the sequential listing fetch in the background. Results
// come back as a ScanDoneMsg through the event channel.
func (m RootModel) startScan(term string) (tea.Model, tea.Cmd) {
	if m.scanning {
		m.appendLog("A search is already in progress.")
		return m, nil
	}
	m.scanning = true
	m.lastSearch = term
	m.status = fmt.Sprintf("Searching for %q...", term)

	ctx, cancel := context.WithCancel(context.Background())
	m.scanStop = cancel

	sources := append([]string(nil), m.sources...)
	scan := m.scan
	eventCh := m.eventCh

	go func() {
		defer cancel()
		links := scan.Scan(ctx, sources, term)
		eventCh <- events.ScanDoneMsg{Term: term, Links: links}
	}()

	return m, nil
}

// selectedURLs returns the checked result URLs in listing order.
func (m *RootModel) selectedURLs() []string {
	var urls []string
	for i, link := range m.results {
		if m.selected[i] {
			urls = append(urls, link.URL)
		}
	}
	return urls
}

// startResultsDownload batch-fetches every checked search result.
func (m RootModel) startResultsDownload() (tea.Model, tea.Cmd) {
	urls := m.selectedURLs()
	if len(urls) == 0 {
		m.appendLog("No files selected.")
		return m, nil
	}
	if m.running {
		m.appendLog("A download is already in progress.")
		return m, nil
	}
	if m.wgetPath == "" {
		m.appendLog("Cannot start: wget was not found. Set tool.wget_path in settings or install wget.")
		m.status = "wget not found"
		return m, nil
	}
	if err := os.MkdirAll(m.dest, 0755); err != nil {
		m.appendLog("Failed to create destination directory: " + err.Error())
		m.status = "Destination error"
		return m, nil
	}

	m.running = true
	m.state = DashboardState
	m.status = fmt.Sprintf("Downloading %d files...", len(urls))

	ctx, cancel := context.WithCancel(context.Background())
	m.batchStop = cancel

	bin := m.wgetPath
	dest := m.dest
	resume := m.opts.Continue
	timeout := m.settings.Tool.BatchItemTimeout
	eventCh := m.eventCh

	go func() {
		defer cancel()
		results := wget.RunBatch(ctx, eventCh, bin, dest, resume, urls, timeout)
		for _, r := range results {
			history.Record(history.Entry{
				ID:         r.RunID,
				URL:        r.URL,
				Command:    r.Command,
				ExitCode:   r.ExitCode,
				StartedAt:  r.Started,
				FinishedAt: r.Started.Add(r.Elapsed),
			})
		}
	}()

	return m, nil
}
