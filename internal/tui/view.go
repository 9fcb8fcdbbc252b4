package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m RootModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("odget " + m.version))
	b.WriteString("\n")

	switch m.state {
	case OptionsState, OptionEditState:
		b.WriteString(m.viewOptions())
	case ResultsState:
		b.WriteString(m.viewResults())
	case PresetLoadState:
		b.WriteString(m.viewPresetLoad())
	default:
		b.WriteString(m.viewDashboard())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	if m.logReady {
		b.WriteString(PanelStyle.Render(m.logView.View()))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m RootModel) viewDashboard() string {
	var b strings.Builder

	b.WriteString(m.viewSources())
	b.WriteString("\n")

	b.WriteString(SubtextStyle.Render("Destination: "))
	b.WriteString(ItemStyle.Render(m.dest))
	b.WriteString("\n")
	b.WriteString(SubtextStyle.Render("Command:     "))
	b.WriteString(PreviewStyle.Render(m.previewCommand()))
	b.WriteString("\n")

	switch m.state {
	case AddSourceState:
		b.WriteString("\n")
		b.WriteString(SelectedItemStyle.Render("Add source URL: "))
		b.WriteString(m.urlInput.View())
		b.WriteString("\n")
	case SearchState:
		b.WriteString("\n")
		b.WriteString(SelectedItemStyle.Render("Search for: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	case DestState:
		b.WriteString("\n")
		b.WriteString(SelectedItemStyle.Render("Destination: "))
		b.WriteString(m.destInput.View())
		b.WriteString("\n")
	case PresetSaveState:
		b.WriteString("\n")
		b.WriteString(SelectedItemStyle.Render("Preset name: "))
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (m RootModel) viewSources() string {
	var lines []string
	if len(m.sources) == 0 {
		lines = append(lines, SubtextStyle.Render("No source URLs. Press 'a' to add one or 'v' to paste."))
	}
	for i, src := range m.sources {
		cursor := "  "
		style := ItemStyle
		if i == m.sourceCursor && m.state == DashboardState {
			cursor = "> "
			style = SelectedItemStyle
		}
		lines = append(lines, cursor+style.Render(src))
	}
	panel := PanelStyle
	if m.state == DashboardState {
		panel = FocusedPanelStyle
	}
	return panel.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func (m RootModel) viewOptions() string {
	var lines []string
	for i, row := range m.optionRows {
		cursor := "  "
		style := ItemStyle
		if i == m.optionCursor {
			cursor = "> "
			style = SelectedItemStyle
		}
		line := optionLine(row, &m.opts)
		if i == m.optionCursor && m.state == OptionEditState {
			line = fmt.Sprintf("%-20s %-14s %s", row.Label, row.Flag, m.valueInput.View())
		}
		lines = append(lines, cursor+style.Render(line))
	}
	lines = append(lines, "")
	lines = append(lines, PreviewStyle.Render(m.previewCommand()))
	return FocusedPanelStyle.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func (m RootModel) viewResults() string {
	var lines []string
	lines = append(lines, SelectedItemStyle.Render(
		fmt.Sprintf("%d files matching %q (%d selected)", len(m.results), m.lastSearch, len(m.selectedURLs()))))
	lines = append(lines, "")

	// Window the list around the cursor so long result sets stay on screen.
	visible := m.height - SourcesPanelHeight - LogPanelMinHeight
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.resultCursor >= visible {
		start = m.resultCursor - visible + 1
	}
	end := start + visible
	if end > len(m.results) {
		end = len(m.results)
	}

	for i := start; i < end; i++ {
		link := m.results[i]
		cursor := "  "
		style := ItemStyle
		if i == m.resultCursor {
			cursor = "> "
			style = SelectedItemStyle
		}
		check := "[ ]"
		if m.selected[i] {
			check = "[x]"
		}
		label := link.Name
		if link.MIME != "" {
			label += "  " + SubtextStyle.Render(link.MIME)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", cursor, check, style.Render(label)))
	}
	return FocusedPanelStyle.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func (m RootModel) viewPresetLoad() string {
	var lines []string
	lines = append(lines, SelectedItemStyle.Render("Presets"))
	lines = append(lines, "")
	for i, name := range m.presets.Names() {
		cursor := "  "
		style := ItemStyle
		if i == m.presetCursor {
			cursor = "> "
			style = SelectedItemStyle
		}
		p, _ := m.presets.Get(name)
		lines = append(lines, cursor+style.Render(fmt.Sprintf("%-24s %d sources", name, len(p.URLs))))
	}
	return FocusedPanelStyle.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func (m RootModel) viewStatus() string {
	var parts []string

	switch {
	case m.scanning:
		parts = append(parts, m.spinner.View()+" "+StatusWarnStyle.Render(m.status))
	case m.running:
		parts = append(parts, m.spinner.View()+" "+StatusOKStyle.Render(m.status))
		bar := m.progress.View()
		meta := fmt.Sprintf("  %d%%", m.percent)
		if m.speed != "" {
			meta += fmt.Sprintf("  %s", m.speed)
		}
		if m.eta != "" {
			meta += fmt.Sprintf("  eta %s", m.eta)
		}
		parts = append(parts, bar+SubtextStyle.Render(meta))
	default:
		parts = append(parts, SubtextStyle.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m RootModel) helpLine() string {
	switch m.state {
	case DashboardState:
		return "a add · v paste · d delete · s search · e dest · o options · g download · x stop · p presets · w save preset · q quit"
	case AddSourceState, SearchState, DestState, PresetSaveState:
		return "enter confirm · esc cancel"
	case OptionsState:
		return "j/k move · space toggle · enter edit · esc back"
	case OptionEditState:
		return "enter apply · esc cancel"
	case ResultsState:
		return "j/k move · space select · a select all · enter download · esc back"
	case PresetLoadState:
		return "j/k move · enter load · x delete · esc back"
	}
	return ""
}
