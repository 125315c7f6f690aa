package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.mode == helpMode {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	if m.rootWarning {
		b.WriteString(errorStyle.Render("Running without root privileges: some processes may refuse to terminate"))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render(m.renderHeader()))
	b.WriteString("\n\n")
	b.WriteString(baseStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.mode == normalMode {
		b.WriteString(m.renderQuickHelp())
		b.WriteString("\n")
	}

	if m.statusText != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	if m.mode == filterMode {
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
	}

	if m.mode == confirmKillMode {
		b.WriteString("\n")
		b.WriteString(m.renderConfirmKill())
	}

	if m.mode == confirmCleanMode {
		b.WriteString("\n")
		b.WriteString(m.renderConfirmClean())
	}

	return b.String()
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("🧹 Cleaning Process - macOS")
	return titleBarStyle.
		Width(m.width).
		Align(lipgloss.Center).
		Render(title)
}

func (m Model) renderHeader() string {
	header := fmt.Sprintf(
		"RAM used: %s | available: %s | total: %s | Processes: %d",
		FormatGB(m.memory.UsedGB),
		FormatGB(m.memory.AvailableGB),
		FormatGB(m.memory.TotalGB),
		len(m.records),
	)

	if m.filterText != "" {
		header += fmt.Sprintf(" | Filter: %s",
			lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Render(m.filterText))
	}
	return header
}

func (m Model) renderQuickHelp() string {
	quickHelp := fmt.Sprintf(
		"%s Refresh | %s Mark | %s Terminate | %s Clean non-essential | %s Filter | %s Help | %s Quit",
		keybindStyle.Render("[r]"),
		keybindStyle.Render("[space]"),
		keybindStyle.Render("[k]"),
		keybindStyle.Render("[C]"),
		keybindStyle.Render("[/]"),
		keybindStyle.Render("[?]"),
		keybindStyle.Render("[q]"),
	)
	return keybindDescStyle.Render(quickHelp)
}

func (m Model) renderStatus() string {
	style := successStyle
	if m.statusError {
		style = errorStyle
	}
	return style.Render(m.statusText)
}

func (m Model) renderFilterBar() string {
	return filterLabelStyle.Render("Filter: ") +
		m.filterInput.View() +
		keybindDescStyle.Render(" (Enter to apply, Esc to cancel)")
}

func (m Model) renderConfirmKill() string {
	msg := fmt.Sprintf("⚠️  Terminate %s (pid %d)? (y/n)", m.pendingName, m.pendingPid)
	return confirmStyle.Render(msg)
}

func (m Model) renderConfirmClean() string {
	count := 0
	for _, r := range m.records {
		if !r.Essential {
			count++
		}
	}
	msg := fmt.Sprintf("⚠️  Terminate all %d non-essential processes? (y/n)", count)
	return confirmStyle.Render(msg)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	title := titleStyle.Render("🧹 Cleaning Process - Keyboard Shortcuts")
	b.WriteString(titleBarStyle.
		Width(m.width).
		Align(lipgloss.Center).
		Render(title))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "PROCESS MANAGEMENT",
			keys: []struct{ key, desc string }{
				{"k", "Terminate the highlighted process (asks to confirm)"},
				{"C", "Terminate every non-essential process"},
				{"space", "Mark/unmark the highlighted process"},
				{"", "Essential processes (red) are always refused"},
			},
		},
		{
			title: "VIEW",
			keys: []struct{ key, desc string }{
				{"r", "Refresh now (list also refreshes on its own)"},
				{"/", "Filter by process name"},
				{"Enter", "Apply filter"},
				{"Esc", "Cancel filter"},
			},
		},
		{
			title: "NAVIGATION",
			keys: []struct{ key, desc string }{
				{"↑/↓ or j/k", "Move highlight"},
				{"PgUp/PgDn", "Page up/down"},
				{"Home/End", "Go to first/last"},
			},
		},
		{
			title: "GENERAL",
			keys: []struct{ key, desc string }{
				{"?/h", "Show/hide this help"},
				{"q", "Quit"},
				{"Ctrl+C", "Force quit"},
			},
		},
	}

	for _, section := range sections {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan")).
			Bold(true).
			Render(section.title))
		b.WriteString("\n")

		for _, binding := range section.keys {
			if binding.key == "" {
				b.WriteString(keybindDescStyle.Render("  ℹ " + binding.desc))
			} else {
				line := fmt.Sprintf("  %s  %s",
					keybindStyle.Render(lipgloss.NewStyle().Width(12).Render(binding.key)),
					keybindDescStyle.Render(binding.desc))
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(keybindDescStyle.Render("Press any key to return..."))

	return helpBoxStyle.Render(b.String())
}
