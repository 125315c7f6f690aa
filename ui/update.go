package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rnandomoreno/cleaning-process-macos/model"
	"github.com/f3rnandomoreno/cleaning-process-macos/proc"
)

const errorFmt = "Error: %v"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case snapshotMsg:
		m.records = msg.view.Records
		m.memory = msg.view.Memory
		m.selected = msg.view.Selected
		m.updateTable()
		return m, nil

	case statusMsg:
		m.statusText = msg.text
		m.statusError = msg.isError
		return m, nil
	}

	if m.mode == filterMode {
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.filterText = m.filterInput.Value()
		m.updateTable()
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case normalMode:
		return m.handleNormalMode(msg)
	case filterMode:
		return m.handleFilterMode(msg)
	case confirmKillMode:
		return m.handleConfirmKill(msg)
	case confirmCleanMode:
		return m.handleConfirmClean(msg)
	case helpMode:
		return m.handleHelpMode(msg)
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?", "h":
		m.mode = helpMode
		return m, nil

	// Manual refresh; coalesced if a cycle is already running.
	case "r":
		if m.mgr.TriggerRefresh() {
			return m, m.showStatus("Refreshing...", false)
		}
		return m, m.showStatus("Refresh already in progress", false)

	// Mark/unmark the highlighted process.
	case " ":
		if rec, ok := m.cursorRecord(); ok {
			m.mgr.ToggleSelect(rec.Pid)
			if m.selected == nil {
				m.selected = map[int32]struct{}{}
			}
			if _, marked := m.selected[rec.Pid]; marked {
				delete(m.selected, rec.Pid)
			} else {
				m.selected[rec.Pid] = struct{}{}
			}
			m.updateTable()
		}
		return m, nil

	// Filtering
	case "/":
		m.mode = filterMode
		m.filterInput.Focus()
		return m, textinput.Blink

	// Terminate the highlighted process.
	case "k":
		if rec, ok := m.cursorRecord(); ok {
			if rec.Essential {
				text := fmt.Sprintf("%s (pid %d) is essential and cannot be terminated", rec.Name, rec.Pid)
				return m, m.showStatus(text, true)
			}
			m.pendingPid = rec.Pid
			m.pendingName = rec.Name
			m.mode = confirmKillMode
		}
		return m, nil

	// Clean every non-essential process.
	case "C":
		m.mode = confirmCleanMode
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = normalMode
		m.filterInput.Blur()
		return m, nil
	case "enter":
		m.mode = normalMode
		m.filterInput.Blur()
		m.filterText = m.filterInput.Value()
		m.updateTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterText = m.filterInput.Value()
	m.updateTable()
	return m, cmd
}

func (m Model) handleConfirmKill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = normalMode
		return m, m.terminateCmd(m.pendingPid, m.pendingName)

	case "n", "N", "esc", "q":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmClean(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = normalMode
		return m, m.cleanAllCmd()

	case "n", "N", "esc", "q":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?", "h":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

// terminateCmd runs the termination off the update loop; the manager
// triggers a refresh afterwards so the table catches up on its own.
func (m Model) terminateCmd(pid int32, name string) tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		err := mgr.TerminateOne(pid)
		if err != nil {
			return statusMsg{text: terminateErrorText(err), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Sent terminate signal to %s (pid %d)", name, pid)}
	}
}

func (m Model) cleanAllCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		outcomes := mgr.TerminateAll()

		var ok, failed int
		var firstErr error
		for _, o := range outcomes {
			if o.Err != nil {
				failed++
				if firstErr == nil {
					firstErr = o.Err
				}
				continue
			}
			ok++
		}

		text := fmt.Sprintf("Sent terminate signal to %d processes", ok)
		if failed > 0 {
			text += fmt.Sprintf(", %d failed (%s)", failed, terminateErrorText(firstErr))
		}
		return statusMsg{text: text, isError: failed > 0}
	}
}

func terminateErrorText(err error) string {
	text := fmt.Sprintf(errorFmt, err)
	if errors.Is(err, proc.ErrPermissionDenied) {
		text += " - try re-running with sudo"
	}
	return text
}

func (m *Model) updateTable() {
	filtered := m.applyFilter(m.records, m.filterText)

	selectedPid := m.cursorPid()
	rows := m.buildRows(filtered)
	m.table.SetRows(rows)
	m.restoreCursor(filtered, selectedPid)
}

// buildRows turns filtered records into colored table rows. Records arrive
// sorted; MaxRows bounds the render cost on busy systems.
func (m *Model) buildRows(records []model.ProcessRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		mark := " "
		if _, ok := m.selected[r.Pid]; ok {
			mark = "*"
		}

		style := nonEssentialStyle
		if r.Essential {
			style = essentialStyle
		}

		name := r.Name
		if len(name) > 36 {
			name = name[:33] + "..."
		}

		rows = append(rows, table.Row{
			mark,
			fmt.Sprintf("%d", r.Pid),
			style.Render(name),
			fmt.Sprintf("%.1f", r.MemoryMB),
			style.Render(verdictLabel(r.Essential)),
		})

		if len(rows) >= model.MaxRows {
			break
		}
	}
	return rows
}

func verdictLabel(essential bool) string {
	if essential {
		return "essential"
	}
	return "non-essential"
}

// restoreCursor moves the highlight back to the previously highlighted PID
// if it survived the refresh.
func (m *Model) restoreCursor(records []model.ProcessRecord, pid int32) {
	if pid <= 0 {
		return
	}
	for i, r := range records {
		if i >= model.MaxRows {
			return
		}
		if r.Pid == pid {
			m.table.SetCursor(i)
			return
		}
	}
}

// applyFilter narrows records by case-insensitive name match.
func (m *Model) applyFilter(records []model.ProcessRecord, text string) []model.ProcessRecord {
	if text == "" {
		return records
	}

	searchLower := strings.ToLower(text)
	filtered := make([]model.ProcessRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), searchLower) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (m *Model) cursorRecord() (model.ProcessRecord, bool) {
	pid := m.cursorPid()
	if pid <= 0 {
		return model.ProcessRecord{}, false
	}
	for _, r := range m.records {
		if r.Pid == pid {
			return r, true
		}
	}
	return model.ProcessRecord{}, false
}

func (m *Model) cursorPid() int32 {
	row := m.table.SelectedRow()
	if len(row) < 2 {
		return 0
	}
	var pid int32
	fmt.Sscanf(row[1], "%d", &pid)
	return pid
}

func (m Model) showStatus(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
