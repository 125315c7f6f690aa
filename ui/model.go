package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rnandomoreno/cleaning-process-macos/manager"
	"github.com/f3rnandomoreno/cleaning-process-macos/model"
)

// Messages
type snapshotMsg struct {
	view manager.View
}

type statusMsg struct {
	text    string
	isError bool
}

// UI modes
type uiMode int

const (
	normalMode uiMode = iota
	filterMode
	confirmKillMode
	confirmCleanMode
	helpMode
)

// Model holds TUI state. All process data arrives pre-classified and
// pre-sorted from the manager; the UI only filters, renders, and forwards
// user actions back.
type Model struct {
	mgr *manager.Manager

	table    table.Model
	records  []model.ProcessRecord
	memory   model.MemoryStats
	selected map[int32]struct{}
	width    int
	height   int

	rootWarning bool

	// Filtering
	filterInput textinput.Model
	filterText  string
	mode        uiMode

	// Status messages
	statusText  string
	statusError bool

	// Kill confirmation
	pendingPid  int32
	pendingName string
}

func NewModel(mgr *manager.Manager, rootWarning bool) Model {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "PID", Width: 8},
		{Title: "PROCESS", Width: 36},
		{Title: "RAM (MB)", Width: 10},
		{Title: "TYPE", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("cyan"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "filter by process name..."
	ti.CharLimit = 50

	return Model{
		mgr:         mgr,
		table:       t,
		filterInput: ti,
		mode:        normalMode,
		rootWarning: rootWarning,
		selected:    map[int32]struct{}{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Bridge forwards manager output into the running bubbletea program.
type Bridge struct {
	p *tea.Program
}

func NewBridge(p *tea.Program) *Bridge {
	return &Bridge{p: p}
}

func (b *Bridge) Publish(v manager.View) {
	b.p.Send(snapshotMsg{view: v})
}
