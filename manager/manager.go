package manager

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/f3rnandomoreno/cleaning-process-macos/model"
	"github.com/f3rnandomoreno/cleaning-process-macos/rules"
)

// ErrProtected means a terminate request targeted an essential process.
// It is rejected before any OS call is made.
var ErrProtected = errors.New("protected process")

// Provider supplies process and memory data and performs termination.
// The OS-backed implementation lives in the proc package; tests use a fake.
type Provider interface {
	Snapshot() ([]model.ProcessRecord, error)
	Memory() (model.MemoryStats, error)
	Terminate(pid int32) error
}

// Sink receives the result of each refresh cycle. The TUI implements it by
// forwarding into the bubbletea program.
type Sink interface {
	Publish(View)
}

// View is what a completed refresh hands to the presentation layer:
// classified records sorted by memory, the RAM summary, and the surviving
// selection.
type View struct {
	Records  []model.ProcessRecord
	Memory   model.MemoryStats
	Selected map[int32]struct{}
}

// Outcome is the per-process result of a batch termination pass.
type Outcome struct {
	Pid  int32
	Name string
	Err  error
}

// Manager drives the fetch-classify-sort-publish cycle and owns the
// selection state. A two-state guard (idle / in-progress) plus a one-slot
// pending trigger ensures at most one cycle runs at a time; triggers that
// arrive mid-cycle collapse into a single deferred cycle.
type Manager struct {
	provider Provider
	sink     Sink
	logger   *log.Logger

	mu         sync.Mutex
	classifier *rules.Classifier
	selection  map[int32]struct{}
	records    []model.ProcessRecord
	memory     model.MemoryStats
	refreshing bool
	pending    bool
}

func New(provider Provider, set rules.EssentialitySet, sink Sink, logger *log.Logger) *Manager {
	return &Manager{
		provider:   provider,
		sink:       sink,
		logger:     logger,
		classifier: rules.NewClassifier(set),
		selection:  make(map[int32]struct{}),
	}
}

// SetSink wires the presentation layer in after construction; the bubbletea
// program has to exist before its bridge can.
func (m *Manager) SetSink(sink Sink) {
	m.mu.Lock()
	m.sink = sink
	m.mu.Unlock()
}

// SetEssentials swaps in a new protection list. Cycles already running keep
// the classifier they started with; the next cycle sees the new one.
func (m *Manager) SetEssentials(set rules.EssentialitySet) {
	m.mu.Lock()
	m.classifier = rules.NewClassifier(set)
	m.mu.Unlock()
}

// Run triggers a refresh immediately and then on every tick until ctx ends.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	m.TriggerRefresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.TriggerRefresh()
		}
	}
}

// TriggerRefresh requests a refresh cycle. If no cycle is running one starts
// asynchronously and TriggerRefresh reports true. Otherwise the request is
// coalesced (at most one deferred cycle, regardless of how many triggers
// arrive) and TriggerRefresh reports false.
func (m *Manager) TriggerRefresh() bool {
	if !m.begin() {
		return false
	}
	go m.runCycles()
	return true
}

// RefreshNow runs refresh cycles synchronously, honoring the same guard.
// Used by the headless clean command and by tests.
func (m *Manager) RefreshNow() bool {
	if !m.begin() {
		return false
	}
	m.runCycles()
	return true
}

func (m *Manager) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refreshing {
		m.pending = true
		return false
	}
	m.refreshing = true
	return true
}

// runCycles performs one cycle, then drains the pending slot if a trigger
// arrived in the meantime. A cycle always runs to completion once started.
func (m *Manager) runCycles() {
	for {
		m.refreshOnce()

		m.mu.Lock()
		if m.pending {
			m.pending = false
			m.mu.Unlock()
			continue
		}
		m.refreshing = false
		m.mu.Unlock()
		return
	}
}

func (m *Manager) refreshOnce() {
	records, err := m.provider.Snapshot()
	if err != nil {
		// Keep the last published list rather than flashing an empty table.
		m.logger.Printf("refresh skipped: %v", err)
		return
	}

	stats, err := m.provider.Memory()
	if err != nil {
		m.logger.Printf("memory stats unavailable: %v", err)
		stats = model.MemoryStats{}
	}

	m.mu.Lock()
	for i := range records {
		records[i].Essential = m.classifier.Classify(records[i].Pid, records[i].Name) == rules.Essential
	}
	model.SortRecords(records)

	alive := make(map[int32]struct{}, len(records))
	for i := range records {
		alive[records[i].Pid] = struct{}{}
	}
	for pid := range m.selection {
		if _, ok := alive[pid]; !ok {
			delete(m.selection, pid)
		}
	}

	m.records = records
	m.memory = stats
	view := View{
		Records:  records,
		Memory:   stats,
		Selected: copyPidSet(m.selection),
	}
	sink := m.sink
	m.mu.Unlock()

	if sink != nil {
		sink.Publish(view)
	}
}

// ToggleSelect flips membership of pid in the selection set and reports
// whether the pid is now selected.
func (m *Manager) ToggleSelect(pid int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.selection[pid]; ok {
		delete(m.selection, pid)
		return false
	}
	m.selection[pid] = struct{}{}
	return true
}

// Selection returns a copy of the current selection set.
func (m *Manager) Selection() map[int32]struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyPidSet(m.selection)
}

// TerminateOne terminates a single process. Essential processes are refused
// before the provider is ever called. Whatever the outcome, an immediate
// refresh is triggered so the table reflects reality instead of a stale row.
func (m *Manager) TerminateOne(pid int32) error {
	m.mu.Lock()
	name := m.nameForLocked(pid)
	verdict := m.classifier.Classify(pid, name)
	m.mu.Unlock()

	if verdict == rules.Essential {
		return fmt.Errorf("%s (pid %d): %w", displayName(name), pid, ErrProtected)
	}

	err := m.provider.Terminate(pid)
	if err != nil {
		m.logger.Printf("terminate pid %d: %v", pid, err)
	}
	m.TriggerRefresh()
	return err
}

// TerminateAll attempts to terminate every non-essential process in the
// current list. Each attempt is independent; failures are collected, never
// fatal. One refresh runs at the end of the pass.
func (m *Manager) TerminateAll() []Outcome {
	m.mu.Lock()
	targets := make([]model.ProcessRecord, 0, len(m.records))
	for _, r := range m.records {
		if !r.Essential {
			targets = append(targets, r)
		}
	}
	m.mu.Unlock()

	outcomes := make([]Outcome, 0, len(targets))
	for _, t := range targets {
		err := m.provider.Terminate(t.Pid)
		if err != nil {
			m.logger.Printf("terminate pid %d (%s): %v", t.Pid, t.Name, err)
		}
		outcomes = append(outcomes, Outcome{Pid: t.Pid, Name: t.Name, Err: err})
	}

	m.TriggerRefresh()
	return outcomes
}

// nameForLocked resolves a pid to its last seen name. Callers hold m.mu.
func (m *Manager) nameForLocked(pid int32) string {
	for i := range m.records {
		if m.records[i].Pid == pid {
			return m.records[i].Name
		}
	}
	return ""
}

func displayName(name string) string {
	if name == "" {
		return "?"
	}
	return name
}

func copyPidSet(src map[int32]struct{}) map[int32]struct{} {
	dst := make(map[int32]struct{}, len(src))
	for pid := range src {
		dst[pid] = struct{}{}
	}
	return dst
}
