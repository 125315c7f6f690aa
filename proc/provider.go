package proc

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/f3rnandomoreno/cleaning-process-macos/model"
)

const (
	bytesPerMB = 1024 * 1024
	bytesPerGB = 1024 * 1024 * 1024

	// terminateWait bounds how long Terminate waits for the target to
	// actually exit after SIGTERM. Never blocks longer than this.
	terminateWait = 500 * time.Millisecond
	pollInterval  = 50 * time.Millisecond
)

// SystemProvider reads process and memory information from the running OS.
type SystemProvider struct{}

func NewSystemProvider() *SystemProvider {
	return &SystemProvider{}
}

// Snapshot returns a record for every process visible at call time.
// Processes that vanish or become unreadable mid-enumeration are skipped;
// a partial view is better than a failed refresh.
func (*SystemProvider) Snapshot() ([]model.ProcessRecord, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	records := make([]model.ProcessRecord, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}

		rec := model.ProcessRecord{Pid: p.Pid, Name: name}
		if info, err := p.MemoryInfo(); err == nil && info != nil {
			rec.MemoryMB = float64(info.RSS) / bytesPerMB
		}
		records = append(records, rec)
	}
	return records, nil
}

// Memory returns the current system RAM counters in GB.
func (*SystemProvider) Memory() (model.MemoryStats, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return model.MemoryStats{}, fmt.Errorf("reading memory stats: %w", err)
	}
	return model.MemoryStats{
		TotalGB:     float64(vm.Total) / bytesPerGB,
		UsedGB:      float64(vm.Used) / bytesPerGB,
		AvailableGB: float64(vm.Available) / bytesPerGB,
	}, nil
}

// Terminate sends SIGTERM to pid and waits a short bounded interval for the
// process to exit. A process that ignores the signal is not an error here;
// the next refresh will show whether it survived.
func (*SystemProvider) Terminate(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}

	if err := p.Terminate(); err != nil {
		return mapSignalError(pid, err)
	}

	waitForExit(p)
	return nil
}

// mapSignalError translates OS-level signalling failures into the provider's
// error taxonomy.
func mapSignalError(pid int32, err error) error {
	switch {
	case errors.Is(err, process.ErrorProcessNotRunning), errors.Is(err, syscall.ESRCH):
		return fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	case errors.Is(err, syscall.EPERM), errors.Is(err, syscall.EACCES):
		return fmt.Errorf("pid %d: %w", pid, ErrPermissionDenied)
	default:
		return fmt.Errorf("terminating pid %d: %w", pid, err)
	}
}

func waitForExit(p *process.Process) {
	deadline := time.Now().Add(terminateWait)
	for time.Now().Before(deadline) {
		running, err := p.IsRunning()
		if err != nil || !running {
			return
		}
		time.Sleep(pollInterval)
	}
}
