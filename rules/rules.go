package rules

// Verdict is the classification of a single process.
type Verdict int

const (
	NonEssential Verdict = iota
	Essential
)

func (v Verdict) String() string {
	if v == Essential {
		return "essential"
	}
	return "non-essential"
}

// DefaultNames are system processes that should never be terminated.
// The list is a starting point, not exhaustive; users extend it via config.
var DefaultNames = []string{
	"kernel_task",
	"launchd",
	"WindowServer",
	"hidd",
	"distnoted",
	"powerd",
	"loginwindow",
	"systemstats",
	"notifyd",
	"syslogd",
	"mdworker",
	"mds",
	"mds_stores",
	"bluetoothd",
	"configd",
}

// DefaultPids protects the kernel (0) and launchd (1) regardless of name.
var DefaultPids = []int32{0, 1}

// EssentialitySet holds the protected process names and PIDs. The set is
// immutable after construction; a config reload builds a fresh one.
type EssentialitySet struct {
	names map[string]struct{}
	pids  map[int32]struct{}
}

func NewEssentialitySet(names []string, pids []int32) EssentialitySet {
	s := EssentialitySet{
		names: make(map[string]struct{}, len(names)),
		pids:  make(map[int32]struct{}, len(pids)),
	}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	for _, p := range pids {
		s.pids[p] = struct{}{}
	}
	return s
}

// DefaultSet returns the built-in protection list.
func DefaultSet() EssentialitySet {
	return NewEssentialitySet(DefaultNames, DefaultPids)
}

// ContainsName reports whether name is protected. Matching is case-sensitive.
func (s EssentialitySet) ContainsName(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s EssentialitySet) ContainsPid(pid int32) bool {
	_, ok := s.pids[pid]
	return ok
}

// Classifier decides whether a process may be terminated. It holds no state
// besides the set it was built with, so classification is deterministic.
type Classifier struct {
	set EssentialitySet
}

func NewClassifier(set EssentialitySet) *Classifier {
	return &Classifier{set: set}
}

// Classify returns the verdict for a (pid, name) pair. Membership in either
// allow-list makes the process essential.
func (c *Classifier) Classify(pid int32, name string) Verdict {
	if c.set.ContainsPid(pid) || c.set.ContainsName(name) {
		return Essential
	}
	return NonEssential
}
