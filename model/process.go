package model

// MaxRows caps how many rows the table renders per refresh.
const MaxRows = 200

// ProcessRecord is one row of a snapshot. Records are rebuilt from scratch
// on every refresh; the PID is the only identity that carries across cycles.
type ProcessRecord struct {
	Pid       int32
	Name      string
	MemoryMB  float64
	Essential bool
}

// MemoryStats is the system-wide RAM summary shown above the table.
type MemoryStats struct {
	TotalGB     float64
	UsedGB      float64
	AvailableGB float64
}
