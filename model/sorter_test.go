package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRecordsByMemoryDescending(t *testing.T) {
	records := []ProcessRecord{
		{Pid: 1001, Name: "Finder", MemoryMB: 120.0},
		{Pid: 1002, Name: "sample", MemoryMB: 30.0},
		{Pid: 1003, Name: "kernel_task", MemoryMB: 500.0},
	}

	SortRecords(records)

	assert.Equal(t, int32(1003), records[0].Pid)
	assert.Equal(t, int32(1001), records[1].Pid)
	assert.Equal(t, int32(1002), records[2].Pid)
}

func TestSortRecordsTieBreaksByPid(t *testing.T) {
	records := []ProcessRecord{
		{Pid: 40, Name: "b", MemoryMB: 64.0},
		{Pid: 10, Name: "a", MemoryMB: 64.0},
		{Pid: 30, Name: "d", MemoryMB: 64.0},
		{Pid: 20, Name: "c", MemoryMB: 128.0},
	}

	SortRecords(records)

	pids := []int32{records[0].Pid, records[1].Pid, records[2].Pid, records[3].Pid}
	assert.Equal(t, []int32{20, 10, 30, 40}, pids)
}

func TestSortRecordsIdempotent(t *testing.T) {
	records := []ProcessRecord{
		{Pid: 5, MemoryMB: 10.0},
		{Pid: 3, MemoryMB: 10.0},
		{Pid: 9, MemoryMB: 250.5},
		{Pid: 1, MemoryMB: 0.0},
		{Pid: 7, MemoryMB: 10.0},
	}

	SortRecords(records)
	once := make([]ProcessRecord, len(records))
	copy(once, records)

	SortRecords(records)
	assert.Equal(t, once, records)
}

func TestSortRecordsEmptyAndSingle(t *testing.T) {
	SortRecords(nil)

	one := []ProcessRecord{{Pid: 42, MemoryMB: 1.0}}
	SortRecords(one)
	assert.Equal(t, int32(42), one[0].Pid)
}
