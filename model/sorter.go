package model

import "sort"

// SortRecords orders records by memory usage, heaviest first. Ties are broken
// by ascending PID so repeated refreshes with unchanged data never reorder
// rows on screen.
func SortRecords(records []ProcessRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.MemoryMB != b.MemoryMB {
			return a.MemoryMB > b.MemoryMB
		}
		return a.Pid < b.Pid
	})
}
