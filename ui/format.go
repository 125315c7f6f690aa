package ui

import "fmt"

// FormatGB renders a gigabyte value the way the RAM summary shows it.
func FormatGB(gb float64) string {
	return fmt.Sprintf("%.2f GB", gb)
}
