package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration returns human readable form of d, truncated to seconds.
// E.g., 3661s -> "01h 01m 01s", 90s -> "01m 30s", 500ms -> "00s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	total := uint64(d / time.Second)
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%02dm %02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%02ds", seconds)
	}
}
