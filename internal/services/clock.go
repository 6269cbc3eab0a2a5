package services

import (
	"fmt"
	"math"
)

// FormatClock renders an accumulating hour offset as a 24-hour "HH:MM" wall-clock
// string. Offsets past midnight wrap, so 25.5 reads as "01:30". Minutes are
// truncated, not rounded.
func FormatClock(hourOffset float64) string {
	whole := math.Floor(hourOffset)

	hours := int(math.Mod(whole, 24))
	if hours < 0 {
		hours += 24
	}
	minutes := int((hourOffset - whole) * 60)

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
