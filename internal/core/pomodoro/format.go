package pomodoro

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as minutes:seconds, e.g. "1:05" or "75:00".
// Partial seconds are truncated and negative values render as "0:00".
func FormatElapsed(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	total := int(elapsed / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
