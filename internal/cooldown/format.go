package cooldown

import "fmt"

// FormatTime renders a non-negative number of seconds as m:ss.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
