package cli

import (
	"fmt"
	"time"
)

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// formatDate shortens a wire timestamp to its date part; anything
// unparseable is shown as-is.
func formatDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
