package booking

import (
	"strings"
	"time"

	"github.com/example/gym-scheduler/internal/config"
)

// SelectClasses returns the configured classes scheduled for today's
// weekday, compared case-insensitively. Configuration order is preserved so
// a run is reproducible. An empty result is normal, not an error.
func SelectClasses(classes []config.ClassConfig, today time.Time) []config.ClassConfig {
	weekday := today.Weekday().String()
	var out []config.ClassConfig
	for _, c := range classes {
		if strings.EqualFold(c.Weekday, weekday) {
			out = append(out, c)
		}
	}
	return out
}
