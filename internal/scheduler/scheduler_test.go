package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRun(t *testing.T) {
	d := &Daily{RunAt: "08:00", Location: time.UTC}

	t.Run("later today when the fire time has not passed", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 6, 30, 0, 0, time.UTC)
		next := d.nextRun(now)
		assert.Equal(t, time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC), next)
	})

	t.Run("tomorrow when the fire time already passed", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
		next := d.nextRun(now)
		assert.Equal(t, time.Date(2026, 9, 8, 8, 0, 0, 0, time.UTC), next)
	})

	t.Run("tomorrow when now is exactly the fire time", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
		next := d.nextRun(now)
		assert.Equal(t, time.Date(2026, 9, 8, 8, 0, 0, 0, time.UTC), next)
	})

	t.Run("falls back to midnight on a malformed time", func(t *testing.T) {
		bad := &Daily{RunAt: "nonsense", Location: time.UTC}
		now := time.Date(2026, 9, 7, 1, 0, 0, 0, time.UTC)
		next := bad.nextRun(now)
		assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), next)
	})
}
