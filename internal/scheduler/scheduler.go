// Package scheduler fires the booking run once per day at a configured
// local wall-clock time. It replaces an external timer trigger for
// deployments that run gymsched as a long-lived process.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// RunFunc performs one booking run for the given local time.
type RunFunc func(ctx context.Context, now time.Time)

type Daily struct {
	// RunAt is the local fire time in "15:04" form. Validated upstream.
	RunAt    string
	Location *time.Location
	Run      RunFunc
	Log      *slog.Logger
}

// Start blocks, firing Run once per day until the context is cancelled.
// A run that overlaps the next fire time simply delays it; runs never
// execute concurrently.
func (d *Daily) Start(ctx context.Context) error {
	for {
		now := time.Now().In(d.Location)
		next := d.nextRun(now)
		d.Log.Info("next booking run scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case fired := <-timer.C:
			d.Run(ctx, fired.In(d.Location))
		}
	}
}

func (d *Daily) nextRun(now time.Time) time.Time {
	at, err := time.Parse("15:04", d.RunAt)
	if err != nil {
		// Settings validation guarantees the format; fall back to midnight
		// rather than spinning.
		at = time.Time{}
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
