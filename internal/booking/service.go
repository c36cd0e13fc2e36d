// Package booking contains the decision-and-execution engine: selecting
// which configured classes apply to the current day, locating the catalog
// instance whose booking window opens today, and driving the per-user
// booking attempts.
package booking

import (
	"context"
	"time"
)

// LoginResult is a per-user remote session. It is scoped to a single
// (class, user) attempt and never reused across attempts.
type LoginResult struct {
	Token  string
	UserID string
}

// Class is one dated occurrence of an activity as returned by the remote
// catalog. PartitionDate is an opaque key the remote service requires on the
// booking call, not a calendar date.
type Class struct {
	ID             string
	Name           string
	PartitionDate  int
	BookingOpensOn string
}

// Service is the remote scheduling service as consumed by the runner. The
// HTTP implementation lives in the wellness package.
type Service interface {
	// Login authenticates one user. A response missing either the token or
	// the user id is an error.
	Login(ctx context.Context, username, password string) (LoginResult, error)

	// SearchClasses fetches the facility catalog over [from, to] inclusive.
	SearchClasses(ctx context.Context, token, facilityID string, from, to time.Time) ([]Class, error)

	// Book attempts to reserve one class instance. A transport failure is an
	// error; a remote rejection comes back as a non-success Outcome.
	Book(ctx context.Context, token, userID, classID string, partitionDate int) (Outcome, error)
}
