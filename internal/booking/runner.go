package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/gym-scheduler/internal/config"
)

// Runner drives one booking run: for every class scheduled today and every
// user interested in it, login, fetch the catalog, match the instance whose
// booking window opens today, and attempt the reservation.
//
// Failure isolation is the load-bearing property here: nothing that goes
// wrong for one (class, user) pair may prevent any other pair from being
// processed. All failures are logged and absorbed; Run never returns an
// error to its caller.
type Runner struct {
	Service Service
	Log     *slog.Logger
}

func NewRunner(service Service, log *slog.Logger) *Runner {
	return &Runner{Service: service, Log: log}
}

// Run executes one full booking pass for now's date. It is the top-level
// safety net: a panic anywhere below is logged and swallowed so the host
// trigger always sees a clean completion.
func (r *Runner) Run(ctx context.Context, cfg config.AppConfig, now time.Time) {
	defer func() {
		if p := recover(); p != nil {
			r.Log.Error("unexpected failure during booking run", "panic", p)
		}
	}()

	selected := SelectClasses(cfg.Classes, now)
	if len(selected) == 0 {
		r.Log.Info("no classes scheduled for booking today", "weekday", now.Weekday().String())
		return
	}

	for _, class := range selected {
		r.processClass(ctx, cfg, class, now)
	}
}

func (r *Runner) processClass(ctx context.Context, cfg config.AppConfig, class config.ClassConfig, now time.Time) {
	r.Log.Info("processing class", "class", class.Name)

	for _, username := range class.UserNames {
		user, ok := cfg.User(username)
		if !ok || user.Username == "" || user.Password == "" {
			r.Log.Warn("user not configured or has empty credentials, skipping",
				"class", class.Name, "user", username)
			continue
		}
		r.bookForUser(ctx, cfg, user, class, now)
	}
}

func (r *Runner) bookForUser(ctx context.Context, cfg config.AppConfig, user config.UserConfig, class config.ClassConfig, now time.Time) {
	log := r.Log.With("class", class.Name, "user", user.Username)
	log.Info("attempting booking")

	session, err := r.Service.Login(ctx, user.Username, user.Password)
	if err != nil {
		log.Error("login failed", "error", err)
		return
	}

	from := now
	to := now.AddDate(0, 0, cfg.LookaheadDays)
	catalog, err := r.Service.SearchClasses(ctx, session.Token, cfg.FacilityID, from, to)
	if err != nil {
		// Treated as an empty catalog: matching below yields no target and
		// the pair is skipped.
		log.Error("catalog fetch failed", "error", err)
		catalog = nil
	}

	target, ok := FindTarget(catalog, class.Name, now)
	if !ok {
		log.Warn("no class instance opens for booking today")
		return
	}
	log.Info("found target class", "class_id", target.ID)

	outcome, err := r.Service.Book(ctx, session.Token, session.UserID, target.ID, target.PartitionDate)
	if err != nil {
		log.Error("booking call failed", "error", err)
		return
	}

	switch outcome.Result {
	case ResultBooked:
		log.Info("booked successfully")
	case ResultUserAlreadyBooked:
		log.Info("user already holds this reservation")
	default:
		log.Error("booking failed", "result", outcome.Result, "remote_error", outcome.ErrorMessage)
	}
}
