package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stockwatch/internal/history"
	"stockwatch/internal/report"
	"stockwatch/internal/stock"
	logx "stockwatch/pkg/logx"
)

// Fetcher performs one stock check.
type Fetcher interface {
	Check(ctx context.Context) stock.Result
}

// Notifier delivers a report. Implementations swallow delivery errors.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// Run summarizes one check cycle.
type Run struct {
	ID       string
	Started  time.Time
	Result   stock.Result
	Previous *stock.Record

	FirstRun bool
	Changed  bool
	Saved    bool

	HistoryErr error
	SaveErr    error

	// Report is the last text handed to the notifier.
	Report string
}

// Runner executes check cycles: fetch, compare, notify, persist.
// A Runner is not safe for concurrent RunOnce calls.
type Runner struct {
	fetcher  Fetcher
	store    history.Store
	notifier Notifier
	log      logx.Logger
	now      func() time.Time
}

func NewRunner(f Fetcher, st history.Store, n Notifier, log logx.Logger) *Runner {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Runner{fetcher: f, store: st, notifier: n, log: log, now: time.Now}
}

// RunOnce performs exactly one cycle. It never returns an error: every
// failure ends up in the report and in the returned Run.
func (r *Runner) RunOnce(ctx context.Context) Run {
	if ctx == nil {
		ctx = context.Background()
	}
	run := Run{ID: uuid.NewString(), Started: r.now()}
	log := r.log.With(logx.String("run_id", run.ID))

	text := report.Header(run.Started)

	run.Result = r.fetcher.Check(ctx)
	if !run.Result.OK() {
		text += report.Failure(run.Result)
		run.Report = text
		r.notifier.Notify(ctx, text)
		// the client already logged the failure
		log.Debug("cycle aborted", logx.String("outcome", run.Result.Outcome.String()))
		return run
	}

	current := *run.Result.Record
	text += report.Success(run.Result)

	prev, err := r.store.Load(ctx)
	switch {
	case err != nil:
		run.HistoryErr = err
		text += report.HistoryError(err)
		log.Warn("history unreadable; treating as no previous status", logx.Err(err))
	case prev == nil || prev.Status == "":
		// A record without a status counts as no record at all.
		run.FirstRun = true
		text += report.FirstRun()
	default:
		run.Previous = prev
		run.Changed = prev.Status != current.Status
		text += report.Changed(run.Changed)
	}

	run.Report = text
	r.notifier.Notify(ctx, text)

	if err := r.store.Save(ctx, current); err != nil {
		run.SaveErr = err
		run.Report = text + report.SaveError(err)
		r.notifier.Notify(ctx, run.Report)
		log.Error("failed to update status history", logx.Err(err))
	} else {
		run.Saved = true
	}

	log.Info("check complete",
		logx.String("status", current.Status.String()),
		logx.Bool("changed", run.Changed),
		logx.Bool("first_run", run.FirstRun),
		logx.Duration("elapsed", run.Result.Elapsed))
	return run
}
