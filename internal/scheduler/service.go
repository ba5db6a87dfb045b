package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	logx "stockwatch/pkg/logx"
)

type Config struct {
	Schedule   string
	Timezone   string
	RunOnStart bool
}

// Job is one check cycle. It must honor ctx cancellation.
type Job func(ctx context.Context)

type Service struct {
	cfg    Config
	spec   Schedule
	sched  cron.Schedule
	loc    *time.Location
	log    logx.Logger
	parser cron.Parser
}

func New(cfg Config, log logx.Logger) (*Service, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Service{
		cfg: cfg,
		log: log,
		// SecondOptional allows both 5-field and 6-field (with seconds) cron specs.
		parser: cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}

	spec, err := ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	s.spec = spec
	s.loc, err = loadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	if spec.IsCron() {
		s.sched, err = s.parser.Parse(spec.Cron)
		if err != nil {
			return nil, fmt.Errorf("invalid cron %q: %w", spec.Cron, err)
		}
	} else {
		s.sched = cron.Every(spec.Every)
	}
	return s, nil
}

func loadLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

func (s *Service) Schedule() Schedule { return s.spec }

// Next reports when the schedule fires after t.
func (s *Service) Next(t time.Time) time.Time { return s.sched.Next(t.In(s.loc)) }

// Run triggers job on the schedule until ctx is cancelled, then waits for a
// running job to finish. With RunOnStart the first cycle runs immediately.
func (s *Service) Run(ctx context.Context, job Job) error {
	if job == nil {
		return fmt.Errorf("scheduler: nil job")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cl := cronLogger{log: s.log}
	// One wrapped job shared by the on-start run and every tick, so the
	// skip-if-running guard covers both.
	wrapped := cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(func() {
		start := time.Now()
		job(ctx)
		s.log.Debug("cycle finished", logx.Duration("took", time.Since(start)))
	}))

	if s.cfg.RunOnStart {
		wrapped.Run()
	}
	if ctx.Err() != nil {
		return nil
	}

	c := cron.New(cron.WithParser(s.parser), cron.WithLocation(s.loc), cron.WithLogger(cl))
	id := c.Schedule(s.sched, wrapped)
	c.Start()
	s.log.Info("watch started",
		logx.String("schedule", s.spec.String()),
		logx.String("tz", s.loc.String()),
		logx.Time("next", c.Entry(id).Next))

	<-ctx.Done()

	s.log.Info("watch stopping")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

// cronLogger adapts logx to cron.Logger.
type cronLogger struct{ log logx.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(kvFields(keysAndValues), logx.Err(err))...)
}

func kvFields(kv []interface{}) []logx.Field {
	out := make([]logx.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logx.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
