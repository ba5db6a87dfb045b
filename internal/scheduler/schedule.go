package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Schedule is a parsed watch.schedule value. Exactly one field is set.
type Schedule struct {
	Cron  string
	Every time.Duration
}

func (s Schedule) IsCron() bool { return s.Cron != "" }

// ParseSchedule accepts a cron expression or descriptor ("*/15 * * * *",
// "@hourly", "@every 10m") or a bare Go duration ("10m"). Durations below one
// second are rejected since cron ticks at one-second resolution.
func ParseSchedule(raw string) (Schedule, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return Schedule{}, errors.New("watch schedule is empty")
	case strings.HasPrefix(s, "@"), strings.ContainsAny(s, " \t"):
		return Schedule{Cron: s}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid schedule %q: want a cron expression or a duration such as 15m", raw)
	}
	if d < time.Second {
		return Schedule{}, fmt.Errorf("invalid schedule %q: interval must be at least 1s", raw)
	}
	return Schedule{Every: d}, nil
}

func (s Schedule) String() string {
	if s.IsCron() {
		return "cron(" + s.Cron + ")"
	}
	return "every(" + s.Every.String() + ")"
}
