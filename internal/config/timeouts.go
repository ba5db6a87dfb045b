package config

import (
	"fmt"
	"strings"
	"time"
)

// Timeouts holds the parsed duration knobs. Zero means the component picks
// its own default.
type Timeouts struct {
	Stock       time.Duration
	Telegram    time.Duration
	BusyTimeout time.Duration
}

// Timeouts parses every duration string in c. Errors name the config key.
func (c *Config) Timeouts() (Timeouts, error) {
	var out Timeouts
	for _, f := range []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"stock.timeout", c.Stock.Timeout, &out.Stock},
		{"telegram.timeout", c.Telegram.Timeout, &out.Telegram},
		{"history.busy_timeout", c.History.BusyTimeout, &out.BusyTimeout},
	} {
		d, err := parseDuration(f.raw)
		if err != nil {
			return Timeouts{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = d
	}
	return out, nil
}

// parseDuration accepts "" (zero) or a non-negative Go duration.
func parseDuration(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a duration", raw)
	}
	if d < 0 {
		return 0, fmt.Errorf("%q is negative", raw)
	}
	return d, nil
}
