package notifier

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("notifier disabled")

// Config carries the bot credentials. It is built once at startup from the
// process environment and never mutated.
type Config struct {
	Token  string
	ChatID string
	// APIURL overrides the Bot API base URL (tests, self-hosted API servers).
	APIURL     string
	Timeout    time.Duration
	RatePerSec int
}
