package config

import (
	"fmt"
	"strings"
)

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "warning": true, "error": true,
}

// relaxOptional resets settings that only tune the process's own behaviour
// when they hold unusable values, so a typo there never costs a check cycle.
func relaxOptional(cfg *Config) []string {
	var warns []string
	lvl := strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	switch {
	case lvl == "":
		cfg.Logging.Level = "info"
	case !logLevels[lvl]:
		warns = append(warns, fmt.Sprintf("logging.level %q is not a known level; using info", cfg.Logging.Level))
		cfg.Logging.Level = "info"
	default:
		cfg.Logging.Level = lvl
	}
	return warns
}
