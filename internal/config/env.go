package config

import "strings"

const (
	EnvConfigPath  = "STOCKWATCH_CONFIG"
	EnvBotToken    = "TELEGRAM_BOT_TOKEN"
	EnvChatID      = "TELEGRAM_CHAT_ID"
	EnvHistoryPath = "STOCKWATCH_HISTORY_PATH"
	EnvLogLevel    = "STOCKWATCH_LOG_LEVEL"
)

// applyEnv overlays environment variables. Empty values are ignored so an
// exported-but-blank variable does not wipe a value from the file.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				*dst = v
			}
		}
	}
	set(EnvBotToken, &cfg.Telegram.Token)
	set(EnvChatID, &cfg.Telegram.ChatID)
	set(EnvHistoryPath, &cfg.History.Path)
	set(EnvLogLevel, &cfg.Logging.Level)
}
