package config

// Config is loaded once at startup and never mutated afterwards.
//
// All durations are Go duration strings (e.g. "500ms", "10s", "1m").
type Config struct {
	Stock    StockConfig    `json:"stock"`
	History  HistoryConfig  `json:"history"`
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`
	Watch    WatchConfig    `json:"watch"`

	// Warnings lists optional settings that were invalid and reset to their
	// defaults while loading. Callers log them once a logger exists.
	Warnings []string `json:"-"`
}

// StockConfig describes the single store/item pair being polled.
type StockConfig struct {
	URL         string `json:"url" validate:"required,url"`
	ProductCode string `json:"product_code" validate:"required"`
	StoreCode   string `json:"store_code" validate:"required"`
	UserAgent   string `json:"user_agent"`
	Timeout     string `json:"timeout" validate:"omitempty,duration"`
}

// HistoryConfig selects where the previous status is kept.
//
// Example:
//
//	"history": { "driver": "file", "path": "./last_status.json" }
type HistoryConfig struct {
	Driver      string `json:"driver" validate:"omitempty,oneof=file sqlite sqlite3"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty" validate:"omitempty,duration"` // sqlite only
}

// TelegramConfig holds the bot credentials. Token and ChatID are normally
// supplied through TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID rather than the file.
type TelegramConfig struct {
	Token      string `json:"token"`
	ChatID     string `json:"chat_id"`
	APIURL     string `json:"api_url" validate:"omitempty,url"`
	Timeout    string `json:"timeout" validate:"omitempty,duration"`
	RatePerSec int    `json:"rate_per_sec" validate:"gte=0"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled    bool   `json:"enabled"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `json:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `json:"max_age_days" validate:"gte=0"`
}

// WatchConfig controls `stockwatch watch`.
//
// Schedule accepts a cron expression ("*/15 * * * *", "@hourly", "@every 10m")
// or a Go duration of at least one second ("10m").
type WatchConfig struct {
	Schedule   string `json:"schedule"`
	Timezone   string `json:"timezone,omitempty"`
	RunOnStart bool   `json:"run_on_start"`
}
