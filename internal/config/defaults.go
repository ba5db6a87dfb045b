package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultStockURL    = "https://www.ikea.com.tr/_ws/general.aspx/CheckStoreStocks"
	DefaultProductCode = "00330982"
	DefaultStoreCode   = "253"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

	DefaultHistoryFile = "last_status.json"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Stock: StockConfig{
			URL:         DefaultStockURL,
			ProductCode: DefaultProductCode,
			StoreCode:   DefaultStoreCode,
			UserAgent:   DefaultUserAgent,
			Timeout:     "30s",
		},
		History: HistoryConfig{
			Driver: "file",
			Path:   defaultHistoryPath(),
		},
		Telegram: TelegramConfig{
			Timeout:    "10s",
			RatePerSec: 3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
		Watch: WatchConfig{
			Schedule:   "@every 15m",
			RunOnStart: true,
		},
	}
}

// defaultHistoryPath keeps the history file next to the binary so that
// scheduler-driven runs find it regardless of their working directory.
func defaultHistoryPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultHistoryFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultHistoryFile)
}
