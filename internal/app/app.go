package app

import (
	"context"
	"fmt"

	"stockwatch/internal/config"
	"stockwatch/internal/history"
	"stockwatch/internal/notifier"
	"stockwatch/internal/stock"
	logx "stockwatch/pkg/logx"
)

// App owns the components of one configured checker.
type App struct {
	cfg *config.Config
	log logx.Logger

	client *stock.Client
	store  history.Store
	notif  *notifier.Service
	runner *Runner
}

// New wires the fetcher, history store and notifier from cfg.
func New(cfg *config.Config, log logx.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	timeouts, err := cfg.Timeouts()
	if err != nil {
		return nil, err
	}
	client, err := stock.NewClient(stock.Config{
		URL:         cfg.Stock.URL,
		ProductCode: cfg.Stock.ProductCode,
		StoreCode:   cfg.Stock.StoreCode,
		UserAgent:   cfg.Stock.UserAgent,
		Timeout:     timeouts.Stock,
	}, log.With(logx.String("comp", "stock")))
	if err != nil {
		return nil, err
	}

	notif, err := notifier.New(notifier.Config{
		Token:      cfg.Telegram.Token,
		ChatID:     cfg.Telegram.ChatID,
		APIURL:     cfg.Telegram.APIURL,
		Timeout:    timeouts.Telegram,
		RatePerSec: cfg.Telegram.RatePerSec,
	}, log.With(logx.String("comp", "notifier")))
	if err != nil {
		return nil, err
	}

	store, err := OpenHistory(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		client: client,
		store:  store,
		notif:  notif,
	}
	a.runner = NewRunner(client, store, notif, log.With(logx.String("comp", "checker")))
	return a, nil
}

// OpenHistory opens the configured history store on its own; `show` uses it
// without building the fetcher or notifier.
func OpenHistory(cfg *config.Config, log logx.Logger) (history.Store, error) {
	timeouts, err := cfg.Timeouts()
	if err != nil {
		return nil, err
	}
	return history.Open(history.Config{
		Driver:      cfg.History.Driver,
		Path:        cfg.History.Path,
		BusyTimeout: timeouts.BusyTimeout,
	}, log.With(logx.String("comp", "history")))
}

// RunOnce performs one check cycle.
func (a *App) RunOnce(ctx context.Context) Run { return a.runner.RunOnce(ctx) }

func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

// LogConfig maps the logging section onto logx.
func LogConfig(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled:    cfg.Logging.File.Enabled,
			Path:       cfg.Logging.File.Path,
			MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAgeDays: cfg.Logging.File.MaxAgeDays,
		},
	}
}
