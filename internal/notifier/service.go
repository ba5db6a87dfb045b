package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	logx "stockwatch/pkg/logx"
)

// Service sends reports to one chat. It is safe for concurrent use.
type Service struct {
	log     logx.Logger
	bot     *tele.Bot
	to      tele.Recipient
	limiter *rate.Limiter
}

// New builds the service. Missing credentials do not fail construction;
// the service is returned disabled and every Notify is dropped with a warning.
func New(cfg Config, log logx.Logger) (*Service, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Service{log: log}

	token := strings.TrimSpace(cfg.Token)
	chat := strings.TrimSpace(cfg.ChatID)
	if token == "" || chat == "" {
		log.Warn("telegram credentials missing; notifications disabled",
			logx.Bool("token_set", token != ""), logx.Bool("chat_set", chat != ""))
		return s, nil
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 3
	}
	apiURL := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if apiURL == "" {
		apiURL = tele.DefaultApiURL
	}

	// Offline skips the getMe handshake: we only ever call sendMessage.
	b, err := tele.NewBot(tele.Settings{
		Token:   token,
		URL:     apiURL,
		Offline: true,
		Client:  &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	s.bot = b
	s.to = recipient(chat)
	// Token bucket: burst = rate per sec, so a report and its follow-up go out together.
	s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
	return s, nil
}

func (s *Service) Enabled() bool { return s != nil && s.bot != nil }

// Send delivers text with parse_mode=HTML and returns any delivery error.
func (s *Service) Send(ctx context.Context, text string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	start := time.Now()
	msg, err := s.bot.Send(s.to, text, &tele.SendOptions{ParseMode: tele.ModeHTML})
	if err != nil {
		return err
	}
	fields := []logx.Field{logx.Duration("took", time.Since(start))}
	if msg != nil {
		fields = append(fields, logx.Int("message_id", msg.ID))
	}
	s.log.Debug("report delivered", fields...)
	return nil
}

// Notify is Send with failures logged and swallowed.
func (s *Service) Notify(ctx context.Context, text string) {
	if err := s.Send(ctx, text); err != nil {
		if errors.Is(err, ErrDisabled) {
			s.log.Warn("notification dropped (telegram not configured)", logx.Int("len", len(text)))
			return
		}
		s.log.Error("error sending telegram message", logx.Err(err))
	}
}

// chatRef is a chat id or @channel username passed through verbatim.
type chatRef string

func (c chatRef) Recipient() string { return string(c) }

func recipient(chat string) tele.Recipient {
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		return tele.ChatID(id)
	}
	return chatRef(chat)
}
