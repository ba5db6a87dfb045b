package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	logx "stockwatch/pkg/logx"
)

const maxBodyBytes = 4 << 20

type Config struct {
	URL         string
	ProductCode string
	StoreCode   string
	UserAgent   string
	Timeout     time.Duration
}

// Client performs the single stock-status request. No retries.
type Client struct {
	cfg  Config
	http *http.Client
	log  logx.Logger
}

func NewClient(cfg Config, log logx.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("stock url is empty")
	}
	if strings.TrimSpace(cfg.StoreCode) == "" {
		return nil, errors.New("store code is empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, log: log}, nil
}

// Check posts the fixed payload and picks the configured store out of the
// returned list. Every failure is folded into the Result; Check never panics
// on bad input and never returns a partial Record.
func (c *Client) Check(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	res := c.check(ctx)
	res.Elapsed = time.Since(start)

	if res.OK() {
		c.log.Debug("check ok",
			logx.Int("http_status", res.HTTPStatus),
			logx.Duration("elapsed", res.Elapsed),
			logx.String("status", res.Record.Status.String()))
	} else {
		c.log.Warn("check failed",
			logx.String("outcome", res.Outcome.String()),
			logx.Int("http_status", res.HTTPStatus),
			logx.Duration("elapsed", res.Elapsed),
			logx.Err(res.Err))
	}
	return res
}

func (c *Client) check(ctx context.Context) Result {
	body, err := json.Marshal(map[string]string{"sprCode": c.cfg.ProductCode})
	if err != nil {
		return Result{Outcome: OutcomeParseError, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return Result{Outcome: OutcomeNetworkError, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	if ua := strings.TrimSpace(c.cfg.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Outcome: OutcomeNetworkError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Result{
			Outcome:    OutcomeHTTPError,
			HTTPStatus: resp.StatusCode,
			Err:        fmt.Errorf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), c.cfg.URL),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{Outcome: OutcomeNetworkError, HTTPStatus: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	rec, err := c.pick(raw)
	if err != nil {
		out := OutcomeParseError
		if errors.Is(err, ErrStoreNotFound) {
			out = OutcomeNotFound
		}
		return Result{Outcome: out, HTTPStatus: resp.StatusCode, Err: err}
	}
	return Result{Outcome: OutcomeSuccess, Record: rec, HTTPStatus: resp.StatusCode}
}

func (c *Client) pick(raw []byte) (*Record, error) {
	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if r.D == nil || r.D.Data == nil || r.D.Data.StatusList == nil {
		return nil, errors.New("decode response: missing d.Data.StatusList")
	}
	for _, st := range *r.D.Data.StatusList {
		if string(st.StoreCode) == c.cfg.StoreCode {
			return &Record{Status: st.Status, StockText: st.StockText, StoreTitle: st.StoreTitle}, nil
		}
	}
	return nil, &NotFoundError{StoreCode: c.cfg.StoreCode}
}
