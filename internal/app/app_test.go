package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"stockwatch/internal/config"
	logx "stockwatch/pkg/logx"
)

func TestNewWiresComponents(t *testing.T) {
	var (
		mu    sync.Mutex
		texts []string
	)
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		texts = append(texts, body["text"].(string))
		mu.Unlock()
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`)
	}))
	t.Cleanup(tg.Close)

	cfg := config.Default()
	cfg.Stock.URL = endpoint(t, endpointBody)
	cfg.History.Driver = "sqlite"
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	cfg.Telegram.Token = "t"
	cfg.Telegram.ChatID = "1"
	cfg.Telegram.APIURL = tg.URL

	a, err := New(&cfg, logx.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	first := a.RunOnce(context.Background())
	require.True(t, first.FirstRun)
	second := a.RunOnce(context.Background())
	require.False(t, second.FirstRun)
	require.False(t, second.Changed)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, texts, 2)
	require.Contains(t, texts[1], "Status Changed: No")
}

func TestNewRejectsBadDurations(t *testing.T) {
	cfg := config.Default()
	cfg.Stock.Timeout = "later"
	_, err := New(&cfg, logx.Nop())
	require.ErrorContains(t, err, "stock.timeout")
}
