package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	logx "stockwatch/pkg/logx"
)

type fakeBotAPI struct {
	mu       sync.Mutex
	paths    []string
	payloads []map[string]any
	status   int
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.payloads = append(f.payloads, body)
	status := f.status
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 && status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
		return
	}
	_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":-1001,"type":"supergroup"},"text":"ok"}}`)
}

func newFake(t *testing.T, status int) (*fakeBotAPI, string) {
	t.Helper()
	f := &fakeBotAPI{status: status}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func TestSendPostsHTMLMessage(t *testing.T) {
	f, url := newFake(t, http.StatusOK)
	svc, err := New(Config{Token: "123:abc", ChatID: "-1001", APIURL: url, Timeout: 2 * time.Second}, logx.Nop())
	require.NoError(t, err)
	require.True(t, svc.Enabled())

	require.NoError(t, svc.Send(context.Background(), "<b>hi</b>"))

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Equal(t, []string{"/bot123:abc/sendMessage"}, f.paths)
	require.Len(t, f.payloads, 1)
	require.Equal(t, "-1001", f.payloads[0]["chat_id"])
	require.Equal(t, "<b>hi</b>", f.payloads[0]["text"])
	require.Equal(t, "HTML", f.payloads[0]["parse_mode"])
}

func TestSendChannelUsername(t *testing.T) {
	f, url := newFake(t, http.StatusOK)
	svc, err := New(Config{Token: "t", ChatID: "@stock_alerts", APIURL: url}, logx.Nop())
	require.NoError(t, err)

	require.NoError(t, svc.Send(context.Background(), "x"))
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Equal(t, "@stock_alerts", f.payloads[0]["chat_id"])
}

func TestSendReportsAPIError(t *testing.T) {
	_, url := newFake(t, http.StatusBadRequest)
	svc, err := New(Config{Token: "t", ChatID: "1", APIURL: url}, logx.Nop())
	require.NoError(t, err)

	require.Error(t, svc.Send(context.Background(), "x"))
	// Notify swallows the same failure.
	svc.Notify(context.Background(), "x")
}

func TestNotifySwallowsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc, err := New(Config{Token: "t", ChatID: "1", APIURL: url, Timeout: time.Second}, logx.Nop())
	require.NoError(t, err)
	require.Error(t, svc.Send(context.Background(), "x"))
	svc.Notify(context.Background(), "x")
}

func TestDisabledWithoutCredentials(t *testing.T) {
	svc, err := New(Config{ChatID: "1"}, logx.Nop())
	require.NoError(t, err)
	require.False(t, svc.Enabled())
	require.ErrorIs(t, svc.Send(context.Background(), "x"), ErrDisabled)
	svc.Notify(context.Background(), "x")
}
