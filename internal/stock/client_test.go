package stock

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	logx "stockwatch/pkg/logx"
)

const okBody = `{"d":{"Data":{"StatusList":[
	{"StoreCode":"101","Status":"10","StockText":"Out of stock","StoreTitle":"Other"},
	{"StoreCode":"253","Status":"30","StockText":"In stock","StoreTitle":"IKEA Bayrampaşa"}
]}}}`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		URL:         url,
		ProductCode: "00330982",
		StoreCode:   "253",
		UserAgent:   "test-agent/1.0",
		Timeout:     2 * time.Second,
	}, logx.Nop())
	require.NoError(t, err)
	return c
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckSendsFixedRequest(t *testing.T) {
	var (
		gotMethod string
		gotCT     string
		gotUA     string
		gotBody   map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, okBody)
	}))
	t.Cleanup(srv.Close)

	res := newTestClient(t, srv.URL).Check(context.Background())
	require.True(t, res.OK(), "err: %v", res.Err)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "application/json; charset=UTF-8", gotCT)
	require.Equal(t, "test-agent/1.0", gotUA)
	require.Equal(t, map[string]string{"sprCode": "00330982"}, gotBody)
}

func TestCheckSuccess(t *testing.T) {
	srv := serve(t, http.StatusOK, okBody)

	res := newTestClient(t, srv.URL).Check(context.Background())
	require.Equal(t, OutcomeSuccess, res.Outcome)
	require.NoError(t, res.Err)
	require.Equal(t, http.StatusOK, res.HTTPStatus)
	require.Greater(t, int64(res.Elapsed), int64(0))
	require.Equal(t, &Record{Status: "30", StockText: "In stock", StoreTitle: "IKEA Bayrampaşa"}, res.Record)
}

func TestCheckNumericCodes(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"d":{"Data":{"StatusList":[{"StoreCode":253,"Status":20,"StockText":"Low","StoreTitle":"X"}]}}}`)

	res := newTestClient(t, srv.URL).Check(context.Background())
	require.True(t, res.OK(), "err: %v", res.Err)
	require.Equal(t, Code("20"), res.Record.Status)
}

func TestCheckStoreMissing(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"d":{"Data":{"StatusList":[{"StoreCode":"101","Status":"10"}]}}}`)

	res := newTestClient(t, srv.URL).Check(context.Background())
	require.Equal(t, OutcomeNotFound, res.Outcome)
	require.Nil(t, res.Record)
	require.True(t, errors.Is(res.Err, ErrStoreNotFound))
	require.EqualError(t, res.Err, "Store 253 not found in response")
	require.Equal(t, http.StatusOK, res.HTTPStatus)
}

func TestCheckMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>maintenance</html>`},
		{name: "missing d", body: `{"x":1}`},
		{name: "missing data", body: `{"d":{}}`},
		{name: "missing status list", body: `{"d":{"Data":{}}}`},
		{name: "null status list", body: `{"d":{"Data":{"StatusList":null}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, tt.body)
			res := newTestClient(t, srv.URL).Check(context.Background())
			require.Equal(t, OutcomeParseError, res.Outcome)
			require.Error(t, res.Err)
			require.Nil(t, res.Record)
		})
	}
}

func TestCheckHTTPError(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, `oops`)

	res := newTestClient(t, srv.URL).Check(context.Background())
	require.Equal(t, OutcomeHTTPError, res.Outcome)
	require.Equal(t, http.StatusInternalServerError, res.HTTPStatus)
	require.ErrorContains(t, res.Err, "500 Internal Server Error for url:")
}

func TestCheckNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := newTestClient(t, url).Check(context.Background())
	require.Equal(t, OutcomeNetworkError, res.Outcome)
	require.Zero(t, res.HTTPStatus)
	require.Error(t, res.Err)
	require.Nil(t, res.Record)
}

func TestCodeUnmarshal(t *testing.T) {
	var v struct {
		A Code `json:"a"`
		B Code `json:"b"`
		C Code `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"30","b":7,"c":null}`), &v))
	require.Equal(t, Code("30"), v.A)
	require.Equal(t, Code("7"), v.B)
	require.Equal(t, Code(""), v.C)

	out, err := json.Marshal(Record{Status: "30"})
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"30","stock_text":"","store_title":""}`, string(out))
}
