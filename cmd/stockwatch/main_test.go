package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockwatch/internal/config"
)

type cliTestEnv struct {
	configPath  string
	historyPath string
}

func setupCLITestEnv(t *testing.T, stockURL string) *cliTestEnv {
	t.Helper()
	for _, k := range []string{config.EnvBotToken, config.EnvChatID, config.EnvHistoryPath, config.EnvLogLevel, config.EnvConfigPath} {
		t.Setenv(k, "")
	}

	base := t.TempDir()
	env := &cliTestEnv{
		configPath:  filepath.Join(base, "config.json"),
		historyPath: filepath.Join(base, "last_status.json"),
	}
	if stockURL == "" {
		stockURL = "http://127.0.0.1:1/unused"
	}
	doc := map[string]any{
		"stock":   map[string]any{"url": stockURL, "timeout": "2s"},
		"history": map[string]any{"driver": "file", "path": env.historyPath},
		"logging": map[string]any{"level": "error", "console": true},
	}
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.configPath, b, 0o644))
	return env
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cc := newCommandContext()
	cmd := newRootCommand(cc)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file="}, args...))
	err := cmd.ExecuteContext(context.Background())
	_ = cc.close()
	return out.String(), err
}

func stockServer(t *testing.T, status string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"d":{"Data":{"StatusList":[{"StoreCode":"253","Status":"`+status+`","StockText":"Stokta var","StoreTitle":"IKEA Bayrampaşa"}]}}}`)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestVersionSkipsConfig(t *testing.T) {
	out, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.json"), "version")
	require.NoError(t, err)
	require.Equal(t, "stockwatch dev\n", out)
}

func TestRootRunsOneCycle(t *testing.T) {
	env := setupCLITestEnv(t, stockServer(t, "30"))

	_, err := runCLI(t, "--config", env.configPath)
	require.NoError(t, err)

	b, err := os.ReadFile(env.historyPath)
	require.NoError(t, err)
	require.Contains(t, string(b), `"status": "30"`)
	require.Contains(t, string(b), `"store_title": "IKEA Bayrampaşa"`)
}

func TestRootFailedCheckStillExitsZero(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, err := runCLI(t, "-c", env.configPath)
	require.NoError(t, err)

	_, statErr := os.Stat(env.historyPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestUnknownLogLevelDoesNotBlockCycle(t *testing.T) {
	env := setupCLITestEnv(t, stockServer(t, "30"))
	t.Setenv(config.EnvLogLevel, "verbose")

	_, err := runCLI(t, "-c", env.configPath)
	require.NoError(t, err)
	require.FileExists(t, env.historyPath)
}

func TestConfigFromEnvironment(t *testing.T) {
	env := setupCLITestEnv(t, stockServer(t, "10"))
	t.Setenv(config.EnvConfigPath, env.configPath)

	_, err := runCLI(t)
	require.NoError(t, err)
	require.FileExists(t, env.historyPath)
}

func TestEnvFileSuppliesOverrides(t *testing.T) {
	env := setupCLITestEnv(t, stockServer(t, "10"))
	os.Unsetenv(config.EnvHistoryPath)
	override := filepath.Join(t.TempDir(), "from-env-file.json")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(config.EnvHistoryPath+"="+override+"\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(config.EnvHistoryPath) })

	cc := newCommandContext()
	cmd := newRootCommand(cc)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--env-file", envFile, "-c", env.configPath})
	require.NoError(t, cmd.Execute())
	_ = cc.close()

	require.FileExists(t, override)
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stock":{"nope":1}}`), 0o644))

	_, err := runCLI(t, "-c", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope")
}

func TestShowEmptyHistory(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, err := runCLI(t, "-c", env.configPath, "show")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "No status recorded yet"))
}

func TestShowRendersTable(t *testing.T) {
	env := setupCLITestEnv(t, "")
	require.NoError(t, os.WriteFile(env.historyPath,
		[]byte(`{"status":"30","stock_text":"Stokta var","store_title":"IKEA Bayrampaşa"}`), 0o644))

	out, err := runCLI(t, "-c", env.configPath, "show")
	require.NoError(t, err)
	require.Contains(t, out, "╭")
	require.Contains(t, out, "IKEA Bayrampaşa")
	require.Contains(t, out, "Stokta var")
	require.Contains(t, out, "30")

	out, err = runCLI(t, "-c", env.configPath, "show", "--json")
	require.NoError(t, err)
	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	require.Equal(t, "30", rec["status"])
}

func TestWatchRejectsBadSchedule(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, err := runCLI(t, "-c", env.configPath, "watch", "--schedule", "soon")
	require.ErrorContains(t, err, "invalid schedule")
}

func TestWatchStopsOnCancel(t *testing.T) {
	env := setupCLITestEnv(t, stockServer(t, "30"))
	t.Setenv("NOTIFY_SOCKET", "")

	ctx, cancel := context.WithCancel(context.Background())
	cc := newCommandContext()
	cmd := newRootCommand(cc)
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"--env-file=", "-c", env.configPath, "watch", "--schedule", "1h"})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(env.historyPath)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	_ = cc.close()
}

func TestRenderTablePadsRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}})
	require.Contains(t, out, "only")
	require.Equal(t, "", renderTable(nil, nil))
}
