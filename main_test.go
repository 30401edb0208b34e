package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nabha-learn/nabha-shell/internal/config"
	"github.com/nabha-learn/nabha-shell/internal/logging"
)

func TestParseCLIFlagsPriority(t *testing.T) {
	t.Setenv("NABHA_SHELL_CONFIG", "/tmp/env.toml")

	opts, err := parseCLIFlags([]string{})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "/tmp/env.toml" {
		t.Fatalf("应优先使用环境变量，得到 %s", opts.configPath)
	}

	opts, err = parseCLIFlags([]string{"--config", "/tmp/flag.toml"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "/tmp/flag.toml" {
		t.Fatalf("flag 应高于环境变量，得到 %s", opts.configPath)
	}
}

func TestParseCLIFlagsDefaultPath(t *testing.T) {
	t.Setenv("NABHA_SHELL_CONFIG", "")
	opts, err := parseCLIFlags([]string{"-check-config"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "config.toml" || !opts.checkOnly {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := parseCLIFlags([]string{"--unknown"}); err == nil {
		t.Fatalf("未知参数应返回错误")
	}
}

func TestRunCheckConfigSuccess(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{configPath: configFixture(t, "valid.toml"), checkOnly: true})
	if code != 0 {
		t.Fatalf("期望退出码 0，得到 %d", code)
	}
}

func TestRunCheckConfigFailure(t *testing.T) {
	_, errOut := useBufferWriters(t)
	code := run(cliOptions{configPath: configFixture(t, "missing.toml"), checkOnly: true})
	if code == 0 {
		t.Fatalf("无效配置应返回非零退出码")
	}
	if !strings.Contains(errOut.String(), "Origin") {
		t.Fatalf("错误输出应指出缺失字段: %s", errOut.String())
	}
}

func TestRunVersionOutput(t *testing.T) {
	out, _ := useBufferWriters(t)
	code := run(cliOptions{showVersion: true})
	if code != 0 {
		t.Fatalf("version 模式应成功退出，得到 %d", code)
	}
	if !strings.Contains(out.String(), "nabha-shell") {
		t.Fatalf("version 输出应包含 nabha-shell 标识")
	}
}

// TestShellLifecycle 启动完整的服务图：安装外壳后断网，受控客户端仍能从缓存取得资源。
func TestShellLifecycle(t *testing.T) {
	var (
		mu      sync.Mutex
		fetches int
	)
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetches++
		mu.Unlock()
		_, _ = io.WriteString(w, "asset "+r.URL.Path)
	}))
	defer origin.Close()

	dir := t.TempDir()
	configPath := writeConfigFile(t, `
StoragePath = "`+filepath.Join(dir, "storage")+`"
DatabasePath = ":memory:"
SyncDelay = "1ms"

[Shell]
Origin = "`+origin.URL+`"
`)
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh, err := newShell(ctx, cfg, logging.Discard())
	if err != nil {
		t.Fatalf("初始化服务失败: %v", err)
	}
	defer sh.close()
	go sh.dispatcher.Run(ctx)

	installed, activated := sh.assets.Start(ctx)
	if !installed.Complete() || activated.Version != config.DefaultCacheVersion {
		t.Fatalf("unexpected lifecycle reports %+v %+v", installed, activated)
	}
	mu.Lock()
	afterInstall := fetches
	mu.Unlock()

	req := httptest.NewRequest(http.MethodPost, "/-/connectivity", strings.NewReader(`{"signal":"offline"}`))
	resp, err := sh.app.Test(req)
	if err != nil || resp.StatusCode != http.StatusAccepted {
		t.Fatalf("离线信号失败: %v %v", err, resp)
	}
	resp.Body.Close()

	// 信号由分发器异步处理，轮询直到生效。
	deadline := time.Now().Add(time.Second)
	for sh.gate.IsOnline() {
		if time.Now().After(deadline) {
			t.Fatalf("离线信号未生效")
		}
		time.Sleep(5 * time.Millisecond)
	}

	req = httptest.NewRequest(http.MethodGet, "/style.css", nil)
	req.Header.Set("X-Client-ID", "tab-1")
	resp, err = sh.app.Test(req)
	if err != nil {
		t.Fatalf("请求失败: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "asset /style.css" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}

	req = httptest.NewRequest(http.MethodGet, "/-/status", nil)
	resp, err = sh.app.Test(req)
	if err != nil {
		t.Fatalf("请求失败: %v", err)
	}
	var status map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("解析状态失败: %v", err)
	}
	resp.Body.Close()
	if status["online"] != false {
		t.Fatalf("状态应为离线: %v", status)
	}

	mu.Lock()
	defer mu.Unlock()
	if fetches != afterInstall {
		t.Fatalf("离线命中不应访问源站: %d -> %d", afterInstall, fetches)
	}
}
