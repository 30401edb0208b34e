package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingFallbackToStdout(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root 用户不受目录权限限制")
	}
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("设置目录权限失败: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	logPath := filepath.Join(blocked, "sub", "nabha-shell.log")
	configPath := writeConfigFile(t, fmt.Sprintf(`
LogLevel = "info"
LogFilePath = "%s"
StoragePath = "%s"
DatabasePath = ":memory:"
ListenPort = 5000

[Shell]
Origin = "https://portal.nabha.local"
`, logPath, filepath.Join(dir, "storage")))

	out, _ := useBufferWriters(t)
	code := run(cliOptions{configPath: configPath, checkOnly: true})
	if code != 0 {
		t.Fatalf("日志 fallback 不应导致失败，得到 %d", code)
	}
	t.Log(out.String())
}

func TestCheckConfigLogsOrigin(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "nabha-shell.log")
	configPath := writeConfigFile(t, fmt.Sprintf(`
LogFilePath = "%s"
StoragePath = "%s"
DatabasePath = ":memory:"

[Shell]
Origin = "https://portal.nabha.local/"
`, logPath, filepath.Join(dir, "storage")))

	useBufferWriters(t)
	if code := run(cliOptions{configPath: configPath, checkOnly: true}); code != 0 {
		t.Fatalf("期望退出码 0，得到 %d", code)
	}
	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("读取日志失败: %v", err)
	}
	line := string(raw)
	for _, want := range []string{`"action":"check_config"`, `"origin":"https://portal.nabha.local"`, `"cache_version":"nabha-shell-v1"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("日志缺少 %s: %s", want, line)
		}
	}
}
