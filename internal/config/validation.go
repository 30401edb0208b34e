package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var supportedLanguages = map[string]struct{}{
	"en": {},
	"hi": {},
	"pa": {},
}

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError(globalField("ListenPort"), "必须在 1-65535")
	}
	if g.StoragePath == "" {
		return newFieldError(globalField("StoragePath"), "不能为空")
	}
	if g.DatabasePath == "" {
		return newFieldError(globalField("DatabasePath"), "不能为空")
	}
	if g.UpstreamTimeout.DurationValue() <= 0 {
		return newFieldError(globalField("UpstreamTimeout"), "必须大于 0")
	}
	if _, ok := supportedLanguages[g.DefaultLanguage]; !ok {
		return newFieldError(globalField("DefaultLanguage"), "仅支持 en|hi|pa")
	}

	s := c.Shell
	if err := validateOrigin(s.Origin); err != nil {
		return err
	}
	if s.CacheVersion == "" {
		return newFieldError(shellField("CacheVersion"), "不能为空")
	}
	if strings.ContainsAny(s.CacheVersion, `/\ `) || strings.HasPrefix(s.CacheVersion, ".") {
		return newFieldError(shellField("CacheVersion"), "不允许以点开头或包含路径分隔符与空格")
	}
	if s.InstallConcurrency <= 0 {
		return newFieldError(shellField("InstallConcurrency"), "必须大于 0")
	}

	return nil
}

func validateOrigin(raw string) error {
	field := shellField("Origin")
	if raw == "" {
		return newFieldError(field, "缺少源站地址")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return FieldError{Field: field, Reason: "无法解析", Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return newFieldError(field, fmt.Sprintf("仅支持 http/https，得到 %q", parsed.Scheme))
	}
	if parsed.Host == "" {
		return newFieldError(field, "缺少 Host")
	}
	return nil
}
