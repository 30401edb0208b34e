package config

import "fmt"

// FieldError 提供字段路径与错误原因，便于 CLI 向用户反馈。Err 保存底层错误（如 URL 解析失败）。
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e FieldError) Unwrap() error { return e.Err }

func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}

// globalField / shellField 拼接配置段内的字段路径。
func globalField(name string) string { return "Global." + name }

func shellField(name string) string { return "Shell." + name }
