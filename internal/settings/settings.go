// Package settings loads, validates and persists learner display preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nabha-learn/nabha-shell/internal/kvstore"
)

const storageKey = "nabha-settings"

// Settings 是学习者的显示偏好。
type Settings struct {
	Theme        string `json:"theme" validate:"oneof=auto light dark"`
	TextSize     string `json:"textSize" validate:"oneof=small medium large"`
	HighContrast bool   `json:"highContrast"`
	AutoDownload bool   `json:"autoDownload"`
	Language     string `json:"language" validate:"oneof=en hi pa"`
}

// Defaults 返回首次启动时的偏好。
func Defaults(language string) Settings {
	if language == "" {
		language = "en"
	}
	return Settings{
		Theme:        "auto",
		TextSize:     "medium",
		HighContrast: false,
		AutoDownload: true,
		Language:     language,
	}
}

// ValidationError 汇总非法字段，键为 JSON 字段名。
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid settings: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate 校验枚举字段。
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	return out
}

// Repository 通过本地键值存储读写偏好。
type Repository struct {
	kv       *kvstore.Store
	defaults Settings
}

// NewRepository 构造偏好仓库。
func NewRepository(kv *kvstore.Store, defaults Settings) *Repository {
	return &Repository{kv: kv, defaults: defaults}
}

// Load 读取偏好：已保存的字段覆盖默认值；没有保存时返回默认值，解码失败时返回默认值与错误。
func (r *Repository) Load(ctx context.Context) (Settings, error) {
	current := r.defaults
	err := r.kv.GetJSON(ctx, storageKey, &current)
	switch {
	case err == nil:
		if verr := current.Validate(); verr != nil {
			return r.defaults, nil
		}
		return current, nil
	case errors.Is(err, kvstore.ErrNotFound):
		return r.defaults, nil
	default:
		return r.defaults, err
	}
}

// Save 校验并保存偏好。
func (r *Repository) Save(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return r.kv.SetJSON(ctx, storageKey, s)
}
