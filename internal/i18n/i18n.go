// Package i18n holds the portal's UI strings for English, Hindi and Punjabi,
// registered in a universal-translator so lookups share the locale tooling
// used for validation messages.
package i18n

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/hi"
	"github.com/go-playground/locales/pa"
	ut "github.com/go-playground/universal-translator"
)

// Fallback 是缺失翻译时回退的语言。
const Fallback = "en"

// Translator 按语言查找 UI 文案：目标语言 → 英文 → key 本身。
type Translator struct {
	uni *ut.UniversalTranslator
}

// New 注册全部语言的文案。
func New() (*Translator, error) {
	fallback := en.New()
	uni := ut.New(fallback, fallback, hi.New(), pa.New())
	for lang, table := range messages {
		trans, found := uni.GetTranslator(lang)
		if !found {
			return nil, fmt.Errorf("locale %s not registered", lang)
		}
		for key, text := range table {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("add %s/%s: %w", lang, key, err)
			}
		}
	}
	return &Translator{uni: uni}, nil
}

// Supported 判断语言是否受支持。
func Supported(lang string) bool {
	_, ok := messages[normalize(lang)]
	return ok
}

// Languages 返回受支持的语言列表。
func Languages() []string {
	langs := make([]string, 0, len(messages))
	for lang := range messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// T 返回 key 在 lang 下的文案。
func (t *Translator) T(lang, key string) string {
	for _, candidate := range []string{normalize(lang), Fallback} {
		if _, ok := messages[candidate]; !ok {
			continue
		}
		trans, found := t.uni.GetTranslator(candidate)
		if !found {
			continue
		}
		if text, err := trans.T(key); err == nil && text != "" {
			return text
		}
	}
	return key
}

// Table 返回某种语言的完整文案表，缺失项以英文补齐。
func (t *Translator) Table(lang string) map[string]string {
	out := make(map[string]string, len(messages[Fallback]))
	for key := range messages[Fallback] {
		out[key] = t.T(lang, key)
	}
	return out
}

// StatusLabel 返回状态指示器文案。
func (t *Translator) StatusLabel(lang string, online bool) string {
	if online {
		return t.T(lang, "online")
	}
	return t.T(lang, "offline")
}

func normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
