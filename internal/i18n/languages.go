// Package i18n bootstraps localization: the language list, choosing and
// applying a language, message catalogs, localized ordering and the
// language-dependent name list.
package i18n

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Language describes one selectable language. Name is written in the
// language itself and is never translated.
type Language struct {
	ID     string
	Name   string
	Locale string
}

var languages = []Language{
	{ID: "en", Name: "English", Locale: "en_US.UTF-8"},
	{ID: "de", Name: "Deutsch", Locale: "de_DE.UTF-8"},
	{ID: "es_AR", Name: "Español (Argentina)", Locale: "es_AR.UTF-8"},
	{ID: "es_ES", Name: "Español (España)", Locale: "es_ES.UTF-8"},
	{ID: "fr", Name: "Français", Locale: "fr_FR.UTF-8"},
	{ID: "hu", Name: "Magyar", Locale: "hu_HU.UTF-8"},
	{ID: "ja", Name: "日本語", Locale: "ja_JP.UTF-8"},
	{ID: "ko", Name: "한국어", Locale: "ko_KR.UTF-8"},
	{ID: "pl", Name: "Polski", Locale: "pl_PL.UTF-8"},
	{ID: "pt_BR", Name: "Português (Brasil)", Locale: "pt_BR.UTF-8"},
	{ID: "ru", Name: "Русский", Locale: "ru_RU.UTF-8"},
	{ID: "zh_CN", Name: "中文 (天朝)", Locale: "zh_CN.UTF-8"},
	{ID: "zh_TW", Name: "中文 (台灣)", Locale: "zh_TW.UTF-8"},
}

// DefaultLanguage is the fallback for unknown ids.
const DefaultLanguage = "en"

// fallbackSystemLang is returned when the system language is unusable.
const fallbackSystemLang = "en_US"

// Languages returns the selectable languages, English first.
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// Lookup returns the language with id. Unknown ids are logged and resolve
// to English.
//
// Postcondition: the result is always one of Languages().
func Lookup(id string, logger *zap.Logger) Language {
	for _, l := range languages {
		if l.ID == id {
			return l
		}
	}
	logger.Error("not a valid language", zap.String("lang", id))
	return languages[0]
}

// IsValidLanguage reports whether lang matches one of optionIDs exactly or
// starts with it ("pt_BR_x" matches "pt_BR", "en_US" matches "en").
func IsValidLanguage(lang string, optionIDs []string) bool {
	for _, id := range optionIDs {
		if id == lang || len(id) <= len(lang) && lang[:len(id)] == id {
			return true
		}
	}
	return false
}

// NormalizeSystemLang converts an OS language code ("zh-Hans-CN", "de-DE")
// to the underscore form, maps script-tagged Chinese to the regional ids,
// and falls back to en_US for anything valid rejects.
func NormalizeSystemLang(code string, valid func(string) bool) string {
	if code == "" {
		return fallbackSystemLang
	}
	code = strings.ReplaceAll(code, "-", "_")
	switch {
	case strings.HasPrefix(code, "zh_Hans"):
		return "zh_CN"
	case strings.HasPrefix(code, "zh_Hant"):
		return "zh_TW"
	}
	if !valid(code) {
		return fallbackSystemLang
	}
	return code
}

// Tag converts a language id or POSIX locale ("pt_BR", "ja_JP.UTF-8") to a
// BCP 47 tag.
func Tag(id string) (language.Tag, error) {
	if i := strings.IndexAny(id, ".@"); i >= 0 {
		id = id[:i]
	}
	return language.Parse(strings.ReplaceAll(id, "_", "-"))
}
