// Package i18n is the static localization table for the three supported
// locales. Lookups are pure and total.
package i18n

import "strings"

type Locale string

const (
	Arabic  Locale = "ar"
	English Locale = "en"
	Russian Locale = "ru"

	Default = Arabic
)

// Direction is the text direction a locale renders in.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Locales lists the supported locales in display order.
func Locales() []Locale {
	return []Locale{Arabic, English, Russian}
}

// Direction reports rtl for Arabic and ltr for everything else.
func (l Locale) Direction() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

func (l Locale) Valid() bool {
	_, ok := table[l]
	return ok
}

// ParseLocale accepts exact locale codes, case-insensitively.
func ParseLocale(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// FromLanguageCode maps a host-reported language code such as "ar-EG" or
// "ru" onto a supported locale. Anything unrecognised becomes English.
func FromLanguageCode(code string) Locale {
	code = strings.ToLower(code)
	switch {
	case strings.Contains(code, "ar"):
		return Arabic
	case strings.Contains(code, "ru"):
		return Russian
	default:
		return English
	}
}

// Translate returns the string for key in locale l, or key itself when the
// locale or the key is unknown.
func Translate(l Locale, key string) string {
	if s, ok := table[l][key]; ok && s != "" {
		return s
	}
	return key
}

// Keys returns every key defined for the default locale.
func Keys() []string {
	keys := make([]string, 0, len(table[Default]))
	for k := range table[Default] {
		keys = append(keys, k)
	}
	return keys
}
