package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_KnownKey(t *testing.T) {
	assert.Equal(t, "Balance", Translate(English, "balance"))
	assert.Equal(t, "Баланс", Translate(Russian, "balance"))
	assert.Equal(t, "الرصيد", Translate(Arabic, "balance"))
}

func TestTranslate_UnknownKeyFallsBackToKey(t *testing.T) {
	for _, l := range append(Locales(), Locale("de"), Locale("")) {
		got := Translate(l, "no_such_key")
		assert.Equal(t, "no_such_key", got, "locale %q", l)
	}
}

func TestTable_EveryLocaleDefinesEveryKey(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)

	for _, l := range Locales() {
		for _, k := range keys {
			_, ok := table[l][k]
			assert.True(t, ok, "locale %s misses key %s", l, k)
			assert.NotEmpty(t, Translate(l, k))
		}
		assert.Len(t, table[l], len(keys), "locale %s has extra keys", l)
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, RTL, Arabic.Direction())
	assert.Equal(t, LTR, English.Direction())
	assert.Equal(t, LTR, Russian.Direction())
}

func TestParseLocale(t *testing.T) {
	l, ok := ParseLocale(" RU ")
	require.True(t, ok)
	assert.Equal(t, Russian, l)

	_, ok = ParseLocale("fr")
	assert.False(t, ok)
}

func TestFromLanguageCode(t *testing.T) {
	tests := map[string]Locale{
		"ar":    Arabic,
		"ar-EG": Arabic,
		"ru":    Russian,
		"RU-ru": Russian,
		"en-US": English,
		"de":    English,
		"":      English,
	}
	for in, want := range tests {
		assert.Equal(t, want, FromLanguageCode(in), "code %q", in)
	}
}
