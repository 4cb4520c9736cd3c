package bridge

import (
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/adearn/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:TEST-token"

func signedInitData(t *testing.T, extra url.Values) string {
	t.Helper()
	v := url.Values{}
	v.Set("auth_date", "1700000000")
	v.Set("query_id", "AAE1")
	v.Set("user", `{"id":42,"first_name":"Ann","username":"ann","language_code":"ru"}`)
	for k, vals := range extra {
		v[k] = vals
	}
	d, err := ParseInitData(v.Encode())
	require.NoError(t, err)
	v.Set("hash", d.Sign(testBotToken))
	return v.Encode()
}

func TestParseInitData(t *testing.T) {
	raw := signedInitData(t, url.Values{"start_param": {"REF123"}})

	d, err := ParseInitData(raw)
	require.NoError(t, err)
	require.NotNil(t, d.User)
	assert.Equal(t, int64(42), d.User.ID)
	assert.Equal(t, "Ann", d.User.FirstName)
	assert.Equal(t, "ru", d.User.LanguageCode)
	assert.Equal(t, "REF123", d.StartParam)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), d.AuthDate)
	assert.NotEmpty(t, d.Hash)
}

func TestParseInitData_Errors(t *testing.T) {
	_, err := ParseInitData("   ")
	require.ErrorIs(t, err, ErrEmptyInitData)

	_, err = ParseInitData("user=%7Bnot-json")
	require.Error(t, err)

	_, err = ParseInitData("auth_date=yesterday")
	require.Error(t, err)
}

func TestDataCheckString_SortedWithoutHash(t *testing.T) {
	d, err := ParseInitData("b=2&hash=ff&a=1&c=3")
	require.NoError(t, err)
	assert.Equal(t, "a=1\nb=2\nc=3", d.DataCheckString())
}

func TestVerify(t *testing.T) {
	d, err := ParseInitData(signedInitData(t, nil))
	require.NoError(t, err)

	require.NoError(t, d.Verify(testBotToken))
	require.ErrorIs(t, d.Verify("other-token"), ErrInvalidSignature)
}

func TestVerify_TamperedPayload(t *testing.T) {
	raw := signedInitData(t, nil)
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	v.Set("start_param", "INJECTED")

	d, err := ParseInitData(v.Encode())
	require.NoError(t, err)
	require.ErrorIs(t, d.Verify(testBotToken), ErrInvalidSignature)
}

func TestVerify_MissingOrGarbageHash(t *testing.T) {
	d, err := ParseInitData("auth_date=1")
	require.NoError(t, err)
	require.ErrorIs(t, d.Verify(testBotToken), ErrMissingHash)

	d, err = ParseInitData("auth_date=1&hash=zz")
	require.NoError(t, err)
	require.ErrorIs(t, d.Verify(testBotToken), ErrInvalidSignature)
}

func TestDetect(t *testing.T) {
	log := logging.Discard()

	assert.IsType(t, Noop{}, Detect("", nil, log))
	assert.IsType(t, Noop{}, Detect("user=%7Bbroken", nil, log))

	b := Detect(signedInitData(t, nil), nil, log)
	require.IsType(t, &Telegram{}, b)
	assert.True(t, b.Available())
	assert.Equal(t, "ru", b.LanguageHint())
}

func TestNoop_NeverPanics(t *testing.T) {
	var b Bridge = Noop{}
	assert.NotPanics(t, func() {
		b.Ready()
		b.Expand()
		b.SetHeaderColor("#000")
		b.HapticImpact(ImpactLight)
		b.HapticNotification(NotifyError)
		b.HapticSelection()
		b.OpenLink("https://example.com")
	})
	_, ok := b.User()
	assert.False(t, ok)
	assert.False(t, b.Available())
	assert.Empty(t, b.StartParam())
}

func TestTelegram_ForwardsEvents(t *testing.T) {
	d, err := ParseInitData(signedInitData(t, nil))
	require.NoError(t, err)

	var got []Event
	tg := NewTelegram(d, func(e Event) { got = append(got, e) }, logging.Discard())

	tg.Ready()
	tg.SetHeaderColor("#0b0f19")
	tg.HapticImpact(ImpactMedium)
	tg.HapticNotification(NotifySuccess)
	tg.OpenLink("https://t.me/share/url?url=x")

	assert.Equal(t, []Event{
		{Kind: EventReady},
		{Kind: EventHeaderColor, Value: "#0b0f19"},
		{Kind: EventImpact, Value: "medium"},
		{Kind: EventNotification, Value: "success"},
		{Kind: EventOpenLink, Value: "https://t.me/share/url?url=x"},
	}, got)
}

func TestTelegram_SinkPanicIsContained(t *testing.T) {
	d, err := ParseInitData("auth_date=1")
	require.NoError(t, err)

	tg := NewTelegram(d, func(Event) { panic("host gone") }, logging.Discard())
	assert.NotPanics(t, func() { tg.HapticSelection() })

	_, ok := tg.User()
	assert.False(t, ok)
	assert.Empty(t, tg.LanguageHint())
}

func TestTelegram_NilSink(t *testing.T) {
	d, err := ParseInitData("auth_date=1")
	require.NoError(t, err)
	assert.NotPanics(t, func() { NewTelegram(d, nil, logging.Discard()).Expand() })
}
