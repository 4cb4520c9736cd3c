package rewards

import (
	"net/url"
	"strings"
)

const DefaultBotUsername = "Earningcryptocurrencybot"

const sharePrefix = "Join me and earn crypto! Use my code:"

// InviteLink is the deep link that opens the bot with code as start
// parameter.
func InviteLink(bot, code string) string {
	if bot == "" {
		bot = DefaultBotUsername
	}
	return "https://t.me/" + bot + "?start=" + url.QueryEscape(code)
}

func ShareText(code string) string {
	return sharePrefix + " " + code
}

// ShareURL is the Telegram share sheet link for the invite.
func ShareURL(bot, code string) string {
	q := url.Values{}
	q.Set("url", InviteLink(bot, code))
	q.Set("text", ShareText(code))
	return "https://t.me/share/url?" + q.Encode()
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
