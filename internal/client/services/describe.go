package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/rewards"
)

// rejectionKeys maps backend rejection codes to translation keys. Codes not
// listed here are shown as a generic failure.
var rejectionKeys = map[string]string{
	"cooldown_active":      "cooldown_active",
	"insufficient_balance": "insufficient_balance",
	"invalid_code":         "invalid_code",
	"self_referral":        "self_referral",
	"already_referred":     "already_referred",
	"daily_limit_reached":  "daily_limit_reached",
	"mining_locked":        "mining_locked",
	"deposit_locked":       "deposit_locked",
	"invalid_amount":       "invalid_amount",
}

var errorKeys = []struct {
	err error
	key string
}{
	{ErrActionInProgress, "action_in_progress"},
	{ErrEmptyCredentials, "empty_credentials"},
	{ErrNoProfile, "profile_error"},
	{ErrDailyLimitReached, "daily_limit_reached"},
	{ErrMiningLocked, "mining_locked"},
	{ErrDepositLocked, "deposit_locked"},
	{ErrCooldownActive, "cooldown_active"},
	{ErrDepositRequired, "deposit_required"},
	{ErrInvalidCode, "invalid_code"},
	{ErrSelfReferral, "self_referral"},
	{ErrAlreadyReferred, "already_referred"},
	{rewards.ErrAmountOutOfRange, "invalid_amount"},
	{rewards.ErrInsufficientBalance, "insufficient_balance"},
	{rewards.ErrEmptyAddress, "invalid_address"},
	{rewards.ErrUnknownNetwork, "invalid_network"},
	{gateway.ErrSignupsDisabled, "signups_disabled"},
	{gateway.ErrConfirmationRequired, "confirmation_required"},
	{gateway.ErrUnauthorized, "session_expired"},
	{gateway.ErrUnavailable, "connection_error"},
	{context.DeadlineExceeded, "connection_error"},
}

// Describe turns an action or sign-in error into a message for the user.
func Describe(err error, translate func(key string) string) string {
	if err == nil {
		return ""
	}

	var rejected *gateway.DomainError
	if errors.As(err, &rejected) {
		if key, ok := rejectionKeys[rejected.Code]; ok {
			return translate(key)
		}
		return translate("error")
	}

	for _, e := range errorKeys {
		if errors.Is(err, e.err) {
			return translate(e.key)
		}
	}
	return translate("error")
}
