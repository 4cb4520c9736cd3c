package models

import (
	"encoding/json"
	"time"
)

// RPCResult is what a remote procedure returned. Procedures that report a
// domain rejection answer {"success": false, "message": "<code>"}; Data keeps
// the raw payload for procedures that return rows.
type RPCResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"-"`
}

// ReferralUser is one row of get_my_referrals.
type ReferralUser struct {
	MaskedEmail    string    `json:"masked_email"`
	JoinedAt       time.Time `json:"joined_at"`
	FriendsInvited int       `json:"friends_invited"`
}

// BridgeUser is the identity injected by the host platform.
type BridgeUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}
