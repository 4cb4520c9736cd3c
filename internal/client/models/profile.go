// Package models defines the client-side records mirrored from the backend.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date without time of day, serialized as "2006-01-02".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	// timestamps such as "2024-01-01T00:00:00+00:00" are accepted too
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Profile is the per-user record from the profiles table. Counters and tiers
// are authoritative server-side; the client only displays them.
type Profile struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	Balance          decimal.Decimal `json:"balance"`
	AdsWatched       int64           `json:"ads_watched"`
	AdsWatchedToday  int64           `json:"ads_watched_today"`
	LastAdResetDate  *Date           `json:"last_ad_reset_date"`
	VIPLevel         int             `json:"vip_level"`
	MiningUnlocked   bool            `json:"mining_unlocked"`
	MiningDeposit    decimal.Decimal `json:"mining_deposit"`
	LastMiningSpin   *time.Time      `json:"last_mining_spin"`
	DepositDate      *time.Time      `json:"deposit_date"`
	ReferralCode     string          `json:"referral_code"`
	ReferralEarnings decimal.Decimal `json:"referral_earnings"`
	ReferredBy       *string         `json:"referred_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Clone returns a deep copy so snapshots handed to views never alias the
// controller's own value.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.LastAdResetDate != nil {
		d := *p.LastAdResetDate
		c.LastAdResetDate = &d
	}
	if p.LastMiningSpin != nil {
		t := *p.LastMiningSpin
		c.LastMiningSpin = &t
	}
	if p.DepositDate != nil {
		t := *p.DepositDate
		c.DepositDate = &t
	}
	if p.ReferredBy != nil {
		s := *p.ReferredBy
		c.ReferredBy = &s
	}
	return &c
}

// DecodeProfile unmarshals a profile row. Empty bodies and JSON null decode
// to nil without error.
func DecodeProfile(b []byte) (*Profile, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}
	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}
