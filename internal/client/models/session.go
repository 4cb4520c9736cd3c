package models

import "time"

// Session mirrors the authenticated identity reported by the gateway. Token
// material stays inside the gateway; views only see who is signed in.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Same reports whether both sessions belong to the same subject.
func (s *Session) Same(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.UserID == other.UserID
}
