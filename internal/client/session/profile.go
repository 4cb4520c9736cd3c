package session

import "github.com/dmitrijs2005/adearn/internal/client/models"

// ApplyDailyReset returns a copy of p whose today's-ad counter reads zero
// when the stored reset date is before today. The backend still owns the
// real counter.
func ApplyDailyReset(p *models.Profile, today models.Date) *models.Profile {
	if p == nil {
		return nil
	}
	c := p.Clone()
	if c.LastAdResetDate != nil && c.LastAdResetDate.Before(today) {
		c.AdsWatchedToday = 0
	}
	return c
}

// keepMonotonic stops a refresh of the same profile from lowering the VIP
// tier or relocking mining in the view.
func keepMonotonic(prev, next *models.Profile) *models.Profile {
	if prev == nil || next == nil || prev.ID != next.ID {
		return next
	}
	if prev.VIPLevel > next.VIPLevel {
		next.VIPLevel = prev.VIPLevel
	}
	if prev.MiningUnlocked {
		next.MiningUnlocked = true
	}
	return next
}
