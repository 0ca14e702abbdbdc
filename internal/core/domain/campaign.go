package domain

import "time"

// Campaign represents a named redirect policy: a destination tracking link,
// the fraction of visitors to redirect and an optional activity window.
// StartDate and EndDate are nil when the window is unbounded on that side.
type Campaign struct {
	ID           int64
	Name         string
	TrackingLink string
	Percentage   int
	Active       bool
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slug returns the campaign's artifact key, derived from its name.
func (c Campaign) Slug() string {
	return Slug(c.Name)
}

// ShouldRedirect evaluates the redirect decision for a single visit. The
// draw is a uniform value in [0,100). This is the reference semantics that
// generated scripts serialize: an inactive campaign never redirects, visits
// outside the date window never redirect, otherwise the draw is compared
// against the percentage.
func (c Campaign) ShouldRedirect(now time.Time, draw float64) bool {
	if !c.Active {
		return false
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	return draw < float64(c.Percentage)
}
