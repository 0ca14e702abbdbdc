package domain

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Spring Sale":       "spring-sale",
		"Black  Friday":     "black-friday",
		"summer":            "summer",
		"  Padded Name  ":   "padded-name",
		"Tab\tAnd\nNewline": "tab-and-newline",
	}
	for name, want := range cases {
		if got := Slug(name); got != want {
			t.Errorf("Slug(%q) = %q, want %q", name, got, want)
		}
		// derivation must be stable across repeated calls
		if got := Slug(name); got != want {
			t.Errorf("Slug(%q) second call = %q, want %q", name, got, want)
		}
	}
}

func TestShouldRedirectPercentageBoundaries(t *testing.T) {
	now := time.Now()
	never := Campaign{Name: "n", TrackingLink: "https://x", Percentage: 0, Active: true}
	always := Campaign{Name: "a", TrackingLink: "https://x", Percentage: 100, Active: true}

	for i := 0; i < 10_000; i++ {
		draw := rand.Float64() * 100
		if never.ShouldRedirect(now, draw) {
			t.Fatalf("percentage=0 redirected with draw %f", draw)
		}
		if !always.ShouldRedirect(now, draw) {
			t.Fatalf("percentage=100 did not redirect with draw %f", draw)
		}
	}
}

func TestShouldRedirectWindow(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	c := Campaign{Percentage: 100, Active: true}

	c.StartDate = &future
	if c.ShouldRedirect(now, 0) {
		t.Error("campaign with future start date redirected")
	}

	c.StartDate = nil
	c.EndDate = &past
	if c.ShouldRedirect(now, 0) {
		t.Error("campaign with past end date redirected")
	}

	c.StartDate = &past
	c.EndDate = &future
	if !c.ShouldRedirect(now, 0) {
		t.Error("campaign inside its window did not redirect")
	}
}

func TestShouldRedirectInactive(t *testing.T) {
	c := Campaign{Percentage: 100, Active: false}
	if c.ShouldRedirect(time.Now(), 0) {
		t.Error("inactive campaign redirected")
	}
}
