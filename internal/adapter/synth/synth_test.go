package synth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"linkcast/internal/core/domain"
)

func testCampaign() domain.Campaign {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	return domain.Campaign{
		ID:           7,
		Name:         "Spring Sale",
		TrackingLink: "https://shop.example/sale?ref=x",
		Percentage:   50,
		Active:       true,
		StartDate:    &start,
		EndDate:      &end,
	}
}

func newTestSynthesizer(opts Options) *Synthesizer {
	s := New(opts)
	s.newRevision = func() string { return "test-rev" }
	return s
}

func TestScriptSerializesPolicy(t *testing.T) {
	s := newTestSynthesizer(Options{RedirectDelayMs: 2000})
	c := testCampaign()

	text, err := s.Script(c)
	require.NoError(t, err)

	require.Contains(t, text, "campaign=spring-sale rev=test-rev")
	require.Contains(t, text, "active: true")
	require.Contains(t, text, "percentage: 50")
	// JSEscapeString rewrites "=" to a unicode escape, so match up to the query key
	require.Contains(t, text, `url: "https://shop.example/sale?ref`)
	require.Contains(t, text, "delayMs: 2000")
	require.Contains(t, text, "cleanUrl: false")

	// window bounds serialize as epoch milliseconds
	require.Contains(t, text, fmt.Sprintf("startMs: %d", c.StartDate.UnixMilli()))
	require.Contains(t, text, fmt.Sprintf("endMs: %d", c.EndDate.UnixMilli()))
}

func TestScriptUnboundedWindow(t *testing.T) {
	s := newTestSynthesizer(Options{})
	c := testCampaign()
	c.StartDate = nil
	c.EndDate = nil

	text, err := s.Script(c)
	require.NoError(t, err)
	require.Contains(t, text, "startMs: 0")
	require.Contains(t, text, "endMs: 0")
}

func TestScriptInactive(t *testing.T) {
	s := newTestSynthesizer(Options{})
	c := testCampaign()
	c.Active = false

	text, err := s.Script(c)
	require.NoError(t, err)
	require.Contains(t, text, "active: false")
}

func TestObfuscatedScriptIsEquivalent(t *testing.T) {
	opts := Options{RedirectDelayMs: 2000}
	plainSynth := newTestSynthesizer(opts)
	opts.Obfuscate = true
	obfSynth := newTestSynthesizer(opts)

	c := testCampaign()
	plain, err := plainSynth.Script(c)
	require.NoError(t, err)

	obf, err := obfSynth.Script(c)
	require.NoError(t, err)
	require.NotContains(t, obf, c.TrackingLink, "obfuscated script leaks the tracking link in clear")
	require.Contains(t, obf, "window.atob")

	// the base64 payload decodes to exactly the plain rendition
	startMarker := `var p="`
	i := strings.Index(obf, startMarker)
	require.GreaterOrEqual(t, i, 0)
	rest := obf[i+len(startMarker):]
	payload := rest[:strings.Index(rest, `"`)]

	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	require.Equal(t, plain, string(decoded))
}

func TestLoaderStub(t *testing.T) {
	s := newTestSynthesizer(Options{Obfuscate: true})
	stub, err := s.LoaderStub("spring-sale")
	require.NoError(t, err)
	require.Contains(t, stub, `s.src="/scripts/spring-sale.js"`)
	require.NotContains(t, stub, "atob", "loader stub must stay unobfuscated")
}

func TestPage(t *testing.T) {
	s := newTestSynthesizer(Options{PageDelayMs: 3000})
	c := testCampaign()

	html, err := s.Page(c)
	require.NoError(t, err)
	require.Contains(t, html, "<title>Spring Sale</title>")
	require.Contains(t, html, "Redirect share: 50%")
	require.Contains(t, html, "}, 3000)")
	// html/template quotes the URL inside the script context
	require.Contains(t, html, "window.location.href")
}
