package synth

import (
	"encoding/base64"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/google/uuid"

	"linkcast/internal/core/domain"
)

// Options controls the shape of generated artifacts. The options capture
// policy decided at deployment time; per-campaign state always comes from
// the campaign record itself.
type Options struct {
	// Obfuscate emits the script as a base64 eval shim instead of readable
	// source. LoaderStub output only makes sense when this is on.
	Obfuscate bool
	// CleanURL makes scripts strip query and fragment from the tracking
	// link before navigating.
	CleanURL bool
	// RedirectDelayMs delays script navigation by the given amount.
	RedirectDelayMs int
	// PageDelayMs delays landing-page navigation by the given amount.
	PageDelayMs int
}

// Synthesizer maps a campaign record to artifact text. It is a pure
// function of the record and its options: the produced script captures the
// policy (flag, window, percentage), never a precomputed outcome — the
// decision is drawn in the visitor's browser on every load.
type Synthesizer struct {
	opts   Options
	script *texttemplate.Template
	obfus  *texttemplate.Template
	loader *texttemplate.Template
	page   *htmltemplate.Template

	// newRevision stamps each artifact with an id for the header comment.
	// Overridable in tests for deterministic output.
	newRevision func() string
}

// New parses the artifact templates and returns a Synthesizer. Template
// parse failures are programmer errors and panic at construction.
func New(opts Options) *Synthesizer {
	funcs := texttemplate.FuncMap{"js": texttemplate.JSEscapeString}
	return &Synthesizer{
		opts:        opts,
		script:      texttemplate.Must(texttemplate.New("script").Funcs(funcs).Parse(scriptTemplateV1)),
		obfus:       texttemplate.Must(texttemplate.New("obfuscated").Parse(obfuscatedTemplateV1)),
		loader:      texttemplate.Must(texttemplate.New("loader").Parse(loaderTemplateV1)),
		page:        htmltemplate.Must(htmltemplate.New("page").Parse(pageTemplateV1)),
		newRevision: uuid.NewString,
	}
}

// Obfuscate reports whether this synthesizer emits obfuscated scripts.
func (s *Synthesizer) Obfuscate() bool { return s.opts.Obfuscate }

type scriptData struct {
	TemplateVersion int
	Slug            string
	Revision        string
	Active          bool
	Percentage      int
	StartMs         int64
	EndMs           int64
	URL             string
	DelayMs         int
	CleanURL        bool
}

// Script produces the redirect script text for a campaign. With Obfuscate
// on, the plain script is rendered first and then wrapped into the eval
// shim, so both variants carry identical decision semantics.
func (s *Synthesizer) Script(c domain.Campaign) (string, error) {
	data := scriptData{
		TemplateVersion: TemplateVersion,
		Slug:            c.Slug(),
		Revision:        s.newRevision(),
		Active:          c.Active,
		Percentage:      c.Percentage,
		URL:             c.TrackingLink,
		DelayMs:         s.opts.RedirectDelayMs,
		CleanURL:        s.opts.CleanURL,
	}
	if c.StartDate != nil {
		data.StartMs = c.StartDate.UnixMilli()
	}
	if c.EndDate != nil {
		data.EndMs = c.EndDate.UnixMilli()
	}

	var plain strings.Builder
	if err := s.script.Execute(&plain, data); err != nil {
		return "", err
	}
	if !s.opts.Obfuscate {
		return plain.String(), nil
	}

	var out strings.Builder
	err := s.obfus.Execute(&out, struct {
		TemplateVersion int
		Slug            string
		Revision        string
		Payload         string
	}{
		TemplateVersion: TemplateVersion,
		Slug:            data.Slug,
		Revision:        data.Revision,
		Payload:         base64.StdEncoding.EncodeToString([]byte(plain.String())),
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// LoaderStub produces the tiny unobfuscated stub that loads the real
// artifact from its well-known slug-addressed location.
func (s *Synthesizer) LoaderStub(slug string) (string, error) {
	var out strings.Builder
	if err := s.loader.Execute(&out, struct{ Slug string }{Slug: slug}); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Page produces the standalone landing page for a campaign. The page always
// redirects after a fixed delay; the percentage gate applies only to the
// embedded script variant.
func (s *Synthesizer) Page(c domain.Campaign) (string, error) {
	var out strings.Builder
	err := s.page.Execute(&out, struct {
		Name       string
		URL        string
		Percentage int
		DelayMs    int
	}{
		Name:       c.Name,
		URL:        c.TrackingLink,
		Percentage: c.Percentage,
		DelayMs:    s.opts.PageDelayMs,
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
