package port

import (
	"context"
	"fmt"
	"time"

	"linkcast/internal/core/domain"
)

// ValidationError reports a missing or malformed field in a campaign input.
// It is returned before any mutation takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// ArtifactError reports a filesystem failure while writing or removing a
// generated artifact. The store-level mutation it follows is not rolled
// back; callers surface the error and the two representations stay
// inconsistent until the next synthesis.
type ArtifactError struct {
	Slug string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %q: %v", e.Slug, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// CampaignInput is the request DTO for create and update. Percentage and
// Active are pointers so the usecase can distinguish absent fields from
// zero values; Active defaults to true when omitted.
type CampaignInput struct {
	Name         string     `json:"name"`
	TrackingLink string     `json:"trackingLink"`
	Percentage   *int       `json:"percentage"`
	Active       *bool      `json:"active,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

// CampaignRecord is the response DTO returned by the usecase. It extends
// the stored fields with the derived slug so clients can address the
// generated artifacts.
type CampaignRecord struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	TrackingLink string     `json:"trackingLink"`
	Percentage   int        `json:"percentage"`
	Active       bool       `json:"active"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Slug         string     `json:"slug"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NewCampaignRecord converts a domain campaign into its response shape.
func NewCampaignRecord(c domain.Campaign) CampaignRecord {
	return CampaignRecord{
		ID:           c.ID,
		Name:         c.Name,
		TrackingLink: c.TrackingLink,
		Percentage:   c.Percentage,
		Active:       c.Active,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Slug:         c.Slug(),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CampaignUseCase defines the business operations exposed by the campaign
// manager. This interface represents the primary port into the application
// domain. Mock implementations can be generated from this interface for
// testing.
type CampaignUseCase interface {
	// ListCampaigns returns all campaigns with their derived slugs.
	ListCampaigns(ctx context.Context) ([]CampaignRecord, error)

	// CreateCampaign validates the input, stores a new campaign and writes
	// its redirect script and landing page artifacts. Returns a
	// *ValidationError before any mutation when required fields are missing,
	// ErrConflict on a duplicate name, and *ArtifactError when the record
	// was stored but an artifact could not be written.
	CreateCampaign(ctx context.Context, in CampaignInput) (*CampaignRecord, error)

	// UpdateCampaign replaces the mutable fields of a campaign and
	// re-synthesizes its artifacts under the (possibly new) slug. When the
	// rename orphans the previous slug, cleanup follows the configured
	// policy.
	UpdateCampaign(ctx context.Context, id int64, in CampaignInput) (*CampaignRecord, error)

	// SetActive toggles the activity flag and re-synthesizes the artifacts
	// so the next visitor load observes the new state.
	SetActive(ctx context.Context, id int64, active bool) (*CampaignRecord, error)

	// DeleteCampaign removes the stored campaign and deletes its artifacts.
	// Returns ErrNotFound for an unknown id.
	DeleteCampaign(ctx context.Context, id int64) error

	// ResolveScript returns the script text for the campaign whose
	// normalized name matches the given slug. The on-disk artifact is served
	// when present; otherwise the script is synthesized anew and rewritten.
	// Returns ErrNotFound when no campaign matches.
	ResolveScript(ctx context.Context, slug string) (string, error)
}
