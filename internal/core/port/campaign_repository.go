package port

import (
	"context"
	"errors"
	"time"

	"linkcast/internal/core/domain"
)

var (
	// ErrNotFound is returned when no campaign exists for the given id or slug.
	ErrNotFound = errors.New("campaign not found")
	// ErrConflict is returned when a campaign name is already taken.
	ErrConflict = errors.New("campaign name already exists")
)

// CampaignFields carries the mutable attributes of a campaign. It is used
// for both create and full update; the repository owns id assignment and
// timestamps.
type CampaignFields struct {
	Name         string
	TrackingLink string
	Percentage   int
	Active       bool
	StartDate    *time.Time
	EndDate      *time.Time
}

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Uniqueness of the name column is
// enforced by the storage engine; concurrent creates with the same name must
// resolve to exactly one success and one ErrConflict.
type CampaignRepository interface {
	// List returns all campaigns. Order is not significant to callers.
	List(ctx context.Context) ([]domain.Campaign, error)
	// GetByID returns a campaign by id, or nil when absent.
	GetByID(ctx context.Context, id int64) (*domain.Campaign, error)
	// Create inserts a new campaign and returns it with the assigned id and
	// timestamps. Returns ErrConflict when the name is already taken.
	Create(ctx context.Context, fields CampaignFields) (*domain.Campaign, error)
	// Update replaces the mutable fields of an existing campaign and returns
	// the updated record. Returns ErrNotFound when the id is unknown and
	// ErrConflict when the new name collides with another campaign.
	Update(ctx context.Context, id int64, fields CampaignFields) (*domain.Campaign, error)
	// SetActive updates only the activity flag and returns the updated
	// record. Returns ErrNotFound when the id is unknown.
	SetActive(ctx context.Context, id int64, active bool) (*domain.Campaign, error)
	// Delete removes a campaign and returns the deleted record's name, which
	// callers need to derive the slug for artifact cleanup. Returns
	// ErrNotFound when the id is unknown.
	Delete(ctx context.Context, id int64) (string, error)
}
