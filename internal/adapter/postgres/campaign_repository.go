package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkcast/internal/core/domain"
	"linkcast/internal/core/port"
)

const uniqueViolation = "23505"

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Name uniqueness relies on the unique constraint of the
// campaigns table, so concurrent creates of the same name serialize in the
// database and the loser surfaces port.ErrConflict.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, name, tracking_link, percentage, active, start_date, end_date, created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.TrackingLink,
		&c.Percentage,
		&c.Active,
		&c.StartDate,
		&c.EndDate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all campaigns ordered by id.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
}

// GetByID returns a campaign by id, or nil when absent.
func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new campaign and returns it with the assigned id and
// timestamps.
func (r *CampaignRepository) Create(ctx context.Context, fields port.CampaignFields) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
        INSERT INTO campaigns (name, tracking_link, percentage, active, start_date, end_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+campaignColumns,
		fields.Name, fields.TrackingLink, fields.Percentage, fields.Active, fields.StartDate, fields.EndDate))
	if isUniqueViolation(err) {
		return nil, port.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the mutable fields of an existing campaign.
func (r *CampaignRepository) Update(ctx context.Context, id int64, fields port.CampaignFields) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
        UPDATE campaigns
        SET name = $2, tracking_link = $3, percentage = $4, active = $5,
            start_date = $6, end_date = $7, updated_at = now()
        WHERE id = $1
        RETURNING `+campaignColumns,
		id, fields.Name, fields.TrackingLink, fields.Percentage, fields.Active, fields.StartDate, fields.EndDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, port.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SetActive updates only the activity flag.
func (r *CampaignRepository) SetActive(ctx context.Context, id int64, active bool) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
        UPDATE campaigns SET active = $2, updated_at = now()
        WHERE id = $1
        RETURNING `+campaignColumns, id, active))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a campaign and returns its name for artifact cleanup.
func (r *CampaignRepository) Delete(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `DELETE FROM campaigns WHERE id = $1 RETURNING name`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", port.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
