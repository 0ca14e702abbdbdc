package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns. Inserts are idempotent so repeated startups
// with PSQL_RUN_SEED=true do not duplicate rows. Artifacts for seeded
// campaigns are synthesized lazily on the first script fetch.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	nextMonth := now.AddDate(0, 1, 0)

	demos := []struct {
		name       string
		link       string
		percentage int
		active     bool
		start      *time.Time
		end        *time.Time
	}{
		{"Spring Sale", "https://shop.example/sale?ref=spring", 50, true, nil, nil},
		{"Black Friday Teaser", "https://shop.example/black-friday", 100, true, &weekAgo, &nextMonth},
		{"Paused Promo", "https://shop.example/promo", 25, false, nil, nil},
	}

	for _, d := range demos {
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (name, tracking_link, percentage, active, start_date, end_date)
VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (name) DO NOTHING`,
			d.name, d.link, d.percentage, d.active, d.start, d.end)
		if err != nil {
			return err
		}
	}
	return nil
}
