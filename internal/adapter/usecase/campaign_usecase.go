package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"linkcast/internal/adapter/artifact"
	"linkcast/internal/adapter/synth"
	"linkcast/internal/core/domain"
	"linkcast/internal/core/port"
)

// CampaignUseCase orchestrates campaign CRUD against the repository and
// keeps the on-disk artifacts in sync with the stored records. The two
// resources are updated non-atomically: when an artifact write fails after a
// successful store mutation, the mutation stays, the inconsistency is logged
// and the error is surfaced as *port.ArtifactError.
type CampaignUseCase struct {
	repo   port.CampaignRepository
	synth  *synth.Synthesizer
	store  *artifact.Store
	logger *slog.Logger

	// orphanCleanup removes the old slug's artifacts when a rename changes
	// the artifact key.
	orphanCleanup bool
}

// NewCampaignUseCase creates a new usecase with the provided dependencies.
func NewCampaignUseCase(repo port.CampaignRepository, s *synth.Synthesizer, store *artifact.Store, logger *slog.Logger, orphanCleanup bool) *CampaignUseCase {
	return &CampaignUseCase{
		repo:          repo,
		synth:         s,
		store:         store,
		logger:        logger,
		orphanCleanup: orphanCleanup,
	}
}

// ListCampaigns returns all campaigns with their derived slugs.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context) ([]port.CampaignRecord, error) {
	campaigns, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]port.CampaignRecord, len(campaigns))
	for i, c := range campaigns {
		records[i] = port.NewCampaignRecord(c)
	}
	return records, nil
}

// CreateCampaign validates the input, stores the campaign and writes its
// artifacts. Validation rejects the request before any mutation.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, in port.CampaignInput) (*port.CampaignRecord, error) {
	fields, err := validate(in)
	if err != nil {
		return nil, err
	}
	created, err := u.repo.Create(ctx, *fields)
	if err != nil {
		return nil, err
	}
	rec := port.NewCampaignRecord(*created)
	if err := u.writeArtifacts(*created); err != nil {
		return &rec, err
	}
	return &rec, nil
}

// UpdateCampaign replaces the mutable fields and re-synthesizes the
// artifacts under the new slug. On rename the old slug's files are removed
// when orphan cleanup is enabled; otherwise they are left behind.
func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, id int64, in port.CampaignInput) (*port.CampaignRecord, error) {
	fields, err := validate(in)
	if err != nil {
		return nil, err
	}
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, port.ErrNotFound
	}
	oldSlug := existing.Slug()

	updated, err := u.repo.Update(ctx, id, *fields)
	if err != nil {
		return nil, err
	}
	rec := port.NewCampaignRecord(*updated)

	if newSlug := updated.Slug(); newSlug != oldSlug && u.orphanCleanup {
		if err := u.store.Remove(oldSlug); err != nil {
			u.logger.Warn("orphaned artifact cleanup failed",
				slog.String("slug", oldSlug), slog.Any("error", err))
		}
	}
	if err := u.writeArtifacts(*updated); err != nil {
		return &rec, err
	}
	return &rec, nil
}

// SetActive toggles the activity flag and re-synthesizes the artifacts. The
// re-synthesis is not optional: the on-disk script encodes the flag and must
// reflect it before the next visitor load.
func (u *CampaignUseCase) SetActive(ctx context.Context, id int64, active bool) (*port.CampaignRecord, error) {
	updated, err := u.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	rec := port.NewCampaignRecord(*updated)
	if err := u.writeArtifacts(*updated); err != nil {
		return &rec, err
	}
	return &rec, nil
}

// DeleteCampaign removes the stored row and every artifact keyed by its
// slug.
func (u *CampaignUseCase) DeleteCampaign(ctx context.Context, id int64) error {
	name, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	slug := domain.Slug(name)
	if err := u.store.Remove(slug); err != nil {
		u.logger.Error("artifact removal failed after delete",
			slog.String("slug", slug), slog.Any("error", err))
		return &port.ArtifactError{Slug: slug, Err: err}
	}
	return nil
}

// ResolveScript returns the script for the campaign whose normalized name
// matches slug. The lookup uses the same normalization as slug derivation.
// The on-disk artifact is preferred; a missing file is re-synthesized and
// rewritten so the slug stays fetchable.
func (u *CampaignUseCase) ResolveScript(ctx context.Context, slug string) (string, error) {
	campaigns, err := u.repo.List(ctx)
	if err != nil {
		return "", err
	}
	var match *domain.Campaign
	for i := range campaigns {
		if campaigns[i].Slug() == slug {
			match = &campaigns[i]
			break
		}
	}
	if match == nil {
		return "", port.ErrNotFound
	}

	text, err := u.store.ReadScript(slug)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, artifact.ErrNotExist) {
		return "", err
	}

	text, err = u.synth.Script(*match)
	if err != nil {
		return "", err
	}
	if err := u.store.WriteScript(slug, text); err != nil {
		u.logger.Warn("artifact rewrite failed",
			slog.String("slug", slug), slog.Any("error", err))
	}
	return text, nil
}

// writeArtifacts synthesizes and replaces every artifact for a campaign:
// the redirect script, the landing page and, in obfuscation mode, the
// loader stub.
func (u *CampaignUseCase) writeArtifacts(c domain.Campaign) error {
	slug := c.Slug()

	script, err := u.synth.Script(c)
	if err == nil {
		err = u.store.WriteScript(slug, script)
	}
	if err == nil {
		var page string
		if page, err = u.synth.Page(c); err == nil {
			err = u.store.WritePage(slug, page)
		}
	}
	if err == nil && u.synth.Obfuscate() {
		var stub string
		if stub, err = u.synth.LoaderStub(slug); err == nil {
			err = u.store.WriteLoader(slug, stub)
		}
	}
	if err != nil {
		u.logger.Error("artifact write failed; store and disk now diverge",
			slog.String("slug", slug), slog.Any("error", err))
		return &port.ArtifactError{Slug: slug, Err: err}
	}
	return nil
}

// validate checks required fields and ranges, returning the normalized
// repository fields. Active defaults to true when omitted.
func validate(in port.CampaignInput) (*port.CampaignFields, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &port.ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(in.TrackingLink) == "" {
		return nil, &port.ValidationError{Field: "trackingLink", Reason: "required"}
	}
	if in.Percentage == nil {
		return nil, &port.ValidationError{Field: "percentage", Reason: "required"}
	}
	if *in.Percentage < 0 || *in.Percentage > 100 {
		return nil, &port.ValidationError{Field: "percentage", Reason: "must be between 0 and 100"}
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, &port.ValidationError{Field: "endDate", Reason: "must not precede startDate"}
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &port.CampaignFields{
		Name:         in.Name,
		TrackingLink: in.TrackingLink,
		Percentage:   *in.Percentage,
		Active:       active,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}, nil
}
