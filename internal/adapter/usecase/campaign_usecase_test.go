package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"linkcast/internal/adapter/artifact"
	"linkcast/internal/adapter/synth"
	"linkcast/internal/core/domain"
	"linkcast/internal/core/port"
	"linkcast/internal/core/port/mocks"
)

func newTestUseCase(t *testing.T, repo port.CampaignRepository, orphanCleanup bool) (*CampaignUseCase, *artifact.Store) {
	t.Helper()
	store, err := artifact.NewStore(t.TempDir())
	require.NoError(t, err)
	synthesizer := synth.New(synth.Options{RedirectDelayMs: 2000, PageDelayMs: 3000})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCampaignUseCase(repo, synthesizer, store, logger, orphanCleanup), store
}

func intPtr(v int) *int { return &v }

func TestCreateCampaign(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)

	stored := domain.Campaign{
		ID:           1,
		Name:         "Spring Sale",
		TrackingLink: "https://shop.example/sale?ref=x",
		Percentage:   50,
		Active:       true,
	}
	repo.EXPECT().
		Create(mock.Anything, port.CampaignFields{
			Name:         "Spring Sale",
			TrackingLink: "https://shop.example/sale?ref=x",
			Percentage:   50,
			Active:       true,
		}).
		Return(&stored, nil)

	svc, store := newTestUseCase(t, repo, true)

	rec, err := svc.CreateCampaign(context.Background(), port.CampaignInput{
		Name:         "Spring Sale",
		TrackingLink: "https://shop.example/sale?ref=x",
		Percentage:   intPtr(50),
	})
	if err != nil {
		t.Fatalf("CreateCampaign error: %v", err)
	}
	if rec.Slug != "spring-sale" {
		t.Fatalf("expected slug spring-sale, got %q", rec.Slug)
	}

	script, err := store.ReadScript("spring-sale")
	require.NoError(t, err)
	require.Contains(t, script, "percentage: 50")
	require.Contains(t, script, "active: true")

	if _, err := os.Stat(store.PagePath("spring-sale")); err != nil {
		t.Fatalf("landing page not written: %v", err)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	svc, _ := newTestUseCase(t, repo, true)

	cases := []port.CampaignInput{
		{TrackingLink: "https://x", Percentage: intPtr(10)},
		{Name: "a", Percentage: intPtr(10)},
		{Name: "a", TrackingLink: "https://x"},
		{Name: "a", TrackingLink: "https://x", Percentage: intPtr(101)},
		{Name: "a", TrackingLink: "https://x", Percentage: intPtr(-1)},
	}
	for _, in := range cases {
		_, err := svc.CreateCampaign(context.Background(), in)
		var vErr *port.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("input %+v: expected ValidationError, got %v", in, err)
		}
	}
	// the repository must never have been touched
}

func TestCreateCampaignConflict(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("port.CampaignFields")).
		Return(nil, port.ErrConflict)

	svc, store := newTestUseCase(t, repo, true)

	_, err := svc.CreateCampaign(context.Background(), port.CampaignInput{
		Name:         "Spring Sale",
		TrackingLink: "https://shop.example/sale",
		Percentage:   intPtr(50),
	})
	require.ErrorIs(t, err, port.ErrConflict)

	_, err = store.ReadScript("spring-sale")
	require.ErrorIs(t, err, artifact.ErrNotExist, "conflicting create must not produce an artifact")
}

func TestUpdateCampaignRenameCleansOrphans(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)

	old := domain.Campaign{ID: 1, Name: "Spring Sale", TrackingLink: "https://x", Percentage: 50, Active: true}
	renamed := old
	renamed.Name = "Summer Sale"

	repo.EXPECT().GetByID(mock.Anything, int64(1)).Return(&old, nil)
	repo.EXPECT().
		Update(mock.Anything, int64(1), mock.AnythingOfType("port.CampaignFields")).
		Return(&renamed, nil)

	svc, store := newTestUseCase(t, repo, true)
	require.NoError(t, store.WriteScript("spring-sale", "// stale"))
	require.NoError(t, store.WritePage("spring-sale", "<html></html>"))

	rec, err := svc.UpdateCampaign(context.Background(), 1, port.CampaignInput{
		Name:         "Summer Sale",
		TrackingLink: "https://x",
		Percentage:   intPtr(50),
	})
	require.NoError(t, err)
	require.Equal(t, "summer-sale", rec.Slug)

	_, err = store.ReadScript("spring-sale")
	require.ErrorIs(t, err, artifact.ErrNotExist, "old slug artifact should be cleaned up")

	_, err = store.ReadScript("summer-sale")
	require.NoError(t, err)
}

func TestUpdateCampaignRenameKeepsOrphansWhenDisabled(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)

	old := domain.Campaign{ID: 1, Name: "Spring Sale", TrackingLink: "https://x", Percentage: 50, Active: true}
	renamed := old
	renamed.Name = "Summer Sale"

	repo.EXPECT().GetByID(mock.Anything, int64(1)).Return(&old, nil)
	repo.EXPECT().
		Update(mock.Anything, int64(1), mock.AnythingOfType("port.CampaignFields")).
		Return(&renamed, nil)

	svc, store := newTestUseCase(t, repo, false)
	require.NoError(t, store.WriteScript("spring-sale", "// stale"))

	_, err := svc.UpdateCampaign(context.Background(), 1, port.CampaignInput{
		Name:         "Summer Sale",
		TrackingLink: "https://x",
		Percentage:   intPtr(50),
	})
	require.NoError(t, err)

	text, err := store.ReadScript("spring-sale")
	require.NoError(t, err, "orphan cleanup disabled, old artifact should remain")
	require.Equal(t, "// stale", text)
}

func TestUpdateCampaignNotFound(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().GetByID(mock.Anything, int64(42)).Return(nil, nil)

	svc, _ := newTestUseCase(t, repo, true)
	_, err := svc.UpdateCampaign(context.Background(), 42, port.CampaignInput{
		Name:         "x",
		TrackingLink: "https://x",
		Percentage:   intPtr(10),
	})
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestSetActiveRewritesArtifact(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)

	deactivated := domain.Campaign{ID: 1, Name: "Spring Sale", TrackingLink: "https://x", Percentage: 50, Active: false}
	repo.EXPECT().SetActive(mock.Anything, int64(1), false).Return(&deactivated, nil)

	svc, store := newTestUseCase(t, repo, true)
	require.NoError(t, store.WriteScript("spring-sale", "active: true"))

	rec, err := svc.SetActive(context.Background(), 1, false)
	require.NoError(t, err)
	require.False(t, rec.Active)

	script, err := store.ReadScript("spring-sale")
	require.NoError(t, err)
	require.Contains(t, script, "active: false", "artifact must reflect the new flag before the next load")
}

func TestDeleteCampaign(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().Delete(mock.Anything, int64(1)).Return("Spring Sale", nil)

	svc, store := newTestUseCase(t, repo, true)
	require.NoError(t, store.WriteScript("spring-sale", "// script"))
	require.NoError(t, store.WritePage("spring-sale", "<html></html>"))

	require.NoError(t, svc.DeleteCampaign(context.Background(), 1))

	_, err := store.ReadScript("spring-sale")
	require.ErrorIs(t, err, artifact.ErrNotExist)
	if _, err := os.Stat(store.PagePath("spring-sale")); !os.IsNotExist(err) {
		t.Fatalf("landing page still present after delete")
	}
}

func TestDeleteCampaignNotFound(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().Delete(mock.Anything, int64(9)).Return("", port.ErrNotFound)

	svc, _ := newTestUseCase(t, repo, true)
	require.ErrorIs(t, svc.DeleteCampaign(context.Background(), 9), port.ErrNotFound)
}

func TestResolveScriptRegeneratesMissingArtifact(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)

	campaigns := []domain.Campaign{
		{ID: 1, Name: "Spring Sale", TrackingLink: "https://x", Percentage: 50, Active: true},
		{ID: 2, Name: "Other", TrackingLink: "https://y", Percentage: 10, Active: true},
	}
	repo.EXPECT().List(mock.Anything).Return(campaigns, nil)

	svc, store := newTestUseCase(t, repo, true)

	text, err := svc.ResolveScript(context.Background(), "spring-sale")
	require.NoError(t, err)
	require.Contains(t, text, "percentage: 50")

	// the regenerated artifact is now on disk and served as-is
	onDisk, err := store.ReadScript("spring-sale")
	require.NoError(t, err)
	require.Equal(t, text, onDisk)
}

func TestResolveScriptPrefersDisk(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().List(mock.Anything).Return([]domain.Campaign{
		{ID: 1, Name: "Spring Sale", TrackingLink: "https://x", Percentage: 50, Active: true},
	}, nil)

	svc, store := newTestUseCase(t, repo, true)
	require.NoError(t, store.WriteScript("spring-sale", "// cached"))

	text, err := svc.ResolveScript(context.Background(), "spring-sale")
	require.NoError(t, err)
	require.Equal(t, "// cached", text)
}

func TestResolveScriptUnknownSlug(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().List(mock.Anything).Return(nil, nil)

	svc, _ := newTestUseCase(t, repo, true)
	_, err := svc.ResolveScript(context.Background(), "ghost")
	require.ErrorIs(t, err, port.ErrNotFound)
}
