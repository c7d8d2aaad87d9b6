package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"scorehub/internal/config"
	"scorehub/internal/container"
	"scorehub/internal/domain"
	"scorehub/internal/middleware"
	"scorehub/internal/service"
	"scorehub/pkg/logger"
)

// Func-field fakes: a test overrides just the methods the endpoint under
// test touches.

type fakeAccountService struct {
	provisionFn  func(ctx context.Context, identity *domain.Identity, deviceID string) (*domain.UserProfile, bool, error)
	profileFn    func(ctx context.Context, userID string) (*domain.UserProfile, error)
	updateNameFn func(ctx context.Context, userID, displayName string) (*domain.UserProfile, error)
	onboardFn    func(ctx context.Context, userID string) (*domain.UserProfile, error)
	presenceFn   func(ctx context.Context, userID string) (*domain.PresenceRecord, error)
}

func (f *fakeAccountService) Provision(ctx context.Context, identity *domain.Identity, deviceID string) (*domain.UserProfile, bool, error) {
	return f.provisionFn(ctx, identity, deviceID)
}

func (f *fakeAccountService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return f.profileFn(ctx, userID)
}

func (f *fakeAccountService) UpdateDisplayName(ctx context.Context, userID, displayName string) (*domain.UserProfile, error) {
	return f.updateNameFn(ctx, userID, displayName)
}

func (f *fakeAccountService) CompleteOnboarding(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return f.onboardFn(ctx, userID)
}

func (f *fakeAccountService) Presence(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	return f.presenceFn(ctx, userID)
}

type fakeFavoritesService struct {
	favoritesFn func(ctx context.Context, userID string) (*domain.FavoritesRecord, error)
	setTeamFn   func(ctx context.Context, userID, teamID string, following bool) (*domain.FavoritesRecord, error)
	setLeagueFn func(ctx context.Context, userID, leagueID string, following bool) (*domain.FavoritesRecord, error)
	stashedFn   func(ctx context.Context, deviceID string) (domain.FavoriteSelection, error)
	stashFn     func(ctx context.Context, deviceID string, sel domain.FavoriteSelection) error
}

func (f *fakeFavoritesService) Favorites(ctx context.Context, userID string) (*domain.FavoritesRecord, error) {
	return f.favoritesFn(ctx, userID)
}

func (f *fakeFavoritesService) SetTeam(ctx context.Context, userID, teamID string, following bool) (*domain.FavoritesRecord, error) {
	return f.setTeamFn(ctx, userID, teamID, following)
}

func (f *fakeFavoritesService) SetLeague(ctx context.Context, userID, leagueID string, following bool) (*domain.FavoritesRecord, error) {
	return f.setLeagueFn(ctx, userID, leagueID, following)
}

func (f *fakeFavoritesService) StashedSelection(ctx context.Context, deviceID string) (domain.FavoriteSelection, error) {
	return f.stashedFn(ctx, deviceID)
}

func (f *fakeFavoritesService) StashSelection(ctx context.Context, deviceID string, sel domain.FavoriteSelection) error {
	return f.stashFn(ctx, deviceID, sel)
}

type fakeLeaderboardService struct {
	topFn   func(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
	entryFn func(ctx context.Context, userID string) (*domain.LeaderboardEntry, error)
}

func (f *fakeLeaderboardService) Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	return f.topFn(ctx, limit)
}

func (f *fakeLeaderboardService) EntryForUser(ctx context.Context, userID string) (*domain.LeaderboardEntry, error) {
	return f.entryFn(ctx, userID)
}

type fakeSessionService struct {
	issueFn    func(ctx context.Context, profile *domain.UserProfile) (string, error)
	validateFn func(ctx context.Context, token string) (*domain.SessionClaims, error)
	revokeFn   func(ctx context.Context, jti string) error
}

func (f *fakeSessionService) Issue(ctx context.Context, profile *domain.UserProfile) (string, error) {
	return f.issueFn(ctx, profile)
}

func (f *fakeSessionService) Validate(ctx context.Context, token string) (*domain.SessionClaims, error) {
	return f.validateFn(ctx, token)
}

func (f *fakeSessionService) Revoke(ctx context.Context, jti string) error {
	return f.revokeFn(ctx, jti)
}

type fakeIdentityProvider struct {
	configured bool
	authURLFn  func(state string) string
	exchangeFn func(ctx context.Context, code string) (*domain.Identity, error)
}

func (f *fakeIdentityProvider) AuthCodeURL(state string) string {
	if f.authURLFn != nil {
		return f.authURLFn(state)
	}
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f *fakeIdentityProvider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	return f.exchangeFn(ctx, code)
}

func (f *fakeIdentityProvider) IsConfigured() bool {
	return f.configured
}

// newTestContainer builds a container around the given fakes. Any nil service
// stays nil; tests only wire what their endpoints use.
func newTestContainer(t *testing.T, services *service.Services) *container.Container {
	t.Helper()

	log, err := logger.New("error", "test")
	require.NoError(t, err)

	cfg := &config.Config{
		Environment: "test",
		FrontendURL: "https://app.example.com",
	}
	return container.New(cfg, log, nil, services)
}

// withSession returns the request with session claims attached the way the
// auth middleware would.
func withSession(r *http.Request, claims *domain.SessionClaims) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.SessionContextKey, claims)
	return r.WithContext(ctx)
}
