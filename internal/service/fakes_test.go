package service

import (
	"context"
	"sync"

	"scorehub/internal/domain"
)

// In-memory repository fakes shared by the service tests. Each one follows
// the repository contract, including (nil, nil) for absent records, and lets
// a test inject failures per method.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserProfile

	getErr        error
	createErr     error
	updateNameErr error
	onboardErr    error

	createCalls      int
	createdProfile   *domain.UserProfile
	createdEntry     *domain.LeaderboardEntry
	createdFavorites *domain.FavoritesRecord
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.UserProfile{}}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) CreateInitialRecords(_ context.Context, profile *domain.UserProfile, entry *domain.LeaderboardEntry, favorites *domain.FavoritesRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.createdProfile = profile
	f.createdEntry = entry
	f.createdFavorites = favorites
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) UpdateDisplayName(_ context.Context, userID, displayName string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateNameErr != nil {
		return nil, f.updateNameErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	profile.DisplayName = displayName
	return profile, nil
}

func (f *fakeProfileRepo) SetOnboardingComplete(_ context.Context, userID string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onboardErr != nil {
		return nil, f.onboardErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	profile.OnboardingComplete = true
	return profile, nil
}

type fakeFavoritesRepo struct {
	mu      sync.Mutex
	records map[string]*domain.FavoritesRecord

	getErr error
	setErr error
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{records: map[string]*domain.FavoritesRecord{}}
}

func (f *fakeFavoritesRepo) GetByUserID(_ context.Context, userID string) (*domain.FavoritesRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.records[userID], nil
}

func (f *fakeFavoritesRepo) SetTeam(_ context.Context, userID, teamID string, following bool) (*domain.FavoritesRecord, error) {
	return f.set(userID, teamID, following, true)
}

func (f *fakeFavoritesRepo) SetLeague(_ context.Context, userID, leagueID string, following bool) (*domain.FavoritesRecord, error) {
	return f.set(userID, leagueID, following, false)
}

func (f *fakeFavoritesRepo) set(userID, id string, following, team bool) (*domain.FavoritesRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return nil, f.setErr
	}
	record, ok := f.records[userID]
	if !ok {
		return nil, nil
	}
	target := record.Leagues
	if team {
		target = record.Teams
	}
	if following {
		target[id] = true
	} else {
		delete(target, id)
	}
	return record, nil
}

type fakeLeaderboardRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.LeaderboardEntry
	top     []*domain.LeaderboardEntry

	getErr        error
	topErr        error
	updateNameErr error

	topCalls        int
	lastTopLimit    int
	updateNameCalls int
}

func newFakeLeaderboardRepo() *fakeLeaderboardRepo {
	return &fakeLeaderboardRepo{entries: map[string]*domain.LeaderboardEntry{}}
}

func (f *fakeLeaderboardRepo) GetByUserID(_ context.Context, userID string) (*domain.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[userID], nil
}

func (f *fakeLeaderboardRepo) Top(_ context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topCalls++
	f.lastTopLimit = limit
	if f.topErr != nil {
		return nil, f.topErr
	}
	if limit > len(f.top) {
		limit = len(f.top)
	}
	return f.top[:limit], nil
}

func (f *fakeLeaderboardRepo) UpdateDisplayName(_ context.Context, userID, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateNameCalls++
	if f.updateNameErr != nil {
		return f.updateNameErr
	}
	if entry, ok := f.entries[userID]; ok {
		entry.DisplayName = displayName
	}
	return nil
}

type fakePresenceRepo struct {
	mu      sync.Mutex
	records map[string]domain.PresenceRecord

	setErr  error
	getErr  error
	nameErr error

	setCalls  int
	nameCalls int
}

func newFakePresenceRepo() *fakePresenceRepo {
	return &fakePresenceRepo{records: map[string]domain.PresenceRecord{}}
}

func (f *fakePresenceRepo) Set(_ context.Context, userID string, record domain.PresenceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.records[userID] = record
	return nil
}

func (f *fakePresenceRepo) Get(_ context.Context, userID string) (*domain.PresenceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[userID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakePresenceRepo) SetDisplayName(_ context.Context, userID, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nameCalls++
	if f.nameErr != nil {
		return f.nameErr
	}
	if record, ok := f.records[userID]; ok {
		record.DisplayName = displayName
		f.records[userID] = record
	}
	return nil
}

// fakeStash implements stash.Store with injectable failures for exercising
// the stash-is-advisory paths.
type fakeStash struct {
	mu         sync.Mutex
	selections map[string]domain.FavoriteSelection

	readErr  error
	writeErr error
	clearErr error

	clearCalls int
}

func newFakeStash() *fakeStash {
	return &fakeStash{selections: map[string]domain.FavoriteSelection{}}
}

func (f *fakeStash) Read(_ context.Context, deviceID string) (domain.FavoriteSelection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return domain.FavoriteSelection{}, f.readErr
	}
	return f.selections[deviceID], nil
}

func (f *fakeStash) Write(_ context.Context, deviceID string, sel domain.FavoriteSelection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.selections[deviceID] = sel
	return nil
}

func (f *fakeStash) Clear(_ context.Context, deviceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.selections, deviceID)
	return nil
}
