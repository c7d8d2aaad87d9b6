package service

import (
	"context"
	"strings"

	"scorehub/internal/domain"
	"scorehub/internal/repository"
	"scorehub/internal/stash"
	"scorehub/pkg/errors"
	"scorehub/pkg/logger"
)

// favoritesService serves the account-bound favorites record and the
// pre-sign-in device stash.
type favoritesService struct {
	repos *repository.Repositories
	stash stash.Store
	log   *logger.Logger
}

// NewFavoritesService creates a new favorites service
func NewFavoritesService(repos *repository.Repositories, stashStore stash.Store, log *logger.Logger) FavoritesService {
	return &favoritesService{
		repos: repos,
		stash: stashStore,
		log:   log.WithComponent("favorites"),
	}
}

// Favorites retrieves the user's favorites record
func (s *favoritesService) Favorites(ctx context.Context, userID string) (*domain.FavoritesRecord, error) {
	record, err := s.repos.Favorites.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load favorites", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError("favorites record not found")
	}
	return record, nil
}

// SetTeam follows or unfollows one team
func (s *favoritesService) SetTeam(ctx context.Context, userID, teamID string, following bool) (*domain.FavoritesRecord, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, errors.NewValidationError("team id is required", nil)
	}

	record, err := s.repos.Favorites.SetTeam(ctx, userID, teamID, following)
	if err != nil {
		return nil, errors.NewInternalError("failed to update team favorite", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError("favorites record not found")
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":   userID,
		"team_id":   teamID,
		"following": following,
	}).Debug("team favorite updated")

	return record, nil
}

// SetLeague follows or unfollows one league
func (s *favoritesService) SetLeague(ctx context.Context, userID, leagueID string, following bool) (*domain.FavoritesRecord, error) {
	if strings.TrimSpace(leagueID) == "" {
		return nil, errors.NewValidationError("league id is required", nil)
	}

	record, err := s.repos.Favorites.SetLeague(ctx, userID, leagueID, following)
	if err != nil {
		return nil, errors.NewInternalError("failed to update league favorite", err)
	}
	if record == nil {
		return nil, errors.NewNotFoundError("favorites record not found")
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":   userID,
		"league_id": leagueID,
		"following": following,
	}).Debug("league favorite updated")

	return record, nil
}

// StashedSelection retrieves a device's pre-sign-in selection. An absent or
// expired slot comes back as the zero selection, not an error.
func (s *favoritesService) StashedSelection(ctx context.Context, deviceID string) (domain.FavoriteSelection, error) {
	if deviceID == "" {
		return domain.FavoriteSelection{}, errors.NewValidationError("device id is required", nil)
	}

	sel, err := s.stash.Read(ctx, deviceID)
	if err != nil {
		return domain.FavoriteSelection{}, errors.NewInternalError("failed to read stashed favorites", err)
	}
	return sel, nil
}

// StashSelection overwrites a device's pre-sign-in selection. The client owns
// pre-auth state; the backend just parks whatever it sends.
func (s *favoritesService) StashSelection(ctx context.Context, deviceID string, sel domain.FavoriteSelection) error {
	if deviceID == "" {
		return errors.NewValidationError("device id is required", nil)
	}

	if err := s.stash.Write(ctx, deviceID, sel); err != nil {
		return errors.NewInternalError("failed to stash favorites", err)
	}

	s.log.WithFields(map[string]interface{}{
		"device_id": deviceID,
		"teams":     len(sel.Teams),
		"leagues":   len(sel.Leagues),
	}).Debug("favorites stashed")

	return nil
}
