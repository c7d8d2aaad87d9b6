package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"

	"scorehub/internal/domain"
	"scorehub/internal/metrics"
	"scorehub/internal/report"
	"scorehub/internal/repository"
	"scorehub/internal/stash"
	apperrors "scorehub/pkg/errors"
	"scorehub/pkg/logger"
)

// placeholderPrefixes maps a locale's primary subtag to the prefix used when
// an identity arrives without a display name, so "en-GB" resolves through
// "en".
var placeholderPrefixes = map[string]string{
	"en": "Fan",
	"th": "แฟนบอล",
	"es": "Aficionado",
	"pt": "Torcedor",
	"de": "Fan",
}

const defaultPlaceholderPrefix = "Fan"

// idFragmentLen is how many leading characters of the identity id go into a
// synthesized display name.
const idFragmentLen = 5

const maxDisplayNameLength = 60

const uniqueViolationCode = "23505"

// accountService owns the account lifecycle. Provisioning writes to two
// independent backends: the document store (profile, leaderboard entry,
// favorites record in one transaction) and the realtime store (presence).
type accountService struct {
	repos    *repository.Repositories
	stash    stash.Store
	reporter report.Reporter
	log      *logger.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repos *repository.Repositories, stashStore stash.Store, reporter report.Reporter, log *logger.Logger) AccountService {
	return &accountService{
		repos:    repos,
		stash:    stashStore,
		reporter: reporter,
		log:      log.WithComponent("account"),
	}
}

// Provision makes sure a signed-in identity has its account records. The
// check is the profile row: when it exists the account is considered fully
// provisioned and nothing is touched. Otherwise the initial records are
// written to both backends concurrently, after a device's stashed favorites
// (if any) have been folded into the favorites record.
func (s *accountService) Provision(ctx context.Context, identity *domain.Identity, deviceID string) (*domain.UserProfile, bool, error) {
	if identity == nil || identity.ID == "" {
		return nil, false, apperrors.NewPreconditionError("identity id is required")
	}
	if identity.Email == "" {
		return nil, false, apperrors.NewPreconditionError("identity email is required")
	}

	profilePath := fmt.Sprintf("users/%s", identity.ID)

	existing, err := s.repos.Profile.GetByUserID(ctx, identity.ID)
	if err != nil {
		s.reporter.Report(ctx, report.Event{
			Path:      profilePath,
			Operation: report.OpRead,
		})
		metrics.RecordProvision(metrics.ProvisionError)
		return nil, false, apperrors.NewInternalError("failed to check for existing profile", err)
	}
	if existing != nil {
		metrics.RecordProvision(metrics.ProvisionExists)
		s.log.WithField("user_id", identity.ID).Debug("account already provisioned")
		return existing, false, nil
	}

	displayName := strings.TrimSpace(identity.DisplayName)
	if displayName == "" {
		displayName = placeholderDisplayName(identity.Locale, identity.ID)
	}

	profile := &domain.UserProfile{
		UserID:      identity.ID,
		Email:       identity.Email,
		DisplayName: displayName,
		PhotoURL:    identity.PhotoURL,
		IsAnonymous: identity.IsAnonymous,
	}
	entry := &domain.LeaderboardEntry{
		UserID:      identity.ID,
		DisplayName: displayName,
		PhotoURL:    identity.PhotoURL,
		TotalPoints: 0,
	}
	favorites := domain.NewFavoritesRecord(identity.ID)

	s.claimStash(ctx, deviceID, favorites)

	presence := domain.PresenceRecord{
		DisplayName: displayName,
		PhotoURL:    identity.PhotoURL,
	}

	// Both backends get written concurrently and both are awaited. There is
	// no cross-store rollback; a failed branch surfaces through the reporter
	// with the payload it was trying to write.
	var g errgroup.Group

	g.Go(func() error {
		if err := s.repos.Profile.CreateInitialRecords(ctx, profile, entry, favorites); err != nil {
			s.reporter.Report(ctx, report.Event{
				Path:      profilePath,
				Operation: report.OpWrite,
				Data: map[string]interface{}{
					"profile":     profile,
					"leaderboard": entry,
					"favorites":   favorites,
				},
			})
			metrics.RecordStoreWriteFailure(metrics.StoreDocument)

			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return apperrors.NewConflictError("account was provisioned concurrently", err)
			}
			return apperrors.NewInternalError("failed to create account records", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := s.repos.Presence.Set(ctx, identity.ID, presence); err != nil {
			s.reporter.Report(ctx, report.Event{
				Path:      fmt.Sprintf("presence/%s", identity.ID),
				Operation: report.OpWrite,
				Data:      presence,
			})
			metrics.RecordStoreWriteFailure(metrics.StoreRealtime)
			return apperrors.NewInternalError("failed to write presence record", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.RecordProvision(metrics.ProvisionError)
		return nil, false, err
	}

	metrics.RecordProvision(metrics.ProvisionCreated)
	s.log.WithFields(map[string]interface{}{
		"user_id":         identity.ID,
		"stashed_teams":   len(favorites.Teams),
		"stashed_leagues": len(favorites.Leagues),
	}).Info("account provisioned")

	return profile, true, nil
}

// claimStash folds a device's pre-sign-in selection into the favorites record
// and clears the slot. The clear happens before the records persist, which
// keeps the claim one-shot even when two sign-ins race; the write-failure
// event carries the favorites payload so a lost selection stays recoverable.
func (s *accountService) claimStash(ctx context.Context, deviceID string, favorites *domain.FavoritesRecord) {
	if deviceID == "" {
		return
	}

	sel, err := s.stash.Read(ctx, deviceID)
	if err != nil {
		s.log.WithError(err).WithField("device_id", deviceID).Warn("failed to read favorites stash, provisioning without it")
		return
	}
	if sel.IsEmpty() {
		return
	}

	favorites.Merge(sel)

	if err := s.stash.Clear(ctx, deviceID); err != nil {
		s.log.WithError(err).WithField("device_id", deviceID).Warn("failed to clear favorites stash")
	}
}

// Profile retrieves the user's profile
func (s *accountService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.repos.Profile.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load user profile", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("user profile not found")
	}
	return profile, nil
}

// UpdateDisplayName renames the user everywhere the name is stored. The
// profile row is authoritative; the leaderboard and presence copies are
// mirrors whose failure must not undo a rename that already took.
func (s *accountService) UpdateDisplayName(ctx context.Context, userID, displayName string) (*domain.UserProfile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperrors.NewValidationError("display name is required", nil)
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLength {
		return nil, apperrors.NewValidationError("display name is too long", map[string]interface{}{
			"max_length": maxDisplayNameLength,
		})
	}

	profile, err := s.repos.Profile.UpdateDisplayName(ctx, userID, displayName)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update display name", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("user profile not found")
	}

	if err := s.repos.Leaderboard.UpdateDisplayName(ctx, userID, displayName); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"user_id": userID,
			"store":   "leaderboard",
		}).Warn("failed to mirror display name")
	}
	if err := s.repos.Presence.SetDisplayName(ctx, userID, displayName); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"user_id": userID,
			"store":   "presence",
		}).Warn("failed to mirror display name")
	}

	return profile, nil
}

// CompleteOnboarding marks the profile's onboarding as done
func (s *accountService) CompleteOnboarding(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.repos.Profile.SetOnboardingComplete(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to complete onboarding", err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFoundError("user profile not found")
	}
	return profile, nil
}

// Presence retrieves the user's realtime presence record
func (s *accountService) Presence(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	record, err := s.repos.Presence.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load presence record", err)
	}
	if record == nil {
		return nil, apperrors.NewNotFoundError("presence record not found")
	}
	return record, nil
}

// placeholderDisplayName builds a name for identities that arrive without
// one: a locale prefix plus the first characters of the id, enough to tell
// two fresh accounts apart.
func placeholderDisplayName(locale, id string) string {
	prefix := defaultPlaceholderPrefix
	if tag := strings.ToLower(strings.TrimSpace(locale)); tag != "" {
		if i := strings.IndexAny(tag, "-_"); i > 0 {
			tag = tag[:i]
		}
		if p, ok := placeholderPrefixes[tag]; ok {
			prefix = p
		}
	}

	fragment := id
	if len(fragment) > idFragmentLen {
		fragment = fragment[:idFragmentLen]
	}
	return prefix + " " + fragment
}
