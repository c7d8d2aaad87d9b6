// Package auth implements the Google identity provider behind the federated
// sign-in flow.
package auth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"scorehub/internal/domain"
	"scorehub/internal/service"
	"scorehub/pkg/errors"
	"scorehub/pkg/logger"
)

// Scopes requested from Google: email and basic profile are everything the
// provisioning workflow consumes.
var googleScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// Provider implements the IdentityProvider interface against Google's OAuth2
// endpoints.
type Provider struct {
	config *oauth2.Config
	logger *logger.Logger
}

// NewProvider creates a new Google identity provider
func NewProvider(clientID, clientSecret, redirectURL string, log *logger.Logger) service.IdentityProvider {
	return &Provider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       googleScopes,
			Endpoint:     google.Endpoint,
		},
		logger: log.WithComponent("google"),
	}
}

// IsConfigured reports whether provider credentials are present
func (p *Provider) IsConfigured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

// AuthCodeURL builds the consent-page redirect target for a sign-in attempt
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades a callback code for tokens and resolves the signed-in
// identity through the userinfo API.
func (p *Provider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		p.logger.WithError(err).Error("Failed to exchange authorization code")
		return nil, errors.NewAuthenticationError("Failed to exchange authorization code")
	}

	svc, err := googleoauth.NewService(ctx, option.WithHTTPClient(p.config.Client(ctx, token)))
	if err != nil {
		p.logger.WithError(err).Error("Failed to create userinfo service")
		return nil, errors.NewInternalError("Failed to create userinfo service", err)
	}

	userinfo, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		p.logger.WithError(err).Error("Failed to fetch user info")
		return nil, errors.NewExternalError("Failed to fetch user info", err)
	}

	identity := identityFromUserinfo(userinfo)
	p.logger.WithField("user_id", identity.ID).Debug("Identity resolved")
	return identity, nil
}

// identityFromUserinfo maps Google's userinfo payload onto the identity shape
// the provisioning workflow consumes.
func identityFromUserinfo(ui *googleoauth.Userinfo) *domain.Identity {
	return &domain.Identity{
		ID:          ui.Id,
		Email:       ui.Email,
		DisplayName: ui.Name,
		PhotoURL:    ui.Picture,
		Locale:      ui.Locale,
		IsAnonymous: false,
	}
}
