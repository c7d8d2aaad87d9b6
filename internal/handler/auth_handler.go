package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"scorehub/internal/container"
	"scorehub/internal/middleware"
	"scorehub/pkg/errors"
)

// Sign-in flow cookies. They only need to survive the round trip to the
// consent page, so they get a short lifetime and are cleared on callback.
const (
	stateCookieName  = "sh_oauth_state"
	deviceCookieName = "sh_oauth_device"
	flowCookieMaxAge = int(10 * time.Minute / time.Second)
)

// Callback error codes appended to the frontend redirect.
const (
	errCodeStateMismatch      = "state_mismatch"
	errCodeMissingCode        = "missing_code"
	errCodeExchangeFailed     = "exchange_failed"
	errCodeProvisioningFailed = "provisioning_failed"
	errCodeSessionFailed      = "session_failed"
)

// AuthHandler handles the sign-in flow and session endpoints
type AuthHandler struct {
	container *container.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *container.Container) *AuthHandler {
	return &AuthHandler{
		container: container,
	}
}

// Login handles GET /api/auth/google/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()
	provider := h.container.GetIdentityProvider()

	if !provider.IsConfigured() {
		writeError(w, log, errors.NewInternalError("Identity provider is not configured", nil))
		return
	}

	state := uuid.NewString()
	h.setFlowCookie(w, stateCookieName, state)

	if deviceID := r.URL.Query().Get("device_id"); deviceID != "" {
		h.setFlowCookie(w, deviceCookieName, deviceID)
	}

	log.Debug("Starting sign-in flow")
	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /api/auth/google/callback
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()
	ctx := r.Context()

	stateCookie, err := r.Cookie(stateCookieName)
	state := r.URL.Query().Get("state")
	deviceID := ""
	if deviceCookie, cookieErr := r.Cookie(deviceCookieName); cookieErr == nil {
		deviceID = deviceCookie.Value
	}

	// The flow cookies are single-use whatever happens next.
	h.clearFlowCookies(w)

	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		log.Warn("Sign-in state mismatch")
		h.redirectWithError(w, r, errCodeStateMismatch)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectWithError(w, r, errCodeMissingCode)
		return
	}

	identity, err := h.container.GetIdentityProvider().Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Error("Code exchange failed")
		h.redirectWithError(w, r, errCodeExchangeFailed)
		return
	}

	profile, created, err := h.container.GetAccountService().Provision(ctx, identity, deviceID)
	if err != nil {
		log.WithError(err).Error("Provisioning failed")
		h.redirectWithError(w, r, errCodeProvisioningFailed)
		return
	}

	token, err := h.container.GetSessionService().Issue(ctx, profile)
	if err != nil {
		log.WithError(err).Error("Session issue failed")
		h.redirectWithError(w, r, errCodeSessionFailed)
		return
	}

	log.WithFields(map[string]interface{}{
		"user_id": profile.UserID,
		"created": created,
	}).Info("Sign-in completed")

	query := url.Values{}
	query.Set("token", token)
	http.Redirect(w, r, h.frontendCallbackURL()+"?"+query.Encode(), http.StatusTemporaryRedirect)
}

// Session handles GET /api/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	writeSuccess(w, log, http.StatusOK, claims)
}

// SignOut handles POST /api/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	if err := h.container.GetSessionService().Revoke(r.Context(), claims.JTI); err != nil {
		writeError(w, log, err)
		return
	}

	log.WithField("user_id", claims.UserID).Info("Signed out")
	writeSuccess(w, log, http.StatusOK, map[string]string{"message": "Signed out"})
}

func (h *AuthHandler) frontendCallbackURL() string {
	return h.container.GetConfig().FrontendURL + "/auth/callback"
}

func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	query := url.Values{}
	query.Set("error", code)
	http.Redirect(w, r, h.frontendCallbackURL()+"?"+query.Encode(), http.StatusTemporaryRedirect)
}

func (h *AuthHandler) setFlowCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   flowCookieMaxAge,
		HttpOnly: true,
		Secure:   h.container.GetConfig().Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearFlowCookies(w http.ResponseWriter) {
	for _, name := range []string{stateCookieName, deviceCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
}
