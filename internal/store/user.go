package store

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/mkalil/prepdash/internal/api"
	apperrors "github.com/mkalil/prepdash/internal/errors"
	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/models"
	"github.com/mkalil/prepdash/internal/storage"
)

var userPersist = persistSpec{name: storage.UserStorageKey, version: 1}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type signupInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// UserStore owns the session/auth slice: the current user, the token pair
// and the authenticated flag. It is the only store with write access to the
// raw bearer token key the gateway reads.
type UserStore struct {
	apiState
	deps     Deps
	log      *logger.Logger
	validate *validator.Validate

	user         *models.User
	authed       bool
	accessToken  string
	refreshToken string
	tokenExpiry  int64
}

// persistedUserState is the persistence projection: what survives a reload.
// lastFetched is deliberately excluded so a restart always re-verifies.
type persistedUserState struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	AccessToken     string       `json:"accessToken,omitempty"`
	RefreshToken    string       `json:"refreshTokenValue,omitempty"`
	TokenExpiry     int64        `json:"tokenExpiry,omitempty"`
}

// NewUserStore builds the store and rehydrates its persisted projection
// before first read.
func NewUserStore(deps Deps) *UserStore {
	s := &UserStore{
		deps:     deps,
		log:      logger.Default().WithPrefix("user_store"),
		validate: validator.New(),
	}

	var snap persistedUserState
	if rehydrate(context.Background(), deps.KV, userPersist, &snap) {
		s.user = snap.User
		s.authed = snap.IsAuthenticated
		s.accessToken = snap.AccessToken
		s.refreshToken = snap.RefreshToken
		s.tokenExpiry = snap.TokenExpiry
	}
	return s
}

// User returns a copy of the current user, nil when signed out.
func (s *UserStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a verified session exists.
func (s *UserStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

// AccessToken returns the current access token, empty when signed out.
func (s *UserStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// TokenExpiry returns the access token expiry as epoch millis.
func (s *UserStore) TokenExpiry() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenExpiry
}

func (s *UserStore) persistLocked(ctx context.Context) {
	persist(ctx, s.deps.KV, userPersist, persistedUserState{
		User:            s.user,
		IsAuthenticated: s.authed,
		AccessToken:     s.accessToken,
		RefreshToken:    s.refreshToken,
		TokenExpiry:     s.tokenExpiry,
	})
}

func (s *UserStore) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
	if loading {
		s.errMsg = ""
	}
}

// applyAuth installs a successful auth response: tokens in memory, the raw
// bearer token in durable storage for the gateway, and the persisted
// projection on disk.
func (s *UserStore) applyAuth(ctx context.Context, resp models.AuthResponse) {
	if err := s.deps.KV.Set(ctx, storage.TokenKey, []byte(resp.Token)); err != nil {
		s.log.Error("failed to store bearer token: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = resp.User
	s.authed = true
	s.accessToken = resp.Token
	s.refreshToken = resp.RefreshToken
	s.tokenExpiry = resp.ExpiresAt
	s.loading = false
	s.lastFetched = Timestamp()
	s.persistLocked(ctx)
}

// Login authenticates with email/password. Failure is reported through the
// error field; authentication state stays false.
func (s *UserStore) Login(ctx context.Context, email, password string) {
	if err := s.validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		s.log.Debug("login input rejected: %v", err)
		s.finishError("Please provide a valid email and a password of at least 8 characters")
		return
	}

	s.setLoading(true)

	var resp models.AuthResponse
	err := s.deps.Gateway.Post(ctx, api.EndpointLogin, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		s.log.Error("login failed: %v", err)
		s.finishError(apperrors.Message(err, "Failed to login"))
		return
	}

	s.applyAuth(ctx, resp)
	s.log.Info("user logged in: %s", email)
}

// Signup registers a new account and signs it in.
func (s *UserStore) Signup(ctx context.Context, name, email, password string) {
	if err := s.validate.Struct(signupInput{Name: name, Email: email, Password: password}); err != nil {
		s.log.Debug("signup input rejected: %v", err)
		s.finishError("Please provide a name, a valid email and a password of at least 8 characters")
		return
	}

	s.setLoading(true)

	var resp models.AuthResponse
	err := s.deps.Gateway.Post(ctx, api.EndpointRegister, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		s.log.Error("signup failed: %v", err)
		s.finishError(apperrors.Message(err, "Failed to signup"))
		return
	}

	s.applyAuth(ctx, resp)
	s.log.Info("user signed up: %s", email)
}

// Logout notifies the server on a best-effort basis, then unconditionally
// clears the bearer token and resets the store. Server errors are logged,
// never surfaced.
func (s *UserStore) Logout(ctx context.Context) {
	s.setLoading(true)

	if s.IsAuthenticated() {
		if err := s.deps.Gateway.Post(ctx, api.EndpointLogout, nil, nil); err != nil {
			s.log.Warn("logout notification failed: %v", err)
		}
	}

	if err := s.deps.KV.Delete(ctx, storage.TokenKey); err != nil {
		s.log.Error("failed to remove bearer token: %v", err)
	}
	s.Reset(ctx)
}

// CheckAuthStatus verifies the stored token server-side. The returned
// boolean lets callers branch on the outcome; any failure resets the session.
func (s *UserStore) CheckAuthStatus(ctx context.Context) bool {
	s.setLoading(true)

	var resp models.VerifyResponse
	err := s.deps.Gateway.Get(ctx, api.EndpointVerify, &resp)
	if err != nil || !resp.Authenticated {
		if err != nil {
			s.log.Debug("auth check failed: %v", err)
		}
		// Token invalid or unverifiable: clear it and start over.
		if delErr := s.deps.KV.Delete(ctx, storage.TokenKey); delErr != nil {
			s.log.Error("failed to remove bearer token: %v", delErr)
		}
		s.Reset(ctx)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = resp.User
	s.authed = true
	s.loading = false
	s.lastFetched = Timestamp()
	s.persistLocked(ctx)
	return true
}

// RefreshToken exchanges the refresh token for a new pair. Any failure
// triggers a full logout and reports false.
func (s *UserStore) RefreshToken(ctx context.Context) bool {
	s.mu.Lock()
	refresh := s.refreshToken
	s.mu.Unlock()

	if refresh == "" {
		s.log.Debug("no refresh token available")
		s.Logout(ctx)
		return false
	}

	var resp models.AuthResponse
	err := s.deps.Gateway.Post(ctx, api.EndpointRefreshToken, map[string]string{
		"refreshToken": refresh,
	}, &resp)
	if err != nil {
		s.log.Warn("token refresh failed: %v", err)
		s.Logout(ctx)
		return false
	}

	if err := s.deps.KV.Set(ctx, storage.TokenKey, []byte(resp.Token)); err != nil {
		s.log.Error("failed to store bearer token: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = resp.Token
	s.refreshToken = resp.RefreshToken
	s.tokenExpiry = resp.ExpiresAt
	s.persistLocked(ctx)
	return true
}

// FetchUser loads the profile, honoring the staleness window and the
// in-flight guard. A 401 ends the session.
func (s *UserStore) FetchUser(ctx context.Context) {
	s.mu.Lock()
	hasData := s.user != nil
	s.mu.Unlock()

	if !s.beginFetch(hasData, s.deps.staleThreshold()) {
		return
	}

	var user models.User
	err := s.deps.Gateway.Get(ctx, api.EndpointMe, &user)
	if err != nil {
		s.log.Error("fetch user failed: %v", err)
		if apperrors.IsUnauthorized(err) {
			s.Logout(ctx)
		}
		s.finishError(apperrors.Message(err, "Failed to fetch user"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.authed = true
	s.loading = false
	s.lastFetched = Timestamp()
	s.persistLocked(ctx)
}

// UpdateProfile applies the patch optimistically: the in-memory user changes
// before the network resolves. Success installs the server's authoritative
// record; failure restores the exact pre-update snapshot and surfaces the
// error.
func (s *UserStore) UpdateProfile(ctx context.Context, patch models.UserPatch) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.SetError("No user to update")
		return
	}
	pre := *s.user
	s.mu.Unlock()

	err := optimistic(pre,
		func() {
			s.mu.Lock()
			merged := patch.Apply(pre)
			s.user = &merged
			s.loading = true
			s.errMsg = ""
			s.mu.Unlock()
		},
		func() (models.User, error) {
			var confirmed models.User
			err := s.deps.Gateway.Patch(ctx, api.EndpointMe, patch, &confirmed)
			return confirmed, err
		},
		func(confirmed models.User) {
			s.mu.Lock()
			s.user = &confirmed
			s.loading = false
			s.lastFetched = Timestamp()
			s.persistLocked(ctx)
			s.mu.Unlock()
		},
		func(previous models.User) {
			s.mu.Lock()
			s.user = &previous
			s.loading = false
			s.persistLocked(ctx)
			s.mu.Unlock()
		},
	)
	if err != nil {
		s.log.Error("profile update failed, rolled back: %v", err)
		s.SetError(apperrors.Message(err, "Failed to update profile"))
	}
}

// SeedUser installs externally supplied user data without marking the
// session authenticated, used by the coordinator when server-side seed data
// exists but the token did not verify.
func (s *UserStore) SeedUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.loading = false
}

// Reset restores every field to its initial empty value and clears the
// persisted snapshot.
func (s *UserStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authed = false
	s.accessToken = ""
	s.refreshToken = ""
	s.tokenExpiry = 0
	s.loading = false
	s.errMsg = ""
	s.lastFetched = 0
	clearSnapshot(ctx, s.deps.KV, userPersist)
}
