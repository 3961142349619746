package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
	"github.com/dmitrijs2005/bitecart/internal/common"
)

// Hydrate restores the persisted session and refreshes it from the server.
// Profile, cart, favorites and orders are requested concurrently; each branch
// tolerates its own failure so the rest still land. A 401 anywhere forces a
// logout. The loading flag flips to false when the sequence completes,
// success or not.
func (s *Store) Hydrate(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	tokenB, err := s.repo.Get(ctx, common.StorageKeyToken)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "failed to read stored token", "error", err)
		}
		return
	}
	userB, err := s.repo.Get(ctx, common.StorageKeyUser)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "failed to read stored user", "error", err)
		}
		return
	}

	var user models.User
	if err := json.Unmarshal(userB, &user); err != nil {
		s.log.Warn(ctx, "stored user snapshot is corrupt", "error", err)
		return
	}

	var last *models.LastOrder
	if b, err := s.repo.Get(ctx, common.StorageKeyLastOrder); err == nil {
		var lo models.LastOrder
		if err := json.Unmarshal(b, &lo); err == nil {
			last = &lo
		} else {
			s.log.Warn(ctx, "stored last order snapshot is corrupt", "error", err)
		}
	}

	token := string(tokenB)
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.lastOrder = last
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.refreshProfile(gctx, token)
		return nil
	})
	g.Go(func() error { s.refreshCart(gctx, token); return nil })
	g.Go(func() error { s.refreshFavorites(gctx, token); return nil })
	g.Go(func() error { s.refreshOrders(gctx, token); return nil })
	_ = g.Wait()
}

// refreshProfile re-resolves the profile and replaces the user wholesale,
// mirroring the snapshot to durable storage. Soft-fails on error.
func (s *Store) refreshProfile(ctx context.Context, token string) {
	profile, err := s.api.GetProfile(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		s.log.Warn(ctx, "profile refresh failed", "error", err)
		return
	}

	s.mu.Lock()
	same := s.token == token
	if same {
		s.user = profile
	}
	s.mu.Unlock()

	if same {
		if err := s.persistUser(ctx, profile); err != nil {
			s.log.Warn(ctx, "failed to persist user snapshot", "error", err)
		}
	}
}

// Login authenticates, resolves the full profile, persists the snapshot and
// then populates cart, favorites and orders concurrently. On any failing step
// nothing is persisted and the in-memory session is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	profile, err := s.api.GetProfile(ctx, res.Token)
	if err != nil {
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	if err := s.persistSession(ctx, res.Token, profile); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = res.Token
	s.user = profile
	s.mu.Unlock()

	s.refreshCollections(ctx, res.Token)

	s.log.Info(ctx, "logged in", "name", profile.Name, "role", string(profile.Role))
	return nil
}

// Signup registers a new account. Success triggers an out-of-band one-time
// passcode delivery and changes no session state; the caller follows up with
// VerifySignupOTP using the same email.
func (s *Store) Signup(ctx context.Context, name, email, password string) (string, error) {
	msg, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "OTP sent to your email!"
	}
	return msg, nil
}

// VerifySignupOTP completes registration. On success it behaves like Login
// but resets all derived collections, since the account is brand new, and
// drops any previously persisted last order.
func (s *Store) VerifySignupOTP(ctx context.Context, email, otp string) error {
	res, err := s.api.VerifySignupOTP(ctx, email, otp)
	if err != nil {
		return err
	}

	profile, err := s.api.GetProfile(ctx, res.Token)
	if err != nil {
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	if err := s.persistSession(ctx, res.Token, profile); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, common.StorageKeyLastOrder); err != nil {
		s.log.Warn(ctx, "failed to remove stored last order", "error", err)
	}

	s.mu.Lock()
	s.token = res.Token
	s.user = profile
	s.cart = nil
	s.favorites = nil
	s.orders = nil
	s.lastOrder = nil
	s.mu.Unlock()

	s.log.Info(ctx, "signup verified", "name", profile.Name)
	return nil
}

// Logout clears all durable keys and all in-memory session fields. It never
// talks to the server.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	s.clearDurable(ctx)
	s.log.Info(ctx, "logged out")
}

// ForgotPassword requests a password-reset passcode for the given email.
func (s *Store) ForgotPassword(ctx context.Context, email string) (string, error) {
	msg, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "OTP sent to your email!"
	}
	return msg, nil
}

// ResetPassword completes the forgot-password flow.
func (s *Store) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) (string, error) {
	msg, err := s.api.ResetPassword(ctx, email, otp, newPassword, confirmPassword)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Password reset successfully!"
	}
	return msg, nil
}

// ChangePassword validates the request locally, then asks the server to
// switch the password for the logged-in account.
func (s *Store) ChangePassword(ctx context.Context, change models.PasswordChange) (string, error) {
	token := s.Token()
	if token == "" {
		return "", ErrNotLoggedIn
	}
	if err := change.Validate(); err != nil {
		return "", err
	}

	msg, err := s.api.ChangePassword(ctx, token, change)
	if err != nil {
		s.observeAuthError(ctx, err)
		return "", err
	}
	if msg == "" {
		msg = "Password changed successfully!"
	}
	return msg, nil
}

// UpdateProfile submits the edit, re-resolves the profile and replaces the
// user wholesale, mirroring the new snapshot to durable storage.
func (s *Store) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (string, error) {
	token := s.Token()
	if token == "" {
		return "", ErrNotLoggedIn
	}

	msg, err := s.api.UpdateProfile(ctx, token, upd)
	if err != nil {
		s.observeAuthError(ctx, err)
		return "", err
	}

	profile, err := s.api.GetProfile(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		return "", fmt.Errorf("failed to resolve updated profile: %w", err)
	}

	s.mu.Lock()
	same := s.token == token
	if same {
		s.user = profile
	}
	s.mu.Unlock()
	if same {
		if err := s.persistUser(ctx, profile); err != nil {
			s.log.Warn(ctx, "failed to persist user snapshot", "error", err)
		}
	}

	if msg == "" {
		msg = "Profile updated successfully!"
	}
	return msg, nil
}

// TokenExpiry reports when the bearer token expires, from an unverified parse
// of its claims. Display only: requests are never gated on it, the server
// stays the authority on token validity.
func (s *Store) TokenExpiry() (time.Time, error) {
	token := s.Token()
	if token == "" {
		return time.Time{}, ErrNotLoggedIn
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token carries no expiry")
	}
	return exp.Time, nil
}
