// Package auth wraps the hosted identity provider behind email/password
// operations that fail with user-facing messages.
package auth

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	"marketing-studio-backend/internal/models"
)

const minPasswordLength = 6

type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// Provider is the hosted identity service. Failures should be *Error values
// so they can be mapped by FriendlyError.
type Provider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	ResetPassword(ctx context.Context, email string) error
	SignOut(ctx context.Context, accessToken string) error
}

// ProfileWriter creates the app-side user document after sign-up.
type ProfileWriter interface {
	UpsertUserProfile(ctx context.Context, uid, email string, patch map[string]any) (*models.AppUser, error)
}

type Service struct {
	provider Provider
	profiles ProfileWriter
	logger   *slog.Logger
}

func NewService(provider Provider, profiles ProfileWriter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, profiles: profiles, logger: logger}
}

func (s *Service) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := checkCredentials(email, password); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, NewError(CodeWeakPassword, nil)
	}

	name = strings.TrimSpace(name)
	var metadata map[string]any
	if name != "" {
		metadata = map[string]any{"display_name": name}
	}

	session, err := s.provider.SignUp(ctx, email, password, metadata)
	if err != nil {
		return nil, err
	}

	if s.profiles != nil && session.UserID != "" {
		patch := map[string]any{}
		if name != "" {
			patch["display_name"] = name
		}
		if _, err := s.profiles.UpsertUserProfile(ctx, session.UserID, session.Email, patch); err != nil {
			// The account exists; the profile is recreated on first /me update.
			s.logger.Warn("failed to create user profile", "user_id", session.UserID, "error", err)
		}
	}
	return session, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := checkCredentials(email, password); err != nil {
		return nil, err
	}
	return s.provider.SignIn(ctx, email, password)
}

func (s *Service) ResetPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return NewError(CodeInvalidEmail, nil)
	}
	return s.provider.ResetPassword(ctx, email)
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	return s.provider.SignOut(ctx, accessToken)
}

func checkCredentials(email, password string) error {
	if !validEmail(email) {
		return NewError(CodeInvalidEmail, nil)
	}
	if password == "" {
		return NewError(CodeMissingPassword, nil)
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
