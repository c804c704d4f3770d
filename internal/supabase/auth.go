package supabase

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	"marketing-studio-backend/internal/auth"
)

// AuthProvider implements auth.Provider on Supabase GoTrue.
type AuthProvider struct {
	client gotrue.Client
}

func NewAuthProvider(client *Client) *AuthProvider {
	return &AuthProvider{client: client.Supabase.Auth}
}

func (p *AuthProvider) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*auth.Session, error) {
	resp, err := p.client.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     metadata,
	})
	if err != nil {
		return nil, classifyAuthError(err)
	}

	session := &auth.Session{
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
		AccessToken:  resp.Session.AccessToken,
		RefreshToken: resp.Session.RefreshToken,
		ExpiresIn:    resp.Session.ExpiresIn,
	}
	// With autoconfirm on, the user comes back inside the session.
	if session.UserID == zeroUUID && resp.Session.User.ID.String() != zeroUUID {
		session.UserID = resp.Session.User.ID.String()
		session.Email = resp.Session.User.Email
	}
	if session.UserID == zeroUUID {
		session.UserID = ""
	}
	return session, nil
}

func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	resp, err := p.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, classifyAuthError(err)
	}
	return &auth.Session{
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (p *AuthProvider) ResetPassword(ctx context.Context, email string) error {
	if err := p.client.Recover(types.RecoverRequest{Email: email}); err != nil {
		return classifyAuthError(err)
	}
	return nil
}

func (p *AuthProvider) SignOut(ctx context.Context, accessToken string) error {
	if err := p.client.WithToken(accessToken).Logout(); err != nil {
		return classifyAuthError(err)
	}
	return nil
}

const zeroUUID = "00000000-0000-0000-0000-000000000000"

var statusPattern = regexp.MustCompile(`response status code (\d+)`)

// classifyAuthError maps GoTrue's "response status code N: body" errors onto
// auth codes. GoTrue reports the cause in error_code (newer) or error/msg.
func classifyAuthError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return auth.NewError(auth.CodeNetwork, err)
	}

	msg := strings.ToLower(err.Error())
	status := 0
	if m := statusPattern.FindStringSubmatch(msg); m != nil {
		status, _ = strconv.Atoi(m[1])
	}

	code := auth.CodeUnknown
	switch {
	case status == 0:
		if strings.Contains(msg, "dial tcp") || strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") {
			code = auth.CodeNetwork
		}
	case status == 429 || strings.Contains(msg, "rate_limit") || strings.Contains(msg, "rate limit"):
		code = auth.CodeTooManyRequests
	case strings.Contains(msg, "weak_password") || strings.Contains(msg, "password should be"):
		code = auth.CodeWeakPassword
	case strings.Contains(msg, "user_already_exists") || strings.Contains(msg, "email_exists") || strings.Contains(msg, "already registered"):
		code = auth.CodeEmailInUse
	case strings.Contains(msg, "email_address_invalid") || strings.Contains(msg, "invalid format") || strings.Contains(msg, "unable to validate email"):
		code = auth.CodeInvalidEmail
	case strings.Contains(msg, "invalid_credentials") || strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "invalid login credentials"):
		code = auth.CodeInvalidCredentials
	case strings.Contains(msg, "user_not_found"):
		code = auth.CodeInvalidCredentials
	}
	return auth.NewError(code, err)
}
