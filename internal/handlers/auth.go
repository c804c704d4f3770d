package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"marketing-studio-backend/internal/auth"
	"marketing-studio-backend/internal/dashboard"
	"marketing-studio-backend/internal/middleware"
	"marketing-studio-backend/internal/models"
)

type AuthHandler struct {
	service  *auth.Service
	sessions *dashboard.Registry
}

func NewAuthHandler(service *auth.Service, sessions *dashboard.Registry) *AuthHandler {
	return &AuthHandler{service: service, sessions: sessions}
}

func authStatus(err error) int {
	switch auth.CodeOf(err) {
	case auth.CodeInvalidEmail, auth.CodeMissingPassword, auth.CodeWeakPassword:
		return http.StatusBadRequest
	case auth.CodeEmailInUse:
		return http.StatusConflict
	case auth.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case auth.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case auth.CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func authFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(authStatus(err), models.ErrorResponse{Error: auth.FriendlyError(err)})
}

func sessionResponse(s *auth.Session) models.AuthResponse {
	return models.AuthResponse{
		UserID:       s.UserID,
		Email:        s.Email,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
	}
}

// SignUp godoc
// @Summary     Create an account
// @Description Registers an email/password account and its profile. The access token is empty when email confirmation is required.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignUpRequest true "Account details"
// @Success     201 {object} models.AuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		authFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(session))
}

// SignIn godoc
// @Summary     Sign in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignInRequest true "Credentials"
// @Success     200 {object} models.AuthResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Router      /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		authFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

// ResetPassword godoc
// @Summary     Send a password reset email
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.ResetPasswordRequest true "Account email"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /auth/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email); err != nil {
		authFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "password reset email sent"})
}

// SignOut godoc
// @Summary     Sign out
// @Description Revokes the bearer token's session and clears the dashboard state held for the user.
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.MessageResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization header"})
		return
	}

	if err := h.service.SignOut(c.Request.Context(), token); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: auth.SignOutFailed})
		return
	}

	if uid, ok := c.Get(middleware.UserIDKey); ok && h.sessions != nil {
		h.sessions.Reset(uid.(string))
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "signed out"})
}
