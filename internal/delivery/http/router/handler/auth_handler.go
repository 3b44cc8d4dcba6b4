// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"doable/internal/delivery/http/middleware"
	"doable/internal/delivery/http/response"
	"doable/internal/domain/entity"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/infra/metrics"
	"doable/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for account and session endpoints.
type AuthHandler struct {
	uc        usecase.AuthUsecase
	sessions  *middleware.SessionMiddleware
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, sessions *middleware.SessionMiddleware, collector *metrics.Collector, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:        uc,
		sessions:  sessions,
		collector: collector,
		logger:    logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates an account and logs the new user straight in.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input credentialsRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrUsernameEmpty
	}

	output, err := h.uc.Signup(c.Request().Context(), &usecase.SignupInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.startSession(c, output.User); err != nil {
		return errors.WithStack(err)
	}

	h.collector.RecordSignup()

	return c.JSON(http.StatusCreated, response.AuthResult{
		Message: "User created successfully",
		User:    toUserInfo(output.User),
	})
}

// Login verifies credentials and opens a fresh session.
func (h *AuthHandler) Login(c echo.Context) error {
	var input credentialsRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrCredentialsRequired
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			h.collector.RecordLoginFailure()
		}

		return errors.WithStack(err)
	}

	if err := h.startSession(c, output.User); err != nil {
		return errors.WithStack(err)
	}

	h.collector.RecordLogin()

	return c.JSON(http.StatusOK, response.AuthResult{
		Message: "Login successful",
		User:    toUserInfo(output.User),
	})
}

// Me reports who owns the current session.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrAuthRequired
	}

	return c.JSON(http.StatusOK, toUserInfo(user))
}

// Logout revokes the session server side and clears the cookie. It succeeds
// even without a live session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.sessions.CookieName()); err == nil && cookie.Value != "" {
		if err := h.uc.RevokeSession(c.Request().Context(), cookie.Value); err != nil {
			return errors.WithStack(err)
		}
	}

	c.SetCookie(h.sessions.ExpiredSessionCookie())

	return c.JSON(http.StatusOK, response.Message{Message: "Logout successful"})
}

// startSession issues a session token and hands it to the browser.
func (h *AuthHandler) startSession(c echo.Context, user *entity.User) error {
	session, err := h.uc.IssueSession(c.Request().Context(), user.ID)
	if err != nil {
		return errors.Wrap(err, "failed to issue session")
	}

	c.SetCookie(h.sessions.SessionCookie(session.Token, session.ExpiresAt))

	return nil
}

func toUserInfo(user *entity.User) response.UserInfo {
	return response.UserInfo{
		ID:       user.ID,
		Username: user.Username,
	}
}
