package middleware

import (
	"net/http"
	"time"

	"doable/config"
	"doable/internal/domain/entity"
	domainerrors "doable/internal/domain/errors"
	"doable/internal/usecase"

	"github.com/labstack/echo/v4"
)

// keyCurrentUser is where the authenticated user lives on echo.Context.
const keyCurrentUser = "currentUser"

// SessionMiddleware authenticates requests via the session cookie.
type SessionMiddleware struct {
	auth       usecase.AuthUsecase
	cookieName string
	secure     bool
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(auth usecase.AuthUsecase, cfg *config.Config) *SessionMiddleware {
	cookieName := "doable_session"
	secure := false
	if cfg != nil && cfg.Session != nil {
		if cfg.Session.CookieName != "" {
			cookieName = cfg.Session.CookieName
		}
		secure = cfg.Session.Secure
	}

	return &SessionMiddleware{
		auth:       auth,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Authenticate resolves the session cookie to a user and stores it on the
// context. Missing, unknown and expired cookies all fail the same way.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return domainerrors.ErrAuthRequired
		}

		user, err := m.auth.Authenticate(c.Request().Context(), cookie.Value)
		if err != nil {
			return err
		}

		c.Set(keyCurrentUser, user)

		return next(c)
	}
}

// SessionCookie builds the cookie carrying a freshly issued session token.
func (m *SessionMiddleware) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds a cookie that clears the session client side.
func (m *SessionMiddleware) ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieName exposes the configured cookie name for handlers that read the
// raw token, such as logout.
func (m *SessionMiddleware) CookieName() string {
	return m.cookieName
}

// CurrentUser returns the user placed on the context by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(keyCurrentUser).(*entity.User)

	return user, ok
}
