package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"csemotors/internal/auth"
	"csemotors/internal/session"
)

// Cookie names carried by every browser.
const (
	SessionCookie = "sessionid"
	AuthCookie    = "jwt"
)

// Request-scoped context keys populated by RequestContext.
const (
	keyLoggedIn  = "loggedin"
	keySessionID = "session_id"
	keyAccount   = "account"
)

// RequestContext resolves the visitor's identity once per request so that
// downstream handlers never touch the raw token. Token failures are
// advisory here: the request continues anonymously.
type RequestContext struct {
	tokens   *auth.JWTService
	sessions *session.Store
	secure   bool
}

// NewRequestContext creates the per-request identity middleware. secure
// controls the Secure flag on minted cookies (production only).
func NewRequestContext(tokens *auth.JWTService, sessions *session.Store, secure bool) *RequestContext {
	return &RequestContext{
		tokens:   tokens,
		sessions: sessions,
		secure:   secure,
	}
}

// Resolve returns the middleware. It (1) guarantees a sessionid cookie
// and (2) verifies the jwt cookie into loggedin/account state, clearing
// the cookie and queueing a notice on any failure. Queued flash messages
// stay in the store until a view is actually built: redirects must not
// consume them.
func (m *RequestContext) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sid := m.ensureSession(c)
			c.Set(keySessionID, sid)
			c.Set(keyLoggedIn, false)

			if cookie, err := c.Cookie(AuthCookie); err == nil && cookie.Value != "" {
				claims, err := m.tokens.Verify(cookie.Value)
				if err != nil {
					// Malformed, bad signature, or expired. Logged apart,
					// handled alike: back to anonymous.
					c.Logger().Infof("auth token rejected: %v", err)
					ClearAuthCookie(c, m.secure)
					if ferr := m.sessions.PushFlash(ctx, sid, session.FlashNotice, "Please log in."); ferr != nil {
						c.Logger().Errorf("queue flash: %v", ferr)
					}
				} else {
					c.Set(keyLoggedIn, true)
					c.Set(keyAccount, &claims.Identity)
				}
			}

			return next(c)
		}
	}
}

// ensureSession returns the visitor's session id, minting one on first contact.
func (m *RequestContext) ensureSession(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
	})
	return sid
}

// SetAuthCookie installs the signed auth token cookie.
func SetAuthCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   secure,
	})
}

// ClearAuthCookie expires the auth token cookie.
func ClearAuthCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     AuthCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
	})
}

// LoggedIn reports whether the current request carries a verified identity.
func LoggedIn(c echo.Context) bool {
	loggedIn, _ := c.Get(keyLoggedIn).(bool)
	return loggedIn
}

// Identity returns the verified identity for the request, or nil.
func Identity(c echo.Context) *auth.Identity {
	identity, _ := c.Get(keyAccount).(*auth.Identity)
	return identity
}

// SessionID returns the visitor's session id for the request.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(keySessionID).(string)
	return sid
}
