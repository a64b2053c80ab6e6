package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"csemotors/internal/model"
	"csemotors/internal/session"
)

const loginPath = "/account/login"

// RequireLogin short-circuits to the login page when the request carries
// no verified identity.
func RequireLogin(sessions *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if LoggedIn(c) {
				return next(c)
			}
			if err := sessions.PushFlash(c.Request().Context(), SessionID(c), session.FlashNotice, "Please log in."); err != nil {
				c.Logger().Errorf("queue flash: %v", err)
			}
			return c.Redirect(http.StatusFound, loginPath)
		}
	}
}

// RequireRole short-circuits unless the verified identity's role is in the
// allowed set. An absent identity fails closed. Roles are normalized at
// the model boundary, so the comparison here is a plain match.
func RequireRole(sessions *session.Store, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity(c)
			if LoggedIn(c) && identity != nil && identity.Role.Is(roles...) {
				return next(c)
			}

			message := "You do not have permission to access this page."
			if identity == nil {
				message = "Please log in."
			}
			if err := sessions.PushFlash(c.Request().Context(), SessionID(c), session.FlashNotice, message); err != nil {
				c.Logger().Errorf("queue flash: %v", err)
			}
			return c.Redirect(http.StatusFound, loginPath)
		}
	}
}
