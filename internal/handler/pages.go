package handler

import (
	"github.com/labstack/echo/v4"

	"csemotors/internal/middleware"
	"csemotors/internal/service"
	"csemotors/internal/session"
	"csemotors/internal/view"
)

// Pages builds the common render contract (title, nav, identity, flashes)
// that every handler must supply, on success and failure paths alike.
type Pages struct {
	inventory service.InventoryService
	sessions  *session.Store
}

// NewPages creates the shared page builder.
func NewPages(inventory service.InventoryService, sessions *session.Store) *Pages {
	return &Pages{inventory: inventory, sessions: sessions}
}

// Build assembles a Page for the current request. Flash messages are
// drained here, not in the middleware, so a notice queued during a
// redirecting request survives until a view actually renders. A nav or
// flash lookup failure is logged but does not block rendering: error
// pages must still render when a backing store is down.
func (p *Pages) Build(c echo.Context, title string) view.Page {
	page := view.Page{
		Title:    title,
		LoggedIn: middleware.LoggedIn(c),
		Account:  middleware.Identity(c),
		Form:     map[string]string{},
	}

	nav, err := p.inventory.Classifications(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("build nav: %v", err)
	} else {
		page.Nav = nav
	}

	flashes, err := p.sessions.PopFlashes(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		c.Logger().Errorf("drain flashes: %v", err)
	}
	page.AddFlashes(flashes)
	return page
}
