package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "csemotors/internal/errors"
	"csemotors/internal/middleware"
	"csemotors/internal/model"
	"csemotors/internal/service"
	"csemotors/internal/session"
)

// ReviewHandler drives review creation, editing, and moderation.
type ReviewHandler struct {
	pages    *Pages
	reviews  service.ReviewService
	sessions *session.Store
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(pages *Pages, reviews service.ReviewService, sessions *session.Store) *ReviewHandler {
	return &ReviewHandler{
		pages:    pages,
		reviews:  reviews,
		sessions: sessions,
	}
}

// AddReviewForm carries the new review fields.
type AddReviewForm struct {
	VehicleID uint   `form:"inv_id" validate:"required"`
	Text      string `form:"review_text" validate:"required,min=3"`
}

// EditReviewForm carries the review update fields.
type EditReviewForm struct {
	ReviewID uint   `form:"review_id" validate:"required"`
	Text     string `form:"review_text" validate:"required,min=3"`
}

// DeleteReviewForm carries the review delete field.
type DeleteReviewForm struct {
	ReviewID uint `form:"review_id" validate:"required"`
}

// Add creates a review for the logged-in account.
func (h *ReviewHandler) Add(c echo.Context) error {
	identity := middleware.Identity(c)

	var form AddReviewForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	sid := middleware.SessionID(c)
	detailPath := "/inv/detail/" + strconv.FormatUint(uint64(form.VehicleID), 10)

	if err := c.Validate(&form); err != nil {
		if ferr := h.sessions.PushFlash(ctx, sid, session.FlashError, "Review text is required."); ferr != nil {
			c.Logger().Errorf("queue flash: %v", ferr)
		}
		return c.Redirect(http.StatusFound, detailPath)
	}

	if _, err := h.reviews.Add(ctx, identity.AccountID, form.VehicleID, form.Text); err != nil {
		c.Logger().Errorf("add review: %v", err)
		if ferr := h.sessions.PushFlash(ctx, sid, session.FlashError, "Failed to add review."); ferr != nil {
			c.Logger().Errorf("queue flash: %v", ferr)
		}
		return c.Redirect(http.StatusFound, detailPath)
	}

	if err := h.sessions.PushFlash(ctx, sid, session.FlashSuccess, "Review added successfully."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, detailPath)
}

// BuildEdit renders the edit form for a review the visitor may edit.
func (h *ReviewHandler) BuildEdit(c echo.Context) error {
	identity := middleware.Identity(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
	}

	review, err := h.reviews.ByID(c.Request().Context(), uint(id))
	if err != nil {
		if err == apperrors.ErrReviewNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
		}
		return err
	}
	if review.AccountID != identity.AccountID && !identity.Role.Is(model.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to access this page.")
	}

	page := h.pages.Build(c, "Edit Review")
	page.Data = review
	return c.Render(http.StatusOK, "review-edit.html", page)
}

// Update edits a review owned by the visitor (or any review, for admins).
func (h *ReviewHandler) Update(c echo.Context) error {
	identity := middleware.Identity(c)

	var form EditReviewForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	sid := middleware.SessionID(c)

	if err := c.Validate(&form); err != nil {
		if ferr := h.sessions.PushFlash(ctx, sid, session.FlashError, "Review text is required."); ferr != nil {
			c.Logger().Errorf("queue flash: %v", ferr)
		}
		return c.Redirect(http.StatusFound, "/account/")
	}

	if err := h.reviews.Update(ctx, form.ReviewID, identity.AccountID, identity.Role, form.Text); err != nil {
		c.Logger().Errorf("update review: %v", err)
		if ferr := h.sessions.PushFlash(ctx, sid, session.FlashError, "Failed to update review."); ferr != nil {
			c.Logger().Errorf("queue flash: %v", ferr)
		}
		return c.Redirect(http.StatusFound, "/account/")
	}

	if err := h.sessions.PushFlash(ctx, sid, session.FlashSuccess, "Review updated successfully."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/account/")
}

// Delete removes a review under the same ownership rule as Update.
func (h *ReviewHandler) Delete(c echo.Context) error {
	identity := middleware.Identity(c)

	var form DeleteReviewForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	sid := middleware.SessionID(c)

	if err := h.reviews.Delete(ctx, form.ReviewID, identity.AccountID, identity.Role); err != nil {
		c.Logger().Errorf("delete review: %v", err)
		if ferr := h.sessions.PushFlash(ctx, sid, session.FlashError, "Failed to delete review."); ferr != nil {
			c.Logger().Errorf("queue flash: %v", ferr)
		}
		return c.Redirect(http.StatusFound, "/account/")
	}

	if err := h.sessions.PushFlash(ctx, sid, session.FlashSuccess, "Review deleted successfully."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/account/")
}

// BuildAdmin renders the moderation view listing all client reviews.
func (h *ReviewHandler) BuildAdmin(c echo.Context) error {
	reviews, err := h.reviews.ClientReviews(c.Request().Context())
	if err != nil {
		return err
	}
	page := h.pages.Build(c, "Review Moderation")
	page.Data = reviews
	return c.Render(http.StatusOK, "reviews-admin.html", page)
}
