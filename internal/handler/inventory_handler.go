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

// InventoryHandler serves the public browsing views and the role-gated
// inventory management views.
type InventoryHandler struct {
	pages     *Pages
	inventory service.InventoryService
	reviews   service.ReviewService
	sessions  *session.Store
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(pages *Pages, inventory service.InventoryService, reviews service.ReviewService, sessions *session.Store) *InventoryHandler {
	return &InventoryHandler{
		pages:     pages,
		inventory: inventory,
		reviews:   reviews,
		sessions:  sessions,
	}
}

// ClassificationForm carries the add-classification field.
type ClassificationForm struct {
	Name string `form:"classification_name" validate:"required,alphanum"`
}

// VehicleForm carries the add-vehicle fields.
type VehicleForm struct {
	ClassificationID uint   `form:"classification_id" validate:"required"`
	Make             string `form:"inv_make" validate:"required"`
	Model            string `form:"inv_model" validate:"required"`
	Year             int    `form:"inv_year" validate:"required,min=1900"`
	Description      string `form:"inv_description"`
	Image            string `form:"inv_image"`
	Thumbnail        string `form:"inv_thumbnail"`
	Price            int64  `form:"inv_price" validate:"required,min=0"`
	Miles            int64  `form:"inv_miles" validate:"min=0"`
	Color            string `form:"inv_color"`
}

var vehicleMessages = map[string]string{
	"ClassificationID": "Please choose a classification.",
	"Make":             "Make is required",
	"Model":            "Model is required",
	"Year":             "A valid year is required",
	"Price":            "A valid price is required",
	"Miles":            "Miles must not be negative",
}

// BuildHome renders the home view.
func (h *InventoryHandler) BuildHome(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", h.pages.Build(c, "Home"))
}

// BuildByClassification renders the inventory grid for one classification.
func (h *InventoryHandler) BuildByClassification(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("classificationId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
	}

	classification, vehicles, err := h.inventory.VehiclesByClassification(c.Request().Context(), uint(id))
	if err != nil {
		if err == apperrors.ErrVehicleNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
		}
		return err
	}

	page := h.pages.Build(c, classification.Name+" vehicles")
	page.Data = vehicles
	return c.Render(http.StatusOK, "classification.html", page)
}

// vehicleDetail is the data object for the detail view.
type vehicleDetail struct {
	Vehicle *model.Vehicle
	Reviews []model.Review
}

// BuildDetail renders a single vehicle with its reviews.
func (h *InventoryHandler) BuildDetail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
	}

	ctx := c.Request().Context()
	vehicle, err := h.inventory.VehicleByID(ctx, uint(id))
	if err != nil {
		if err == apperrors.ErrVehicleNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we appear to have lost that page.")
		}
		return err
	}

	reviews, err := h.reviews.ForVehicle(ctx, vehicle.ID)
	if err != nil {
		c.Logger().Errorf("list vehicle reviews: %v", err)
	}

	page := h.pages.Build(c, strconv.Itoa(vehicle.Year)+" "+vehicle.Make+" "+vehicle.Model)
	page.Data = vehicleDetail{Vehicle: vehicle, Reviews: reviews}
	return c.Render(http.StatusOK, "detail.html", page)
}

// BuildManagement renders the inventory management view.
func (h *InventoryHandler) BuildManagement(c echo.Context) error {
	return c.Render(http.StatusOK, "management.html", h.pages.Build(c, "Inventory Management"))
}

// BuildAddClassification renders the add-classification form.
func (h *InventoryHandler) BuildAddClassification(c echo.Context) error {
	return c.Render(http.StatusOK, "add-classification.html", h.pages.Build(c, "Add New Classification"))
}

// AddClassification creates a classification.
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	var form ClassificationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	page := h.pages.Build(c, "Add New Classification")
	page.Form["classification_name"] = form.Name

	if err := c.Validate(&form); err != nil {
		page.Errors = []string{"Classification name must not contain spaces or special characters."}
		return c.Render(http.StatusBadRequest, "add-classification.html", page)
	}

	ctx := c.Request().Context()
	if _, err := h.inventory.AddClassification(ctx, form.Name); err != nil {
		c.Logger().Errorf("add classification: %v", err)
		page.Notice = append(page.Notice, "Sorry, adding the classification failed.")
		return c.Render(http.StatusInternalServerError, "add-classification.html", page)
	}

	if err := h.sessions.PushFlash(ctx, middleware.SessionID(c), session.FlashSuccess,
		"The "+form.Name+" classification was successfully added."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/inv/")
}

// BuildAddVehicle renders the add-vehicle form with the classification select.
func (h *InventoryHandler) BuildAddVehicle(c echo.Context) error {
	page := h.pages.Build(c, "Add New Vehicle")
	page.Data = page.Nav
	return c.Render(http.StatusOK, "add-inventory.html", page)
}

// AddVehicle creates an inventory item.
func (h *InventoryHandler) AddVehicle(c echo.Context) error {
	var form VehicleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	page := h.pages.Build(c, "Add New Vehicle")
	page.Data = page.Nav
	page.Form["inv_make"] = form.Make
	page.Form["inv_model"] = form.Model
	page.Form["inv_description"] = form.Description
	page.Form["inv_image"] = form.Image
	page.Form["inv_thumbnail"] = form.Thumbnail
	page.Form["inv_color"] = form.Color
	if form.Year > 0 {
		page.Form["inv_year"] = strconv.Itoa(form.Year)
	}
	if form.Price > 0 {
		page.Form["inv_price"] = strconv.FormatInt(form.Price, 10)
	}
	if form.Miles > 0 {
		page.Form["inv_miles"] = strconv.FormatInt(form.Miles, 10)
	}

	if err := c.Validate(&form); err != nil {
		page.Errors = validationMessages(err, vehicleMessages)
		return c.Render(http.StatusBadRequest, "add-inventory.html", page)
	}

	vehicle := &model.Vehicle{
		ClassificationID: form.ClassificationID,
		Make:             form.Make,
		Model:            form.Model,
		Year:             form.Year,
		Description:      form.Description,
		Image:            form.Image,
		Thumbnail:        form.Thumbnail,
		Price:            form.Price,
		Miles:            form.Miles,
		Color:            form.Color,
	}

	ctx := c.Request().Context()
	if err := h.inventory.AddVehicle(ctx, vehicle); err != nil {
		c.Logger().Errorf("add vehicle: %v", err)
		page.Notice = append(page.Notice, "Sorry, adding the vehicle failed.")
		return c.Render(http.StatusInternalServerError, "add-inventory.html", page)
	}

	if err := h.sessions.PushFlash(ctx, middleware.SessionID(c), session.FlashSuccess,
		"The "+form.Make+" "+form.Model+" was successfully added."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/inv/")
}
