package router

import (
	"errors"
	"net/http"
	"strconv"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"csemotors/internal/handler"
	"csemotors/internal/middleware"
	"csemotors/internal/model"
	"csemotors/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	pages *handler.Pages,
	requestContext *middleware.RequestContext,
	sessions *session.Store,
	accountHandler *handler.AccountHandler,
	inventoryHandler *handler.InventoryHandler,
	reviewHandler *handler.ReviewHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	// Identity resolution and flash drain run before every route.
	e.Use(requestContext.Resolve())

	v := validator.New()
	// Mirror of the registration password policy: 12+ chars with at least
	// one lower, upper, digit, and symbol.
	_ = v.RegisterValidation("strongpassword", strongPassword)
	e.Validator = &CustomValidator{validator: v}

	e.HTTPErrorHandler = errorPageHandler(pages)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/", inventoryHandler.BuildHome)

	// Public account routes
	account := e.Group("/account")
	account.GET("/login", accountHandler.BuildLogin)
	account.POST("/login", accountHandler.Login)
	account.GET("/register", accountHandler.BuildRegister)
	account.POST("/register", accountHandler.Register)
	account.GET("/logout", accountHandler.Logout)

	// Login-gated account routes
	account.GET("/", accountHandler.BuildAccount, middleware.RequireLogin(sessions))
	account.GET("/update", accountHandler.BuildUpdate, middleware.RequireLogin(sessions))
	account.POST("/update", accountHandler.Update, middleware.RequireLogin(sessions))
	account.POST("/update-password", accountHandler.UpdatePassword, middleware.RequireLogin(sessions))

	// Public inventory browsing
	inv := e.Group("/inv")
	inv.GET("/type/:classificationId", inventoryHandler.BuildByClassification)
	inv.GET("/detail/:id", inventoryHandler.BuildDetail)

	// Inventory management requires login plus an employee or admin role.
	staff := inv.Group("", middleware.RequireLogin(sessions), middleware.RequireRole(sessions, model.RoleEmployee, model.RoleAdmin))
	staff.GET("/", inventoryHandler.BuildManagement)
	staff.GET("/add-classification", inventoryHandler.BuildAddClassification)
	staff.POST("/add-classification", inventoryHandler.AddClassification)
	staff.GET("/add-inventory", inventoryHandler.BuildAddVehicle)
	staff.POST("/add-inventory", inventoryHandler.AddVehicle)

	// Reviews require login; moderation requires admin.
	reviews := e.Group("/reviews", middleware.RequireLogin(sessions))
	reviews.POST("/add", reviewHandler.Add)
	reviews.GET("/edit/:id", reviewHandler.BuildEdit)
	reviews.POST("/update", reviewHandler.Update)
	reviews.POST("/delete", reviewHandler.Delete)
	reviews.GET("/admin", reviewHandler.BuildAdmin, middleware.RequireRole(sessions, model.RoleAdmin))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorPageHandler renders the error view for anything that escaped the
// handlers. Expected auth and validation failures never reach here; they
// are handled where they occur.
func errorPageHandler(pages *handler.Pages) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		message := "Oh no! There was a crash. Maybe try a different route?"
		title := "Server Error"
		if code == http.StatusNotFound {
			message = "Sorry, we appear to have lost that page."
			title = strconv.Itoa(code)
		}
		if code >= http.StatusInternalServerError {
			c.Logger().Errorf("error at %q: %v", c.Request().RequestURI, err)
		}

		page := pages.Build(c, title)
		page.Data = message
		if rerr := c.Render(code, "error.html", page); rerr != nil {
			c.Logger().Errorf("render error page: %v", rerr)
		}
	}
}

func strongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 12 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
