package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "csemotors/internal/errors"
	"csemotors/internal/middleware"
	"csemotors/internal/service"
	"csemotors/internal/session"
)

// AccountHandler drives registration, login, logout, and account updates.
type AccountHandler struct {
	pages    *Pages
	accounts service.AccountService
	reviews  service.ReviewService
	sessions *session.Store
	secure   bool
}

// NewAccountHandler creates a new account handler. secure controls the
// Secure flag on the auth cookie (production only).
func NewAccountHandler(pages *Pages, accounts service.AccountService, reviews service.ReviewService, sessions *session.Store, secure bool) *AccountHandler {
	return &AccountHandler{
		pages:    pages,
		accounts: accounts,
		reviews:  reviews,
		sessions: sessions,
		secure:   secure,
	}
}

// LoginForm carries the login fields.
type LoginForm struct {
	Email    string `form:"account_email" validate:"required,email"`
	Password string `form:"account_password" validate:"required"`
}

// RegisterForm carries the registration fields.
type RegisterForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required,min=2"`
	Email     string `form:"account_email" validate:"required,email"`
	Password  string `form:"account_password" validate:"required,strongpassword"`
}

// UpdateForm carries the profile update fields.
type UpdateForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname" validate:"required,min=2"`
	Email     string `form:"account_email" validate:"required,email"`
}

// PasswordForm carries the password update field.
type PasswordForm struct {
	Password string `form:"account_password" validate:"required,strongpassword"`
}

var loginMessages = map[string]string{
	"Email":    "Please enter a valid email address.",
	"Password": "Please enter your password.",
}

var registerMessages = map[string]string{
	"FirstName": "First Name is required",
	"LastName":  "Last Name is required",
	"Email":     "Valid Email is required",
	"Password":  "Password does not meet requirements",
}

// BuildLogin renders the login view.
func (h *AccountHandler) BuildLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", h.pages.Build(c, "Login"))
}

// Login processes a login attempt. Missing accounts and wrong passwords
// redisplay the same generic notice with the email kept sticky.
func (h *AccountHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	page := h.pages.Build(c, "Login")
	page.Form["account_email"] = form.Email

	if err := c.Validate(&form); err != nil {
		page.Errors = validationMessages(err, loginMessages)
		return c.Render(http.StatusBadRequest, "login.html", page)
	}

	ctx := c.Request().Context()
	token, identity, err := h.accounts.Login(ctx, form.Email, form.Password)
	if err != nil {
		if err != apperrors.ErrInvalidCredentials {
			c.Logger().Errorf("login: %v", err)
		}
		page.Notice = append(page.Notice, "Please check your credentials and try again.")
		return c.Render(http.StatusUnauthorized, "login.html", page)
	}

	if err := h.sessions.SetIdentity(ctx, middleware.SessionID(c), identity); err != nil {
		c.Logger().Errorf("store session identity: %v", err)
	}
	middleware.SetAuthCookie(c, token, h.secure)
	return c.Redirect(http.StatusFound, "/account/")
}

// BuildRegister renders the registration view.
func (h *AccountHandler) BuildRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", h.pages.Build(c, "Registration"))
}

// Register processes a registration. Duplicate emails are disclosed to the
// user, matching the site's established behavior.
func (h *AccountHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	page := h.pages.Build(c, "Registration")
	page.Form["account_firstname"] = form.FirstName
	page.Form["account_lastname"] = form.LastName
	page.Form["account_email"] = form.Email

	if err := c.Validate(&form); err != nil {
		page.Errors = validationMessages(err, registerMessages)
		return c.Render(http.StatusBadRequest, "register.html", page)
	}

	ctx := c.Request().Context()
	account, err := h.accounts.Register(ctx, form.FirstName, form.LastName, form.Email, form.Password)
	if err != nil {
		if err == apperrors.ErrEmailInUse {
			page.Errors = []string{"Email is already in use. Please login or use a different email address."}
			return c.Render(http.StatusConflict, "register.html", page)
		}
		c.Logger().Errorf("register: %v", err)
		page.Notice = append(page.Notice, "Sorry, the registration failed.")
		return c.Render(http.StatusInternalServerError, "register.html", page)
	}

	if err := h.sessions.PushFlash(ctx, middleware.SessionID(c), session.FlashSuccess,
		"Congratulations, you're registered, "+account.FirstName+". Please log in."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/account/login")
}

// Logout destroys the session and clears the auth cookie. A failed
// destroy leaves the cookie in place and reports the failure: logout is
// not complete until the session record is gone.
func (h *AccountHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	sid := middleware.SessionID(c)

	if err := h.sessions.Destroy(ctx, sid); err != nil {
		c.Logger().Errorf("logout: %v", err)
		if ferr := h.sessions.PushFlash(ctx, sid, session.FlashError, "Logout failed. Please try again."); ferr != nil {
			c.Logger().Errorf("queue flash: %v", ferr)
		}
		return c.Redirect(http.StatusFound, "/account/")
	}

	middleware.ClearAuthCookie(c, h.secure)
	if err := h.sessions.PushFlash(ctx, sid, session.FlashNotice, "You have been logged out."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/")
}

// BuildAccount renders the account management view with the visitor's reviews.
func (h *AccountHandler) BuildAccount(c echo.Context) error {
	identity := middleware.Identity(c)
	page := h.pages.Build(c, "Account Management")

	reviews, err := h.reviews.ForAccount(c.Request().Context(), identity.AccountID)
	if err != nil {
		c.Logger().Errorf("list account reviews: %v", err)
	} else {
		page.Data = reviews
	}
	return c.Render(http.StatusOK, "account.html", page)
}

// BuildUpdate renders the account update form pre-filled from the identity.
func (h *AccountHandler) BuildUpdate(c echo.Context) error {
	identity := middleware.Identity(c)
	page := h.pages.Build(c, "Update Account Information")
	page.Form["account_firstname"] = identity.FirstName
	page.Form["account_lastname"] = identity.LastName
	page.Form["account_email"] = identity.Email
	return c.Render(http.StatusOK, "update.html", page)
}

// Update changes the profile fields of the logged-in account. The account
// id comes from the verified identity, never from the form, and both the
// session snapshot and the cookie token are refreshed on success.
func (h *AccountHandler) Update(c echo.Context) error {
	identity := middleware.Identity(c)

	var form UpdateForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	page := h.pages.Build(c, "Update Account Information")
	page.Form["account_firstname"] = form.FirstName
	page.Form["account_lastname"] = form.LastName
	page.Form["account_email"] = form.Email

	if err := c.Validate(&form); err != nil {
		page.Errors = validationMessages(err, registerMessages)
		return c.Render(http.StatusBadRequest, "update.html", page)
	}

	ctx := c.Request().Context()
	token, updated, err := h.accounts.UpdateProfile(ctx, identity.AccountID, form.FirstName, form.LastName, form.Email)
	if err != nil {
		if err == apperrors.ErrEmailInUse {
			page.Errors = []string{"Email is already in use."}
			return c.Render(http.StatusConflict, "update.html", page)
		}
		c.Logger().Errorf("update account: %v", err)
		page.Notice = append(page.Notice, "Sorry, the update failed.")
		return c.Render(http.StatusInternalServerError, "update.html", page)
	}

	sid := middleware.SessionID(c)
	if err := h.sessions.SetIdentity(ctx, sid, updated); err != nil {
		c.Logger().Errorf("refresh session identity: %v", err)
	}
	middleware.SetAuthCookie(c, token, h.secure)

	if err := h.sessions.PushFlash(ctx, sid, session.FlashSuccess, "Account updated successfully."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/account/")
}

// UpdatePassword changes the password of the logged-in account.
func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	identity := middleware.Identity(c)

	var form PasswordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&form); err != nil {
		page := h.pages.Build(c, "Update Account Information")
		page.Form["account_firstname"] = identity.FirstName
		page.Form["account_lastname"] = identity.LastName
		page.Form["account_email"] = identity.Email
		page.Errors = []string{"Password does not meet strength requirements"}
		return c.Render(http.StatusBadRequest, "update.html", page)
	}

	ctx := c.Request().Context()
	sid := middleware.SessionID(c)
	if err := h.accounts.UpdatePassword(ctx, identity.AccountID, form.Password); err != nil {
		c.Logger().Errorf("update password: %v", err)
		if ferr := h.sessions.PushFlash(ctx, sid, session.FlashError, "Sorry, the password update failed."); ferr != nil {
			c.Logger().Errorf("queue flash: %v", ferr)
		}
		return c.Redirect(http.StatusFound, "/account/update")
	}

	if err := h.sessions.PushFlash(ctx, sid, session.FlashSuccess, "Password updated successfully."); err != nil {
		c.Logger().Errorf("queue flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/account/")
}
