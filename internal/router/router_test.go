package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"csemotors/internal/auth"
	"csemotors/internal/cache"
	"csemotors/internal/handler"
	"csemotors/internal/middleware"
	"csemotors/internal/model"
	"csemotors/internal/service"
	"csemotors/internal/session"
	"csemotors/internal/view"
)

// fakeAccountRepo is an in-memory AccountRepository.
type fakeAccountRepo struct {
	nextID   uint
	accounts map[string]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, accounts: map[string]*model.Account{}}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *model.Account) error {
	account.ID = r.nextID
	r.nextID++
	r.accounts[account.Email] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	if account, ok := r.accounts[email]; ok {
		return account, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAccountRepo) UpdateProfile(ctx context.Context, id uint, firstName, lastName, email string) error {
	account, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	delete(r.accounts, account.Email)
	account.FirstName, account.LastName, account.Email = firstName, lastName, email
	r.accounts[email] = account
	return nil
}

func (r *fakeAccountRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	account, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	account.PasswordHash = passwordHash
	return nil
}

// fakeInventoryRepo serves a fixed classification list.
type fakeInventoryRepo struct{}

func (fakeInventoryRepo) ListClassifications(ctx context.Context) ([]model.Classification, error) {
	return []model.Classification{{ID: 1, Name: "SUV"}}, nil
}
func (fakeInventoryRepo) CreateClassification(ctx context.Context, c *model.Classification) error {
	return nil
}
func (fakeInventoryRepo) FindClassificationByID(ctx context.Context, id uint) (*model.Classification, error) {
	return &model.Classification{ID: id, Name: "SUV"}, nil
}
func (fakeInventoryRepo) ListVehiclesByClassification(ctx context.Context, id uint) ([]model.Vehicle, error) {
	return nil, nil
}
func (fakeInventoryRepo) FindVehicleByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeInventoryRepo) CreateVehicle(ctx context.Context, v *model.Vehicle) error { return nil }

// fakeReviewRepo holds no reviews.
type fakeReviewRepo struct{}

func (fakeReviewRepo) Create(ctx context.Context, review *model.Review) error { return nil }
func (fakeReviewRepo) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeReviewRepo) ListByVehicle(ctx context.Context, id uint) ([]model.Review, error) {
	return nil, nil
}
func (fakeReviewRepo) ListByAccount(ctx context.Context, id uint) ([]model.Review, error) {
	return nil, nil
}
func (fakeReviewRepo) ListByRole(ctx context.Context, role model.Role) ([]model.Review, error) {
	return nil, nil
}
func (fakeReviewRepo) Update(ctx context.Context, id uint, text string) error { return nil }
func (fakeReviewRepo) Delete(ctx context.Context, id uint) error              { return nil }

func setupApp(t *testing.T) (*echo.Echo, *fakeAccountRepo) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	e := echo.New()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer

	sessions := session.NewStore(client)
	jwtService := auth.NewJWTService("test-secret")
	requestContext := middleware.NewRequestContext(jwtService, sessions, false)

	accountRepo := newFakeAccountRepo()
	accountService := service.NewAccountService(accountRepo, jwtService)
	inventoryService := service.NewInventoryService(fakeInventoryRepo{}, cache.New(client))
	reviewService := service.NewReviewService(fakeReviewRepo{})

	pages := handler.NewPages(inventoryService, sessions)
	accountHandler := handler.NewAccountHandler(pages, accountService, reviewService, sessions, false)
	inventoryHandler := handler.NewInventoryHandler(pages, inventoryService, reviewService, sessions)
	reviewHandler := handler.NewReviewHandler(pages, reviewService, sessions)

	Register(e, pages, requestContext, sessions, accountHandler, inventoryHandler, reviewHandler)
	return e, accountRepo
}

func postForm(e *echo.Echo, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sid-1"})
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sid-1"})
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.AuthCookie && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

func registerForm() url.Values {
	return url.Values{
		"account_firstname": {"Jo"},
		"account_lastname":  {"Lee"},
		"account_email":     {"jo@example.com"},
		"account_password":  {"Str0ng!Passw0rd12"},
	}
}

func TestRegisterHappyPath(t *testing.T) {
	e, accounts := setupApp(t)

	rec := postForm(e, "/account/register", registerForm(), nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))

	account, err := accounts.FindByEmail(context.Background(), "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleClient, account.Role)
	assert.NotEqual(t, "Str0ng!Passw0rd12", account.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e, accounts := setupApp(t)

	rec := postForm(e, "/account/register", registerForm(), nil)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = postForm(e, "/account/register", registerForm(), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is already in use.")

	// No duplicate row.
	account, err := accounts.FindByEmail(context.Background(), "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), account.ID)
	assert.Len(t, accounts.accounts, 1)
}

func TestRegisterWeakPassword(t *testing.T) {
	e, _ := setupApp(t)

	form := registerForm()
	form.Set("account_password", "short1!")
	rec := postForm(e, "/account/register", form, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password does not meet requirements")
	// Sticky values survive the redisplay.
	assert.Contains(t, rec.Body.String(), "jo@example.com")
}

func TestLoginWrongPasswordTwice(t *testing.T) {
	e, _ := setupApp(t)
	postForm(e, "/account/register", registerForm(), nil)

	form := url.Values{
		"account_email":    {"jo@example.com"},
		"account_password": {"Wrong!Passw0rd12"},
	}

	for i := 0; i < 2; i++ {
		rec := postForm(e, "/account/login", form, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please check your credentials and try again.")
		assert.Contains(t, rec.Body.String(), "jo@example.com")
		assert.Nil(t, authCookie(t, rec), "no auth cookie on failed login")
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	e, _ := setupApp(t)
	postForm(e, "/account/register", registerForm(), nil)

	// A gated route redirects to login while anonymous.
	rec := get(e, "/account/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))

	// Login sets the auth cookie and redirects to the account page.
	rec = postForm(e, "/account/login", url.Values{
		"account_email":    {"jo@example.com"},
		"account_password": {"Str0ng!Passw0rd12"},
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/", rec.Header().Get("Location"))
	cookie := authCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// The same gated route now renders.
	rec = get(e, "/account/", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Account Management")

	// Logout clears the cookie and redirects home.
	rec = get(e, "/account/logout", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Without the auth cookie the gated route redirects again.
	rec = get(e, "/account/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))
}

func TestStaffRoutesDenyClients(t *testing.T) {
	e, _ := setupApp(t)
	postForm(e, "/account/register", registerForm(), nil)

	rec := postForm(e, "/account/login", url.Values{
		"account_email":    {"jo@example.com"},
		"account_password": {"Str0ng!Passw0rd12"},
	}, nil)
	cookie := authCookie(t, rec)
	require.NotNil(t, cookie)

	rec = get(e, "/inv/", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))
}

func TestRejectedTokenNoticeRendersOnNextView(t *testing.T) {
	e, _ := setupApp(t)

	expired, err := auth.NewJWTService("test-secret").Issue(auth.Identity{
		AccountID: 1,
		FirstName: "Jo",
		LastName:  "Lee",
		Email:     "jo@example.com",
		Role:      model.RoleClient,
	}, -time.Second)
	require.NoError(t, err)

	// The gated request redirects without rendering; the notice queued for
	// the rejected token must survive it.
	rec := get(e, "/account/", []*http.Cookie{{Name: middleware.AuthCookie, Value: expired}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get("Location"))

	// The login page is the next rendered view and shows the notice.
	rec = get(e, "/account/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please log in.")

	// Rendering again must not repeat it.
	rec = get(e, "/account/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Please log in.")
}

func TestErrorPageFor404(t *testing.T) {
	e, _ := setupApp(t)

	rec := get(e, "/no-such-page", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry, we appear to have lost that page.")
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Str0ng!Passw0rd12", true},
		{"short1!A", false},
		{"alllowercase1!aa", false},
		{"ALLUPPERCASE1!AA", false},
		{"NoDigitsHere!!aa", false},
		{"NoSymbolsHere12aa", false},
	}

	underlying := validator.New()
	require.NoError(t, underlying.RegisterValidation("strongpassword", strongPassword))
	v := &CustomValidator{validator: underlying}
	type probe struct {
		Password string `validate:"strongpassword"`
	}
	for _, tt := range tests {
		err := v.Validate(&probe{Password: tt.password})
		if tt.want {
			assert.NoError(t, err, "password %q", tt.password)
		} else {
			assert.Error(t, err, "password %q", tt.password)
		}
	}
}
