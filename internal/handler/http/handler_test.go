package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/mock"
	"github.com/MKhiriev/warehouse-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testConfig = config.StructuredConfig{
	App: config.App{
		FrontendURL:    "http://localhost:3000/",
		AllowedOrigins: []string{"https://warehouse.example.com"},
	},
	Server: config.Server{RequestTimeout: 5 * time.Second},
}

// testServices holds the mocked services behind a test Handler.
type testServices struct {
	auth    *mock.MockAuthService
	reset   *mock.MockResetService
	user    *mock.MockUserService
	product *mock.MockProductService
	contact *mock.MockContactService
	appInfo *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *testServices) {
	t.Helper()

	mocks := &testServices{
		auth:    mock.NewMockAuthService(ctrl),
		reset:   mock.NewMockResetService(ctrl),
		user:    mock.NewMockUserService(ctrl),
		product: mock.NewMockProductService(ctrl),
		contact: mock.NewMockContactService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:    mocks.auth,
		ResetService:   mocks.reset,
		UserService:    mocks.user,
		ProductService: mocks.product,
		ContactService: mocks.contact,
		AppInfoService: mocks.appInfo,
	}, testConfig, logger.Nop())

	return h, mocks
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig, logger.Nop())

	require.NotNil(t, h)
}

func TestNewHandler_StoresServicesAndLogger(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()
	h := NewHandler(svc, testConfig, log)

	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
}

func TestNewHandler_AllowedOrigins(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig, logger.Nop())

	assert.Contains(t, h.allowedOrigins, "http://localhost:3000")
	assert.Contains(t, h.allowedOrigins, "https://warehouse.example.com")
	assert.Len(t, h.allowedOrigins, 2)
}

func TestNewHandler_SecureCookiesOutsideDevelopment(t *testing.T) {
	assert.True(t, NewHandler(&service.Services{}, testConfig, logger.Nop()).secureCookies)

	dev := testConfig
	dev.App.Environment = config.EnvironmentDevelopment
	assert.False(t, NewHandler(&service.Services{}, dev, logger.Nop()).secureCookies)
}

func TestNewHandler_DefaultUploadLimit(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig, logger.Nop())
	assert.Equal(t, defaultMaxUploadSize, h.maxUploadSize)
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register. Requests are
// sent without a body or session, so handlers fail early without reaching
// the services.
var expectedRoutes = []routeCase{
	{http.MethodGet, "/"},
	{http.MethodGet, "/api/version/"},
	{http.MethodPost, "/api/users/register"},
	{http.MethodPost, "/api/users/login"},
	{http.MethodGet, "/api/users/logout"},
	{http.MethodGet, "/api/users/loggedin"},
	{http.MethodPost, "/api/users/forgotpassword"},
	{http.MethodPut, "/api/users/resetpassword/abc"},
	{http.MethodGet, "/api/users/getuser"},
	{http.MethodPatch, "/api/users/updateuser"},
	{http.MethodPatch, "/api/users/changepassword"},
	{http.MethodPost, "/api/products"},
	{http.MethodGet, "/api/products"},
	{http.MethodGet, "/api/products/p1"},
	{http.MethodPatch, "/api/products/p1"},
	{http.MethodDelete, "/api/products/p1"},
	{http.MethodPost, "/api/contact"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mocks := newTestHandler(t, ctrl)
	mocks.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0").AnyTimes()
	router := h.Init()

	for _, tc := range expectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code,
				"route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

func TestInit_ProtectedRoutesRequireSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	for _, tc := range []routeCase{
		{http.MethodGet, "/api/users/getuser"},
		{http.MethodGet, "/api/products"},
		{http.MethodDelete, "/api/products/p1"},
		{http.MethodPost, "/api/contact"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"message":"Not authorized, please login"}`, rec.Body.String())
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)
	router := h.Init()

	// POST /api/version/ is not registered, only GET is.
	req := httptest.NewRequest(http.MethodPost, "/api/version/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_Welcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Warehouse Wizard!!!", rec.Body.String())
}

func TestInit_SetsTraceID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}
