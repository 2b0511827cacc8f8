package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/database"
	"github.com/htw-hub/questboard-api/internal/dto"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
	"github.com/htw-hub/questboard-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	deps     Dependencies
	userRepo repository.UserRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	taskService := services.NewTaskService(taskRepo, userRepo)
	deps := Dependencies{
		UserRepo:            userRepo,
		AuthService:         services.NewAuthService(userRepo),
		TaskService:         taskService,
		AnalyticsService:    services.NewAnalyticsService(taskRepo, userRepo, historyRepo),
		UserService:         services.NewUserService(userRepo, historyRepo),
		OrganizationService: services.NewOrganizationService(repository.NewOrganizationRepository(db)),
		AIService:           services.NewAIService(""),
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, deps)

	return testEnv{db: db, router: r, deps: deps, userRepo: userRepo}
}

// do sends a JSON request through the router, attaching the given session cookies
func (env testEnv) do(t *testing.T, method, url string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login signs in through the mock login endpoint and returns the session cookies
func (env testEnv) login(t *testing.T, role models.UserRole, email string) ([]*http.Cookie, dto.UserDTO) {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"role":  string(role),
		"email": email,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		User dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies, response.User
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"role": "organizer"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message  string      `json:"message"`
		User     dto.UserDTO `json:"user"`
		Redirect string      `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Login successful", response.Message)
	require.Equal(t, "/onboarding/organization", response.Redirect)
	require.Equal(t, models.RoleOrganizer, response.User.Role)
	require.Equal(t, "organizer@example.com", *response.User.Email)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_LoginInvalidRole(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"role": "admin"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_SessionLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/user", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/auth/status", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"authenticated": false, "user": null}`, w.Body.String())

	cookies, user := env.login(t, models.RoleTasker, "mike@htw.com")

	w = env.do(t, http.MethodGet, "/api/auth/user", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var current dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
	require.Equal(t, user.ID, current.ID)

	w = env.do(t, http.MethodGet, "/api/auth/status", nil, cookies)
	var status struct {
		Authenticated bool        `json:"authenticated"`
		User          dto.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.True(t, status.Authenticated)
	require.Equal(t, user.ID, status.User.ID)

	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/auth/user", nil, w.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.deps.AuthService.Login(context.Background(), services.LoginInput{Role: models.RoleTasker})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	NewAuthHandler(env.deps.AuthService).GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, []string{"Development", "Design"}, response.Skills)
	require.Equal(t, 50, response.ProfileCompletion)
}
