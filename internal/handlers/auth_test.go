package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diet-tracker-api/internal/config"
	"github.com/yukikurage/diet-tracker-api/internal/constants"
	"github.com/yukikurage/diet-tracker-api/internal/database"
	"github.com/yukikurage/diet-tracker-api/internal/dto"
	"github.com/yukikurage/diet-tracker-api/internal/middleware"
	"github.com/yukikurage/diet-tracker-api/internal/repository"
	"github.com/yukikurage/diet-tracker-api/internal/services"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db           *gorm.DB
	handler      *AuthHandler
	authService  *services.AuthService
	tokenService *services.TokenService
	userRepo     repository.UserRepository
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(&config.Config{DBDriver: "sqlite", DBPath: ":memory:", GinMode: "release"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService("test-secret", time.Hour, nil)
	socialService := services.NewSocialLoginService(userRepo, nil, authService)
	handler := NewAuthHandler(authService, socialService, tokenService, nil)

	return authTestEnv{
		db:           db,
		handler:      handler,
		authService:  authService,
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

func (env authTestEnv) router() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.POST("/api/user/create", env.handler.Signup)
	r.POST("/api/user/token", env.handler.Token)
	r.POST("/api/user/google_token", env.handler.GoogleToken)

	auth := middleware.RequireAuth(env.tokenService, env.userRepo)
	r.POST("/api/user/logout", auth, env.handler.Logout)
	r.GET("/api/user/me", auth, env.handler.GetCurrentUser)
	r.PUT("/api/user/me", auth, env.handler.UpdateCurrentUser)
	r.PATCH("/api/user/me", auth, env.handler.UpdateCurrentUser)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, payload interface{}, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := doJSON(t, r, http.MethodPost, "/api/user/create", map[string]string{
		"email":    "new@Example.com",
		"password": "supersecret",
		"name":     "New User",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Equal(t, "New User", resp.Name)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodPost, "/api/user/create", map[string]string{
		"email":    "new@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
}

func TestAuthHandler_SignupValidation(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := doJSON(t, r, http.MethodPost, "/api/user/create", map[string]string{
		"email":    "not-an-email",
		"password": "abc",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
	assert.Contains(t, resp.Details, "email")
	assert.Contains(t, resp.Details, "password")
}

func TestAuthHandler_Token(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	_, err := env.authService.Signup(services.SignupInput{Email: "login@example.com", Password: "supersecret"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/user/token", map[string]string{
		"email":    "login@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, w.Result().Cookies())

	w = doJSON(t, r, http.MethodGet, "/api/user/me", nil, bearer(resp.Token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "login@example.com")

	w = doJSON(t, r, http.MethodGet, "/api/user/me", nil, http.Header{"Authorization": []string{"Token " + resp.Token}})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_TokenInvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	_, err := env.authService.Signup(services.SignupInput{Email: "login@example.com", Password: "supersecret"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/user/token", map[string]string{
		"email":    "login@example.com",
		"password": "wrongpass",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/user/token", map[string]string{
		"email": "login@example.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_SessionLogin(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	_, err := env.authService.Signup(services.SignupInput{Email: "session@example.com", Password: "supersecret"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/user/token", map[string]string{
		"email":    "session@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "session@example.com")

	req = httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The logout response clears the session cookie.
	req = httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdateCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	user, err := env.authService.Signup(services.SignupInput{Email: "me@example.com", Password: "supersecret"})
	require.NoError(t, err)
	token, err := env.tokenService.Issue(user)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, "/api/user/me", map[string]string{"name": "Renamed"}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")

	w = doJSON(t, r, http.MethodPut, "/api/user/me", map[string]string{"name": "Again"}, bearer(token))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodPut, "/api/user/me", map[string]string{
		"email":    "me2@example.com",
		"password": "newsecret",
	}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)

	_, err = env.authService.Authenticate(services.LoginInput{Email: "me2@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestAuthHandler_Unauthenticated(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := doJSON(t, r, http.MethodGet, "/api/user/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/user/me", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GoogleTokenNotConfigured(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := doJSON(t, r, http.MethodPost, "/api/user/google_token", map[string]string{"code": "abc"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
