package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quorumhub/internal/handlers"
	"quorumhub/internal/middleware"
	"quorumhub/internal/models"
	"quorumhub/internal/repositories"
	"quorumhub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "password123"
)

// setupApp builds the full Fiber app over an in-memory SQLite database
// with one seeded admin user. upstreamURL feeds the version proxy.
func setupApp(t *testing.T, upstreamURL string) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Download{}, &models.Video{}, &models.Settings{}, &models.Session{})
	assert.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	sessionRepo := repositories.NewGORMSessionRepository(db)
	downloadRepo := repositories.NewGORMDownloadRepository(db)
	videoRepo := repositories.NewGORMVideoRepository(db)
	settingsRepo := repositories.NewGORMSettingsRepository(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.DefaultCost)
	assert.NoError(t, err)
	err = userRepo.Create(&models.User{Username: testAdminUsername, Password: string(hashed)})
	assert.NoError(t, err)

	authService := services.NewAuthService(userRepo, sessionRepo, "test_jwt_secret", 24*time.Hour)
	downloadService := services.NewDownloadService(downloadRepo, nil)
	videoService := services.NewVideoService(videoRepo, nil)
	settingsService := services.NewSettingsService(settingsRepo, nil)

	guard := middleware.SessionRequired(authService)
	app := fiber.New()
	handlers.NewAuthHandler(authService).RegisterRoutes(app)
	handlers.NewDownloadHandler(downloadService).RegisterRoutes(app, guard)
	handlers.NewVideoHandler(videoService).RegisterRoutes(app, guard)
	handlers.NewSettingsHandler(settingsService).RegisterRoutes(app, guard)
	handlers.NewProxyHandler(upstreamURL, 2*time.Second).RegisterRoutes(app)

	return app
}

// login authenticates the seeded admin and returns the session cookie
// value.
func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie.Value
		}
	}
	t.Fatal("login response did not set a session cookie")
	return ""
}

// doJSON issues a request, optionally with a session cookie and a JSON
// body, and returns the response.
func doJSON(t *testing.T, app *fiber.App, method, path, sessionToken string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionToken})
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestDownloadCRUDFlow(t *testing.T) {
	app := setupApp(t, "")
	token := login(t, app)

	// Create with a non-default status.
	resp := doJSON(t, app, http.MethodPost, "/api/downloads", token, map[string]string{
		"title":       "Quorum Legacy",
		"description": "Older version for compatibility.",
		"url":         "https://example.com/download/legacy",
		"status":      "downgrade_required",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Download
	decodeInto(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Quorum Legacy", created.Title)
	assert.Equal(t, models.StatusDowngradeRequired, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	// Round trip: the public list carries exactly that entry unchanged.
	resp = doJSON(t, app, http.MethodGet, "/api/downloads", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Download
	decodeInto(t, resp, &list)
	assert.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "Quorum Legacy", list[0].Title)
	assert.Equal(t, "Older version for compatibility.", list[0].Description)
	assert.Equal(t, "https://example.com/download/legacy", list[0].URL)
	assert.Equal(t, models.StatusDowngradeRequired, list[0].Status)

	// Partial update: only the status changes, all other fields survive.
	resp = doJSON(t, app, http.MethodPut, "/api/downloads/"+created.ID, token, map[string]string{
		"status": "working",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Download
	decodeInto(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, models.StatusWorking, updated.Status)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.URL, updated.URL)

	// Update on a missing id is a 404, not fabricated data.
	resp = doJSON(t, app, http.MethodPut, "/api/downloads/no-such-id", token, map[string]string{
		"status": "down",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Delete is 204 with an empty body, and idempotent.
	resp = doJSON(t, app, http.MethodDelete, "/api/downloads/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodDelete, "/api/downloads/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/downloads", "", nil)
	decodeInto(t, resp, &list)
	assert.Empty(t, list)
}

func TestDownloadValidation(t *testing.T) {
	app := setupApp(t, "")
	token := login(t, app)

	// Missing required fields produce a 400 naming the field.
	resp := doJSON(t, app, http.MethodPost, "/api/downloads", token, map[string]string{
		"description": "no title or url",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeInto(t, resp, &body)
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["field"])

	// Out-of-enum status is rejected before anything is stored.
	resp = doJSON(t, app, http.MethodPost, "/api/downloads", token, map[string]string{
		"title":       "Bad",
		"description": "x",
		"url":         "https://example.com/x",
		"status":      "exploded",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/downloads", "", nil)
	var list []models.Download
	decodeInto(t, resp, &list)
	assert.Empty(t, list)
}

func TestMutationsRequireSession(t *testing.T) {
	app := setupApp(t, "")

	cases := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/downloads", map[string]string{"title": "x", "description": "y", "url": "https://example.com/z"}},
		{http.MethodPut, "/api/downloads/some-id", map[string]string{"status": "down"}},
		{http.MethodDelete, "/api/downloads/some-id", nil},
		{http.MethodPost, "/api/videos", map[string]string{"title": "x", "description": "y", "url": "https://example.com/z"}},
		{http.MethodPut, "/api/videos/some-id", map[string]string{"title": "x"}},
		{http.MethodDelete, "/api/videos/some-id", nil},
		{http.MethodPut, "/api/settings", map[string]string{"newUiStatus": "down"}},
	}
	for _, tc := range cases {
		resp := doJSON(t, app, tc.method, tc.path, "", tc.body)
		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
		resp.Body.Close()
	}

	// Nothing was stored by any of the rejected calls.
	resp := doJSON(t, app, http.MethodGet, "/api/downloads", "", nil)
	var downloads []models.Download
	decodeInto(t, resp, &downloads)
	assert.Empty(t, downloads)

	resp = doJSON(t, app, http.MethodGet, "/api/videos", "", nil)
	var videos []models.Video
	decodeInto(t, resp, &videos)
	assert.Empty(t, videos)

	resp = doJSON(t, app, http.MethodGet, "/api/settings", "", nil)
	var settings models.Settings
	decodeInto(t, resp, &settings)
	assert.Equal(t, models.StatusWorking, settings.NewUIStatus)
}

func TestSettingsLifecycle(t *testing.T) {
	app := setupApp(t, "")

	// First read on an empty table creates and persists the defaults.
	resp := doJSON(t, app, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var first models.Settings
	decodeInto(t, resp, &first)
	assert.Equal(t, models.SettingsID, first.ID)
	assert.Equal(t, models.StatusWorking, first.OldUIStatus)
	assert.Equal(t, models.StatusWorking, first.NewUIStatus)

	// Second read returns the identical row.
	resp = doJSON(t, app, http.MethodGet, "/api/settings", "", nil)
	var second models.Settings
	decodeInto(t, resp, &second)
	assert.Equal(t, first, second)

	// Partial update keeps the untouched pair.
	token := login(t, app)
	resp = doJSON(t, app, http.MethodPut, "/api/settings", token, map[string]string{
		"newUiUrl":    "https://example.com/new-ui",
		"newUiStatus": "down",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Settings
	decodeInto(t, resp, &updated)
	assert.Equal(t, "https://example.com/new-ui", updated.NewUIURL)
	assert.Equal(t, models.StatusDown, updated.NewUIStatus)
	assert.Equal(t, first.OldUIURL, updated.OldUIURL)
	assert.Equal(t, first.OldUIStatus, updated.OldUIStatus)

	resp = doJSON(t, app, http.MethodPut, "/api/settings", token, map[string]string{
		"newUiStatus": "nuked",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestVideoCRUDFlow(t *testing.T) {
	app := setupApp(t, "")
	token := login(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/videos", token, map[string]string{
		"title":       "Quorum Hub - Official Trailer",
		"description": "Check out the latest features.",
		"url":         "https://www.youtube.com/embed/abc123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Video
	decodeInto(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	newTitle := "Quorum Hub - Trailer (v2)"
	resp = doJSON(t, app, http.MethodPut, "/api/videos/"+created.ID, token, map[string]string{
		"title": newTitle,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Video
	decodeInto(t, resp, &updated)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, created.URL, updated.URL)

	resp = doJSON(t, app, http.MethodPut, "/api/videos/no-such-id", token, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/videos/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthFlow(t *testing.T) {
	app := setupApp(t, "")

	// No session: me is 401.
	resp := doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Wrong password twice in a row: 401 both times, no lockout.
	for i := 0; i < 2; i++ {
		resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": testAdminUsername,
			"password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}

	// Correct login still works and never leaks credential material.
	body, _ := json.Marshal(map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	loginResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, loginResp.StatusCode)

	var payload map[string]interface{}
	decodeInto(t, loginResp, &payload)
	assert.Equal(t, testAdminUsername, payload["username"])
	assert.NotContains(t, payload, "password")

	var token string
	for _, cookie := range loginResp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			token = cookie.Value
		}
	}
	assert.NotEmpty(t, token)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]interface{}
	decodeInto(t, resp, &me)
	assert.Equal(t, testAdminUsername, me["username"])
	assert.NotContains(t, me, "password")

	// Logout revokes the session server-side; the cookie value the
	// client still holds no longer authenticates.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Logout again with the dead cookie is still a 200.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestVersionProxy(t *testing.T) {
	t.Run("upstream healthy", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"clientVersionUpload":"version-abc123"}`)
		}))
		defer upstream.Close()

		app := setupApp(t, upstream.URL)
		resp := doJSON(t, app, http.MethodGet, "/api/proxy/roblox-version", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeInto(t, resp, &body)
		assert.Equal(t, "version-abc123", body["version"])
	})

	t.Run("upstream failing", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		app := setupApp(t, upstream.URL)
		resp := doJSON(t, app, http.MethodGet, "/api/proxy/roblox-version", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeInto(t, resp, &body)
		assert.Equal(t, "v0.640.0.6400650", body["version"])
	})

	t.Run("upstream unreachable", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := upstream.URL
		upstream.Close() // nothing listens anymore

		app := setupApp(t, url)
		resp := doJSON(t, app, http.MethodGet, "/api/proxy/roblox-version", "", nil)
		// Never a 5xx, and never an empty version.
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeInto(t, resp, &body)
		assert.Equal(t, "Checking...", body["version"])
		assert.NotEmpty(t, body["version"])
	})
}
