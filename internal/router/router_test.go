package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proshopcms/internal/content"
	"github.com/proshopcms/internal/db"
	"github.com/proshopcms/internal/handler"
	"github.com/proshopcms/internal/service"
	"github.com/proshopcms/internal/storage"
)

func newTestAPI(t *testing.T) *handler.API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-test-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(db.DriverSQLite, dsn, true)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.EnsureUser(gdb, "admin@example.com", "admin-pass"))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	media := content.NewMediaManager(storage.NewLocalBucket(t.TempDir(), "/static/uploads"))
	t.Cleanup(media.Wait)

	opts := service.CatalogOptions{SaveTimeout: 5 * time.Second}
	settings := service.NewSystemSettingService(gdb, service.SystemSettings{})
	return handler.NewAPI(handler.Options{
		DB:         gdb,
		Catalog:    service.NewCatalog(gdb, media, opts),
		About:      service.NewAboutService(gdb, media, opts),
		Auth:       service.NewAuthService(gdb, "test-secret", nil),
		System:     settings,
		Copywriter: service.NewCopywriterService(settings, nil),
	})
}

func TestSetupRouterServesUploads(t *testing.T) {
	uploadDir := t.TempDir()
	fileContent := []byte("hello uploads")
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "example.txt"), fileContent, 0o644))

	r := SetupRouter(newTestAPI(t), Config{SessionSecret: "test-secret", UploadDir: uploadDir})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/uploads/example.txt", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, string(fileContent), rr.Body.String())
}

func TestSetupRouterPlainEndpoints(t *testing.T) {
	r := SetupRouter(newTestAPI(t), Config{SessionSecret: "test-secret"})

	for _, path := range []string{"/ping", "/healthz", "/metrics"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r := SetupRouter(newTestAPI(t), Config{SessionSecret: "test-secret"})

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/admin/api/products"},
		{http.MethodPost, "/admin/api/faqs"},
		{http.MethodDelete, "/admin/api/awards/1"},
		{http.MethodGet, "/admin/api/dashboard"},
		{http.MethodPut, "/admin/api/settings"},
		{http.MethodPost, "/admin/api/ai/generate"},
		{http.MethodPost, "/admin/api/auth/password/update"},
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(target.method, target.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target.path)
	}
}

func TestLoginOpensAdminRoutes(t *testing.T) {
	r := SetupRouter(newTestAPI(t), Config{SessionSecret: "test-secret"})

	body, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "admin-pass"})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestPublicRoutesSetLanguageHeaders(t *testing.T) {
	r := SetupRouter(newTestAPI(t), Config{SessionSecret: "test-secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/faqs?lang=en", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "en-US", rr.Header().Get("Content-Language"))
	assert.Contains(t, strings.Join(rr.Header().Values("Vary"), ","), "Cookie")
	assert.Equal(t, "public, max-age=60", rr.Header().Get("Cache-Control"))
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig(nil)
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)

	restricted := corsConfig([]string{"https://proshop.example"})
	assert.False(t, restricted.AllowAllOrigins)
	assert.True(t, restricted.AllowCredentials)
	assert.Equal(t, []string{"https://proshop.example"}, restricted.AllowOrigins)
}

func TestCORSPreflightForConfiguredOrigin(t *testing.T) {
	r := SetupRouter(newTestAPI(t), Config{
		SessionSecret: "test-secret",
		CORSOrigins:   []string{"https://proshop.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://proshop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://proshop.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}
