package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/config"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/api/handler"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/service"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/jwt"
)

func setupRouter(t *testing.T) (http.Handler, *jwt.Manager) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:      8080,
			CORS:      config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
			BodyLimit: 1 << 20,
		},
		Auth: config.AuthConfig{JWTSecret: "router-test-secret-value", AccessTokenTTL: time.Hour},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// handlers are never reached by these tests
	h := handler.NewHandler(&service.Service{})
	r, err := Setup(cfg, h, jwtMgr, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	return r, jwtMgr
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
}

func TestAPIRequiresToken(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{"/api/v1/timesheets", "/api/v1/projects", "/api/v1/timesheets/export.ics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestReviewerRoutesRejectEmployees(t *testing.T) {
	r, jwtMgr := setupRouter(t)
	token, err := jwtMgr.GenerateAccessToken("user-1", "employee")
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/api/v1/timesheets/weekly", "/api/v1/timesheets/export"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", path, w.Code)
		}
	}
}

func TestPreflight(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/timesheets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
