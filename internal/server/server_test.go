package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/itsatony/stationhub/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
			AllowedOrigins:  []string{"https://ops.example.com"},
		},
		Database:   config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Session:    config.SessionConfig{CookieName: "stationhub_session", TTL: time.Hour},
		Monitoring: config.MonitoringConfig{Namespace: "stationhub"},
		Events:     config.EventsConfig{Topic: "stationhub.history"},
		Bootstrap: config.BootstrapConfig{
			AdminUsername: "admin",
			AdminEmail:    "admin@example.com",
			AdminPassword: "admin123",
		},
	}
}

func setupServer(t *testing.T) *Server {
	t.Helper()

	srv := New(testConfig())
	if err := srv.Init(context.Background()); err != nil {
		t.Fatalf("failed to init server: %v", err)
	}
	t.Cleanup(srv.Close)
	if err := srv.bootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("failed to bootstrap admin: %v", err)
	}
	return srv
}

func request(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)

	rec := request(t, srv.Handler(), http.MethodGet, "/v1/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
	if _, ok := body["version"]; !ok {
		t.Error("expected version in health body")
	}
}

func TestHealthReportsClosedDatabase(t *testing.T) {
	srv := setupServer(t)
	srv.db.Close()

	rec := request(t, srv.Handler(), http.MethodGet, "/v1/health", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	srv := setupServer(t)

	if err := srv.bootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	rec := request(t, srv.Handler(), http.MethodPost, "/v1/auth/login", "", `{"username":"admin","password":"admin123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("bootstrap admin cannot log in: %d %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsAfterStationDelete(t *testing.T) {
	srv := setupServer(t)
	h := srv.Handler()

	rec := request(t, h, http.MethodPost, "/v1/auth/login", "", `{"username":"admin","password":"admin123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("invalid login body: %v", err)
	}

	rec = request(t, h, http.MethodPost, "/v1/stations", login.Token, `{"name":"Roque de los Muchachos","location":"La Palma"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create station failed: %d %s", rec.Code, rec.Body.String())
	}
	var station struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &station); err != nil {
		t.Fatalf("invalid station body: %v", err)
	}

	rec = request(t, h, http.MethodDelete, "/v1/stations/"+station.ID, login.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete station failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = request(t, h, http.MethodGet, "/v1/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
	metrics := rec.Body.String()
	for _, want := range []string{
		`stationhub_mutations_total{action="created"} 1`,
		`stationhub_mutations_total{action="station_deleted"} 1`,
		`stationhub_cleanup_events_total{event="station.deleted"} 1`,
	} {
		if !strings.Contains(metrics, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/stations", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example.com" {
		t.Errorf("unexpected allow-origin %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials to be allowed, got %q", got)
	}
}
