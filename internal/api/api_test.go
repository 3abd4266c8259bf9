package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/roster/internal/api"
	"github.com/JaimeStill/roster/internal/config"
	"github.com/JaimeStill/roster/internal/infrastructure"
	"github.com/JaimeStill/roster/pkg/convert"
	"github.com/JaimeStill/roster/pkg/database"
	"github.com/JaimeStill/roster/pkg/middleware"
	"github.com/JaimeStill/roster/pkg/openapi"
	"github.com/JaimeStill/roster/pkg/pagination"
	"github.com/JaimeStill/roster/pkg/storage"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "30s",
			WriteTimeout:    "2m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "roster",
			User:            "roster",
			Password:        "roster",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			Backend:       storage.BackendLocal,
			PublicBaseURL: "http://localhost:8080/api/artifacts",
			Local:         storage.LocalConfig{Root: t.TempDir()},
		},
		Convert: convert.Config{MaxEngines: 1, Timeout: "30s"},
		API: config.APIConfig{
			BasePath:    "/api",
			MaxBodySize: "64KB",
			CORS:        middleware.CORSConfig{Enabled: false},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
			OpenAPI: openapi.Config{Title: "Roster API"},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
		LogLevel:        "error",
	}
}

func setupInfra(t *testing.T, cfg *config.Config) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() { infra.Database.Connection().Close() })
	return infra
}

func serve(t *testing.T, cfg *config.Config, infra *infrastructure.Infrastructure, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.Serve(rec, req)
	return rec
}

func TestNewModule(t *testing.T) {
	cfg := validConfig(t)

	m, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig(t)
	runtime := api.NewRuntime(cfg, setupInfra(t, cfg))

	if runtime.Pagination.DefaultPageSize != 20 || runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination: got %d/%d", runtime.Pagination.DefaultPageSize, runtime.Pagination.MaxPageSize)
	}
	if runtime.MaxBodySize != 64*1024 {
		t.Errorf("max body size: got %d", runtime.MaxBodySize)
	}
	if runtime.Logger == nil || runtime.Database == nil || runtime.Storage == nil {
		t.Error("runtime should carry the infrastructure systems")
	}
	if runtime.Pipeline == nil {
		t.Error("pipeline metrics should be registered")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig(t)
	domain := api.NewDomain(api.NewRuntime(cfg, setupInfra(t, cfg)))

	if domain.Employees == nil || domain.Onboarding == nil {
		t.Fatal("NewDomain() should create every domain system")
	}
}

func TestOpenAPIDocument(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	rec := serve(t, cfg, infra, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := map[string]string{
		"/employees":                     "post",
		"/createEmployee":                "post",
		"/employees/search":              "post",
		"/employees/{codename}":          "get",
		"/employees/{codename}/document": "post",
		"/artifacts/{key}":               "get",
	}
	for path, method := range want {
		item, ok := doc.Paths[path]
		if !ok {
			t.Errorf("missing path %s", path)
			continue
		}
		if _, ok := item[method]; !ok {
			t.Errorf("path %s missing %s operation", path, method)
		}
	}
}

func TestArtifactRoute(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	if err := infra.Storage.Start(infra.Lifecycle); err != nil {
		t.Fatalf("Storage.Start() error = %v", err)
	}
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() error = %v", err)
	}

	err := infra.Storage.Upload(context.Background(), "JOAO123", strings.NewReader("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing", "/api/artifacts/JOAO123", http.StatusOK},
		{"missing", "/api/artifacts/NOBODY", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, cfg, setupInfraFrom(t, cfg, infra), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				body, _ := io.ReadAll(rec.Body)
				if string(body) != "%PDF-1.4" {
					t.Errorf("body: got %q", body)
				}
				if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
					t.Errorf("content-type: got %s", ct)
				}
			}
		})
	}
}

func TestArtifactRouteOnlyForLocalBackend(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage = storage.Config{
		Backend: storage.BackendS3,
		S3:      storage.S3Config{Bucket: "employee-files", Region: "us-east-1"},
	}
	infra := setupInfra(t, cfg)

	rec := serve(t, cfg, infra, httptest.NewRequest(http.MethodGet, "/api/artifacts/JOAO123", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(`{"rawcodename": `))
	rec := serve(t, cfg, infra, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

// setupInfraFrom shares the storage of base with a fresh metrics registry so
// each module registers its pipeline metrics once.
func setupInfraFrom(t *testing.T, cfg *config.Config, base *infrastructure.Infrastructure) *infrastructure.Infrastructure {
	t.Helper()
	infra := setupInfra(t, cfg)
	infra.Storage = base.Storage
	return infra
}
