package employees_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/roster/internal/employees"
	"github.com/JaimeStill/roster/pkg/pagination"
	"github.com/JaimeStill/roster/pkg/routes"
)

type fakeRegistry struct {
	records  map[string]employees.Employee
	lastPage pagination.PageRequest
	lastFilt employees.Filters
}

func (f *fakeRegistry) Handler(int64) *employees.Handler { return nil }

func (f *fakeRegistry) List(
	_ context.Context,
	page pagination.PageRequest,
	filters employees.Filters,
) (*pagination.PageResult[employees.Employee], error) {
	f.lastPage = page
	f.lastFilt = filters

	var data []employees.Employee
	for _, e := range f.records {
		data = append(data, e)
	}
	result := pagination.NewPageResult(data, len(data), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeRegistry) FindByIdentity(_ context.Context, codename string) (*employees.Employee, error) {
	e, ok := f.records[codename]
	if !ok {
		return nil, employees.ErrNotFound
	}
	return &e, nil
}

func (f *fakeRegistry) InsertIfAbsent(_ context.Context, e employees.Employee) (*employees.Employee, error) {
	if _, ok := f.records[e.Codename]; ok {
		return nil, employees.ErrDuplicate
	}
	f.records[e.Codename] = e
	return &e, nil
}

func newMux(reg *fakeRegistry) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	h := employees.NewHandler(reg, logger, cfg, 1024)

	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func TestHandlerFind(t *testing.T) {
	reg := &fakeRegistry{records: map[string]employees.Employee{
		"JOAO123": {Codename: "JOAO123", FullName: "João"},
	}}
	mux := newMux(reg)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"exact", "/employees/JOAO123", http.StatusOK},
		{"normalized path", "/employees/jo%C3%A3o123", http.StatusOK},
		{"missing", "/employees/NOBODY", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if tt.wantStatus == http.StatusNotFound && body["message"] != employees.ErrNotFound.Error() {
				t.Errorf("message: got %v", body["message"])
			}
		})
	}
}

func TestHandlerList(t *testing.T) {
	reg := &fakeRegistry{records: map[string]employees.Employee{
		"JOAO123": {Codename: "JOAO123"},
	}}
	mux := newMux(reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees?page=2&page_size=5&city=rio", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if reg.lastPage.Page != 2 || reg.lastPage.PageSize != 5 {
		t.Errorf("page: got %d/%d, want 2/5", reg.lastPage.Page, reg.lastPage.PageSize)
	}
	if reg.lastFilt.City == nil || *reg.lastFilt.City != "rio" {
		t.Errorf("city filter: got %v", reg.lastFilt.City)
	}
}

func TestHandlerSearch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"page": 1, "page_size": 500, "state": "RJ", "sort": "-FullName"}`, http.StatusOK},
		{"malformed", `{"page": `, http.StatusBadRequest},
		{"too large", `{"search": "` + strings.Repeat("a", 2048) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &fakeRegistry{records: map[string]employees.Employee{}}
			mux := newMux(reg)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/employees/search", strings.NewReader(tt.body))
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				if reg.lastPage.PageSize != 100 {
					t.Errorf("page size should clamp to 100, got %d", reg.lastPage.PageSize)
				}
				if len(reg.lastPage.Sort) != 1 || !reg.lastPage.Sort[0].Descending {
					t.Errorf("sort: got %+v", reg.lastPage.Sort)
				}
			}
		})
	}
}
