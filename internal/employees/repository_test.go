package employees_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/JaimeStill/roster/internal/employees"
	"github.com/JaimeStill/roster/pkg/pagination"
)

var columns = []string{
	"codename", "fullname", "canac", "address", "neighborhood", "city", "state", "cpf", "rg",
	"birth_date", "hiring_date", "emergency_contact", "bloodtype", "cellphone", "email", "cep",
	"created_at", "updated_at",
}

var written = time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)

func employeeRow(codename string, state any) []driver.Value {
	return []driver.Value{
		codename, "João Da Silva", nil, "Rua A, 10", "Copacabana", "Rio De Janeiro", state,
		"12345678900", "123456789", "1990-01-01", "2024-02-01", "Maria", "O+", "21999990000",
		"joao@example.com", "20040002", written, written,
	}
}

func insertArgs() []driver.Value {
	args := make([]driver.Value, 16)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	args[0] = "JOAO123"
	return args
}

func newRegistry(t *testing.T) (employees.System, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

	return employees.New(db, logger, cfg), mock
}

func TestFindByIdentity(t *testing.T) {
	sys, mock := newRegistry(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM public.employees e WHERE e.codename = $1")).
		WithArgs("JOAO123").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(employeeRow("JOAO123", "RDJ")...))

	e, err := sys.FindByIdentity(context.Background(), "JOAO123")
	if err != nil {
		t.Fatalf("FindByIdentity() error = %v", err)
	}

	if e.Codename != "JOAO123" {
		t.Errorf("codename: got %q", e.Codename)
	}
	if e.State == nil || *e.State != "RDJ" {
		t.Errorf("state: got %v, want RDJ", e.State)
	}
	if e.Canac != nil {
		t.Errorf("canac: got %q, want absent", *e.Canac)
	}
	if !e.UpdatedAt.Equal(written) {
		t.Errorf("updatedAt: got %v, want %v", e.UpdatedAt, written)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestFindByIdentityNotFound(t *testing.T) {
	sys, mock := newRegistry(t)

	mock.ExpectQuery("FROM public.employees").
		WithArgs("GHOST").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := sys.FindByIdentity(context.Background(), "GHOST")
	if !errors.Is(err, employees.ErrNotFound) {
		t.Fatalf("FindByIdentity() error = %v, want %v", err, employees.ErrNotFound)
	}
}

func TestInsertIfAbsent(t *testing.T) {
	sys, mock := newRegistry(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (codename) DO NOTHING")).
		WithArgs(insertArgs()...).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(employeeRow("JOAO123", nil)...))
	mock.ExpectCommit()

	e, err := sys.InsertIfAbsent(context.Background(), employees.Employee{Codename: "JOAO123"})
	if err != nil {
		t.Fatalf("InsertIfAbsent() error = %v", err)
	}

	if e.Codename != "JOAO123" {
		t.Errorf("codename: got %q", e.Codename)
	}
	if e.CreatedAt.IsZero() {
		t.Error("createdAt should be set by the write")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertIfAbsentConflict(t *testing.T) {
	sys, mock := newRegistry(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (codename) DO NOTHING")).
		WithArgs(insertArgs()...).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectRollback()

	_, err := sys.InsertIfAbsent(context.Background(), employees.Employee{Codename: "JOAO123"})
	if !errors.Is(err, employees.ErrDuplicate) {
		t.Fatalf("InsertIfAbsent() error = %v, want %v", err, employees.ErrDuplicate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInsertIfAbsentStoreFailure(t *testing.T) {
	sys, mock := newRegistry(t)
	errConn := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO employees").
		WithArgs(insertArgs()...).
		WillReturnError(errConn)
	mock.ExpectRollback()

	_, err := sys.InsertIfAbsent(context.Background(), employees.Employee{Codename: "JOAO123"})
	if !errors.Is(err, errConn) {
		t.Fatalf("InsertIfAbsent() error = %v, want wrapped %v", err, errConn)
	}
	if errors.Is(err, employees.ErrDuplicate) {
		t.Error("store failure must not be reported as a duplicate")
	}
}

func TestList(t *testing.T) {
	sys, mock := newRegistry(t)

	search := "joao"
	state := "RDJ"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM public.employees e WHERE")).
		WithArgs("%joao%", "%joao%", "%joao%", "RDJ").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY e.created_at DESC LIMIT 20 OFFSET 0")).
		WithArgs("%joao%", "%joao%", "%joao%", "RDJ").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(employeeRow("JOAO123", "RDJ")...))

	result, err := sys.List(
		context.Background(),
		pagination.PageRequest{Search: &search},
		employees.Filters{State: &state},
	)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if result.Total != 1 || len(result.Data) != 1 {
		t.Fatalf("result: total %d, rows %d", result.Total, len(result.Data))
	}
	if result.Page != 1 || result.PageSize != 20 {
		t.Errorf("page: got %d/%d, want 1/20", result.Page, result.PageSize)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
