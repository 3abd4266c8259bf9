package employees

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/roster/pkg/pagination"
	"github.com/JaimeStill/roster/pkg/query"
	"github.com/JaimeStill/roster/pkg/repository"
)

const insertQuery = `
		INSERT INTO employees(codename, fullname, canac, address, neighborhood, city, state, cpf, rg,
			birth_date, hiring_date, emergency_contact, bloodtype, cellphone, email, cep, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())
		ON CONFLICT (codename) DO NOTHING
		RETURNING codename, fullname, canac, address, neighborhood, city, state, cpf, rg,
			birth_date, hiring_date, emergency_contact, bloodtype, cellphone, email, cep, created_at, updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an employee registry implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "employees"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Employee], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Codename", "FullName", "City")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEmployee)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) FindByIdentity(ctx context.Context, codename string) (*Employee, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Codename", codename)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEmployee)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

// InsertIfAbsent relies on ON CONFLICT DO NOTHING: a conflicting insert
// returns no row, which maps to ErrDuplicate.
func (r *repo) InsertIfAbsent(ctx context.Context, e Employee) (*Employee, error) {
	args := []any{
		e.Codename,
		e.FullName,
		e.Canac,
		e.Address,
		e.Neighborhood,
		e.City,
		e.State,
		e.CPF,
		e.RG,
		e.BirthDate,
		e.HiringDate,
		e.EmergencyContact,
		e.BloodType,
		e.Cellphone,
		e.Email,
		e.CEP,
	}

	stored, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Employee, error) {
		return repository.QueryOne(ctx, tx, insertQuery, args, scanEmployee)
	})
	if err != nil {
		mapped := repository.MapError(err, ErrDuplicate, ErrDuplicate)
		if mapped == ErrDuplicate {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	r.logger.Info("employee registered", "codename", stored.Codename)
	return &stored, nil
}
