package employees

import (
	"context"

	"github.com/JaimeStill/roster/pkg/pagination"
)

// System defines the public contract for the employee registry.
type System interface {
	Handler(maxBodySize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Employee], error)

	// FindByIdentity returns the record stored under codename or ErrNotFound.
	FindByIdentity(ctx context.Context, codename string) (*Employee, error)

	// InsertIfAbsent persists e unless a record with the same codename
	// exists, in which case it returns ErrDuplicate and writes nothing.
	InsertIfAbsent(ctx context.Context, e Employee) (*Employee, error)
}
