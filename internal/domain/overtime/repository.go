package overtime

import "context"

type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, companyID, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByStatus(ctx context.Context, companyID, status string) ([]Request, error)
	Update(ctx context.Context, req Request) error
}
