package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	ListActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	// CountActiveDirectReports returns how many active employees name the
	// given employee as their manager.
	CountActiveDirectReports(ctx context.Context, employeeID string) (int, error)
}
