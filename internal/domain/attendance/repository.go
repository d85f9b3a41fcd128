package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	GetByID(ctx context.Context, companyID, id string) (Record, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]Record, error)
	Update(ctx context.Context, rec Record) error
}
