package employee

import "time"

type EmploymentStatus string

const (
	StatusRegular      EmploymentStatus = "regular"
	StatusProbationary EmploymentStatus = "probationary"
	StatusContractual  EmploymentStatus = "contractual"
	StatusProjectBased EmploymentStatus = "project_based"
)

type Employee struct {
	ID        string
	UserID    string
	CompanyID string
	FullName  string

	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	SeparationDate   *time.Time

	// ManagerID points at the employee's supervisor; leave and overtime
	// requests route there for the first approval stage.
	ManagerID *string

	OvertimeEligible bool
	Active           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployedDuring reports whether the employee was hired on/before the
// year's end and not separated before the year's start.
func (e Employee) EmployedDuring(year int, loc *time.Location) bool {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := time.Date(year, time.December, 31, 23, 59, 59, 0, loc)
	if e.HireDate.After(yearEnd) {
		return false
	}
	if e.SeparationDate != nil && e.SeparationDate.Before(yearStart) {
		return false
	}
	return true
}
