package identity

import "errors"

var (
	ErrUnauthorized         = errors.New("Insufficient role for this operation")
	ErrElevatedRoleRequired = errors.New("Elevated role required for administrative override")
	ErrMissingActor         = errors.New("Acting identity is missing")
)

type Role string

const (
	RoleEmployee     Role = "employee"
	RoleSupervisor   Role = "supervisor"
	RoleHRAdmin      Role = "hr_admin"
	RoleCompanyAdmin Role = "company_admin"
	RolePayrollAdmin Role = "payroll_admin"
	RoleSuperAdmin   Role = "super_admin"
)

// Actor is the acting identity for a single operation. It is always passed
// explicitly into service calls, never read from ambient state.
type Actor struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

func (a Actor) Valid() bool {
	return a.UserID != "" && a.CompanyID != "" && a.Role != ""
}

// Elevated reports whether the actor may take the administrative override path.
func (a Actor) Elevated() bool {
	switch a.Role {
	case RoleCompanyAdmin, RoleHRAdmin, RolePayrollAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
