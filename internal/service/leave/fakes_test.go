package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/audit"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
)

type fakeTransactor struct{}

func (fakeTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (r *fakeAuditRepo) Record(ctx context.Context, entry audit.Entry) error {
	entry.ID = fmt.Sprintf("aud-%d", len(r.entries)+1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) ListByRecord(ctx context.Context, companyID, entityName, recordID string) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, entry := range r.entries {
		if entry.CompanyID == companyID && entry.EntityName == entityName && entry.RecordID == recordID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) actions(entityName string) []string {
	var out []string
	for _, entry := range r.entries {
		if entry.EntityName == entityName {
			out = append(out, entry.Action)
		}
	}
	return out
}

type fakeBalanceRepo struct {
	balances map[string]leave.Balance
	seq      int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]leave.Balance)}
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, leaveTypeID, year)
}

func (r *fakeBalanceRepo) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	key := balanceKey(b.EmployeeID, b.LeaveTypeID, b.Year)
	if _, ok := r.balances[key]; ok {
		return leave.Balance{}, leave.ErrBalanceExists
	}
	r.seq++
	b.ID = fmt.Sprintf("bal-%d", r.seq)
	r.balances[key] = b
	return b, nil
}

func (r *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	b, ok := r.balances[balanceKey(employeeID, leaveTypeID, year)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (r *fakeBalanceRepo) GetByEmployeeTypeYearForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	return r.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
}

func (r *fakeBalanceRepo) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	var out []leave.Balance
	for _, b := range r.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBalanceRepo) UpdateCounters(ctx context.Context, b leave.Balance) error {
	for key, stored := range r.balances {
		if stored.ID == b.ID {
			stored.Counters = b.Counters
			r.balances[key] = stored
			return nil
		}
	}
	return leave.ErrBalanceNotFound
}

type fakeTransactionRepo struct {
	appended []leave.Transaction
	seq      int
}

func (r *fakeTransactionRepo) Append(ctx context.Context, tx leave.Transaction) (leave.Transaction, error) {
	r.seq++
	tx.ID = fmt.Sprintf("txn-%d", r.seq)
	tx.CreatedAt = time.Now()
	r.appended = append(r.appended, tx)
	return tx, nil
}

func (r *fakeTransactionRepo) ListByBalance(ctx context.Context, balanceID string) ([]leave.Transaction, error) {
	var out []leave.Transaction
	for _, tx := range r.appended {
		if tx.BalanceID == balanceID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (r *fakeLeaveTypeRepo) GetByID(ctx context.Context, companyID, id string) (leave.LeaveType, error) {
	lt, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *fakeLeaveTypeRepo) ListActiveByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range r.types {
		if lt.CompanyID == companyID && lt.Active {
			out = append(out, lt)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	policies map[string]leave.Policy // keyed leaveTypeID|employmentStatus
}

func (r *fakePolicyRepo) GetEffective(ctx context.Context, leaveTypeID, employmentStatus string, asOf time.Time) (leave.Policy, error) {
	p, ok := r.policies[leaveTypeID+"|"+employmentStatus]
	if !ok {
		return leave.Policy{}, leave.ErrPolicyNotFound
	}
	return p, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) CountActiveDirectReports(ctx context.Context, employeeID string) (int, error) {
	count := 0
	for _, e := range r.employees {
		if e.Active && e.ManagerID != nil && *e.ManagerID == employeeID {
			count++
		}
	}
	return count, nil
}

type fakeRequestRepo struct {
	requests map[string]leave.Request
	seq      int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.Request)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	r.seq++
	req.ID = fmt.Sprintf("req-%d", r.seq)
	req.RequestNo = fmt.Sprintf("LV-%d-%05d", req.StartDate.Year(), r.seq)
	req.SubmittedAt = time.Now()
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, companyID, id string) (leave.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListByStatus(ctx context.Context, companyID, status string) ([]leave.Request, error) {
	var out []leave.Request
	for _, req := range r.requests {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, req := range r.requests {
		holds := req.Status == "PENDING" || req.Status == "SUPERVISOR_APPROVED" || req.Status == "APPROVED"
		if req.EmployeeID == employeeID && holds && !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, req leave.Request) error {
	if _, ok := r.requests[req.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	r.requests[req.ID] = req
	return nil
}
