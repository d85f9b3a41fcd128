package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/config"
	"github.com/suweldo/payroll-backend-go/internal/domain/notification"
	appHTTP "github.com/suweldo/payroll-backend-go/internal/handler/http"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
	"github.com/suweldo/payroll-backend-go/internal/pkg/jwt"
	"github.com/suweldo/payroll-backend-go/internal/repository/postgresql"
	approvalService "github.com/suweldo/payroll-backend-go/internal/service/approval"
	attendanceService "github.com/suweldo/payroll-backend-go/internal/service/attendance"
	leaveService "github.com/suweldo/payroll-backend-go/internal/service/leave"
	overtimeService "github.com/suweldo/payroll-backend-go/internal/service/overtime"
	scheduleService "github.com/suweldo/payroll-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leavePolicyRepo := postgresql.NewLeavePolicyRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveTransactionRepo := postgresql.NewLeaveTransactionRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	overtimeRequestRepo := postgresql.NewOvertimeRequestRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	notifier := notification.LogNotifier{}

	scheduleSvc := scheduleService.NewService(workScheduleRepo, assignmentRepo)
	attendanceSvc := attendanceService.NewService(txRunner, attendanceRepo, employeeRepo, scheduleSvc, auditRepo, notifier)
	ledgerSvc := leaveService.NewLedgerService(txRunner, leaveBalanceRepo, leaveTransactionRepo, leaveTypeRepo, leavePolicyRepo, employeeRepo, auditRepo, loc)
	leaveRequestSvc := leaveService.NewRequestService(txRunner, leaveRequestRepo, leaveTypeRepo, employeeRepo, ledgerSvc, auditRepo, notifier)
	initSvc := leaveService.NewInitService(txRunner, ledgerSvc, leaveTypeRepo, leaveBalanceRepo, employeeRepo, loc)
	overtimeSvc := overtimeService.NewService(txRunner, overtimeRequestRepo, employeeRepo, auditRepo, notifier)
	approvalSvc := approvalService.NewService(leaveRequestSvc, overtimeSvc, leaveRequestRepo, overtimeRequestRepo)

	handlers := appHTTP.Handlers{
		Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveRequestSvc, ledgerSvc, initSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Approval:   appHTTP.NewApprovalHandler(approvalSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
