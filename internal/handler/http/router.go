package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/suweldo/payroll-backend-go/internal/config"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/middleware"
	"github.com/suweldo/payroll-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Approval   ApprovalHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-suweldo"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/schedules", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(identity.PermissionScheduleManage))
					r.Post("/", h.Schedule.Create)
					r.Put("/{id}", h.Schedule.Update)
					r.Delete("/{id}", h.Schedule.Delete)
					r.Post("/assignments", h.Schedule.AssignEmployee)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(identity.PermissionScheduleView))
					r.Get("/", h.Schedule.List)
					r.Get("/{id}", h.Schedule.Get)
					r.Get("/assignments/{employeeID}", h.Schedule.ListAssignments)
					r.Get("/resolve/{employeeID}", h.Schedule.ResolveShift)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(identity.PermissionAttendanceSync)).
					Post("/sync", h.Attendance.Sync)
				r.Get("/my", h.Attendance.GetMyRecords)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(identity.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.ListCompany)
					r.Get("/employee/{employeeID}", h.Attendance.ListByEmployee)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(identity.PermissionAttendanceCorrect))
					r.Post("/", h.Attendance.ManualEntry)
					r.Patch("/{id}", h.Attendance.Correct)
					r.Get("/{id}/audit", h.Attendance.AuditTrail)
				})

				r.Get("/{id}", h.Attendance.Get)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.With(middleware.RequirePermission(identity.PermissionLeaveCreate)).
						Post("/", h.Leave.CreateRequest)
					r.Get("/my", h.Leave.GetMyRequests)
					r.With(middleware.RequirePermission(identity.PermissionLeaveViewAll)).
						Get("/employee/{employeeID}", h.Leave.ListByEmployee)
					r.Get("/{id}", h.Leave.GetRequest)
					r.Post("/{id}/cancel", h.Leave.CancelRequest)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(identity.PermissionLeaveApprove))
						r.Post("/{id}/supervisor-approve", h.Leave.SupervisorApprove)
						r.Post("/{id}/supervisor-reject", h.Leave.SupervisorReject)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(identity.PermissionApprovalFinalize))
						r.Post("/{id}/approve", h.Leave.HRApprove)
						r.Post("/{id}/reject", h.Leave.HRReject)
					})
				})

				r.Route("/balances", func(r chi.Router) {
					r.Get("/my", h.Leave.GetMyBalances)
					r.With(middleware.RequirePermission(identity.PermissionBalanceViewAll)).
						Get("/employee/{employeeID}", h.Leave.GetEmployeeBalances)
					r.Get("/{id}/transactions", h.Leave.GetTransactions)
					r.With(middleware.RequirePermission(identity.PermissionBalanceInit)).
						Post("/init-year", h.Leave.InitializeYear)
				})
			})

			r.Route("/overtime/requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(identity.PermissionOvertimeCreate)).
					Post("/", h.Overtime.CreateRequest)
				r.Get("/my", h.Overtime.GetMyRequests)
				r.With(middleware.RequirePermission(identity.PermissionOvertimeViewAll)).
					Get("/employee/{employeeID}", h.Overtime.ListByEmployee)
				r.Get("/{id}", h.Overtime.GetRequest)
				r.Post("/{id}/cancel", h.Overtime.CancelRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(identity.PermissionOvertimeApprove))
					r.Post("/{id}/supervisor-approve", h.Overtime.SupervisorApprove)
					r.Post("/{id}/supervisor-reject", h.Overtime.SupervisorReject)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(identity.PermissionApprovalFinalize))
					r.Post("/{id}/approve", h.Overtime.HRApprove)
					r.Post("/{id}/reject", h.Overtime.HRReject)
				})
			})

			r.Route("/approvals", func(r chi.Router) {
				r.With(middleware.RequirePermission(identity.PermissionApprovalQueueView)).
					Get("/queue", h.Approval.Queue)
				r.With(middleware.ElevatedOnly).
					Post("/{kind}/{id}/override", h.Approval.Override)
			})
		})
	})
	return r
}
