package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/schedule"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/middleware"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	scheduleService "github.com/suweldo/payroll-backend-go/internal/service/schedule"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AssignEmployee(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	ResolveShift(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	service *scheduleService.Service
}

func NewScheduleHandler(service *scheduleService.Service) ScheduleHandler {
	return &ScheduleHandlerImpl{service: service}
}

func (h *ScheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.CreateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.service.CreateSchedule(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work schedule created successfully", schedule.ToResponse(created))
}

func (h *ScheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	ws, err := h.service.GetSchedule(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule.ToResponse(ws))
}

func (h *ScheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	schedules, err := h.service.ListSchedules(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]schedule.WorkScheduleResponse, 0, len(schedules))
	for _, ws := range schedules {
		out = append(out, schedule.ToResponse(ws))
	}
	response.Success(w, out)
}

func (h *ScheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.CreateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.service.UpdateSchedule(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule updated successfully", schedule.ToResponse(updated))
}

func (h *ScheduleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.service.DeleteSchedule(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule deleted successfully", nil)
}

func (h *ScheduleHandlerImpl) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req schedule.AssignEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	assignment, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.service.AssignEmployee(r.Context(), actor, assignment)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee assigned to schedule successfully", schedule.ToAssignmentResponse(created))
}

func (h *ScheduleHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	assignments, err := h.service.ListAssignments(r.Context(), actor, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]schedule.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, schedule.ToAssignmentResponse(a))
	}
	response.Success(w, out)
}

// ResolveShift reports the effective scheduled in/out for one employee
// and date, mainly for payroll staff checking what the metric math saw.
func (h *ScheduleHandlerImpl) ResolveShift(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Date must be YYYY-MM-DD", nil)
		return
	}

	shift, ws, err := h.service.ResolveShift(r.Context(), actor.CompanyID, chi.URLParam(r, "employeeID"), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := struct {
		Date         string     `json:"date"`
		RestDay      bool       `json:"rest_day"`
		ScheduledIn  *time.Time `json:"scheduled_in,omitempty"`
		ScheduledOut *time.Time `json:"scheduled_out,omitempty"`
		ScheduleName *string    `json:"schedule_name,omitempty"`
	}{
		Date:         date.Format("2006-01-02"),
		RestDay:      shift.IsRestDay(),
		ScheduledIn:  shift.In,
		ScheduledOut: shift.Out,
	}
	if ws != nil {
		out.ScheduleName = &ws.Name
	}
	response.Success(w, out)
}
