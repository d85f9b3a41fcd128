package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/middleware"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	attendanceService "github.com/suweldo/payroll-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	Sync(w http.ResponseWriter, r *http.Request)
	ManualEntry(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyRecords(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListCompany(w http.ResponseWriter, r *http.Request)
	AuditTrail(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	service *attendanceService.Service
}

func NewAttendanceHandler(service *attendanceService.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{service: service}
}

func (h *AttendanceHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Sync decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rec, err := h.service.Sync(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance synced successfully", attendance.ToResponse(rec))
}

func (h *AttendanceHandlerImpl) ManualEntry(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ManualEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rec, err := h.service.ManualEntry(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created successfully", attendance.ToResponse(rec))
}

func (h *AttendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Correct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rec, err := h.service.Correct(r.Context(), actor, recordID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record corrected successfully", attendance.ToResponse(rec))
}

func (h *AttendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.service.GetRecord(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponse(rec))
}

func (h *AttendanceHandlerImpl) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		response.BadRequest(w, "Dates must be YYYY-MM-DD", nil)
		return
	}

	records, err := h.service.ListByEmployee(r.Context(), actor, actor.EmployeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toRecordResponses(records))
}

func (h *AttendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		response.BadRequest(w, "Dates must be YYYY-MM-DD", nil)
		return
	}

	records, err := h.service.ListByEmployee(r.Context(), actor, chi.URLParam(r, "employeeID"), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toRecordResponses(records))
}

func (h *AttendanceHandlerImpl) ListCompany(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		response.BadRequest(w, "Dates must be YYYY-MM-DD", nil)
		return
	}

	records, err := h.service.ListByCompany(r.Context(), actor, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toRecordResponses(records))
}

func (h *AttendanceHandlerImpl) AuditTrail(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.service.ListAuditTrail(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

func toRecordResponses(records []attendance.Record) []attendance.RecordResponse {
	out := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, attendance.ToResponse(rec))
	}
	return out
}

// dateRange parses from/to query parameters, defaulting to the current
// month when absent.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}
