package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/overtime"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/middleware"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	overtimeService "github.com/suweldo/payroll-backend-go/internal/service/overtime"
)

type OvertimeHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	SupervisorApprove(w http.ResponseWriter, r *http.Request)
	SupervisorReject(w http.ResponseWriter, r *http.Request)
	HRApprove(w http.ResponseWriter, r *http.Request)
	HRReject(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	service *overtimeService.Service
}

func NewOvertimeHandler(service *overtimeService.Service) OvertimeHandler {
	return &OvertimeHandlerImpl{service: service}
}

func (h *OvertimeHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.service.CreateRequest(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted successfully", overtime.ToResponse(created))
}

func (h *OvertimeHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.service.GetRequest(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overtime.ToResponse(req))
}

func (h *OvertimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.service.ListByEmployee(r.Context(), actor, actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toOvertimeResponses(requests))
}

func (h *OvertimeHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.service.ListByEmployee(r.Context(), actor, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toOvertimeResponses(requests))
}

func (h *OvertimeHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.CancelRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CancelRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cancelled, err := h.service.CancelRequest(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request cancelled successfully", overtime.ToResponse(cancelled))
}

func (h *OvertimeHandlerImpl) SupervisorApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.SupervisorApprove, "Overtime request approved by supervisor")
}

func (h *OvertimeHandlerImpl) SupervisorReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.SupervisorReject, "Overtime request rejected")
}

func (h *OvertimeHandlerImpl) HRApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.HRApprove, "Overtime request approved")
}

func (h *OvertimeHandlerImpl) HRReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.HRReject, "Overtime request rejected")
}

type overtimeDecisionFunc func(ctx context.Context, actor identity.Actor, requestID string, req overtime.DecisionRequest) (overtime.Request, error)

func (h *OvertimeHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn overtimeDecisionFunc, message string) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("decision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := fn(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, overtime.ToResponse(decided))
}

func toOvertimeResponses(requests []overtime.Request) []overtime.RequestResponse {
	out := make([]overtime.RequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, overtime.ToResponse(req))
	}
	return out
}
