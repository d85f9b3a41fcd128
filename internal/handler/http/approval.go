package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/middleware"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	approvalService "github.com/suweldo/payroll-backend-go/internal/service/approval"
)

type ApprovalHandler interface {
	Queue(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
}

type ApprovalHandlerImpl struct {
	service *approvalService.Service
}

func NewApprovalHandler(service *approvalService.Service) ApprovalHandler {
	return &ApprovalHandlerImpl{service: service}
}

func (h *ApprovalHandlerImpl) Queue(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items, err := h.service.Queue(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

func (h *ApprovalHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	kind := approval.Kind(chi.URLParam(r, "kind"))
	if kind != approval.KindLeave && kind != approval.KindOvertime {
		response.BadRequest(w, "Request kind must be leave or overtime", nil)
		return
	}

	var req struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Override decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	var approve bool
	switch req.Decision {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		response.BadRequest(w, "Decision must be approve or reject", nil)
		return
	}

	if err := h.service.Override(r.Context(), actor, kind, chi.URLParam(r, "id"), approve); err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Request rejected by administrative override"
	if approve {
		message = "Request approved by administrative override"
	}
	response.SuccessWithMessage(w, message, nil)
}
