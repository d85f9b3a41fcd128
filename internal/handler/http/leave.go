package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/middleware"
	"github.com/suweldo/payroll-backend-go/internal/handler/http/response"
	leaveService "github.com/suweldo/payroll-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	SupervisorApprove(w http.ResponseWriter, r *http.Request)
	SupervisorReject(w http.ResponseWriter, r *http.Request)
	HRApprove(w http.ResponseWriter, r *http.Request)
	HRReject(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalances(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	InitializeYear(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requests *leaveService.RequestService
	ledger   *leaveService.LedgerService
	init     *leaveService.InitService
}

func NewLeaveHandler(requests *leaveService.RequestService, ledger *leaveService.LedgerService, init *leaveService.InitService) LeaveHandler {
	return &LeaveHandlerImpl{requests: requests, ledger: ledger, init: init}
}

func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requests.CreateRequest(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leave.ToRequestResponse(created))
}

func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req, err := h.requests.GetRequest(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToRequestResponse(req))
}

func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.requests.ListByEmployee(r.Context(), actor, actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toLeaveRequestResponses(requests))
}

func (h *LeaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.requests.ListByEmployee(r.Context(), actor, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toLeaveRequestResponses(requests))
}

func (h *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CancelRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CancelRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cancelled, err := h.requests.CancelRequest(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", leave.ToRequestResponse(cancelled))
}

func (h *LeaveHandlerImpl) SupervisorApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requests.SupervisorApprove, "Leave request approved by supervisor")
}

func (h *LeaveHandlerImpl) SupervisorReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requests.SupervisorReject, "Leave request rejected")
}

func (h *LeaveHandlerImpl) HRApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requests.HRApprove, "Leave request approved")
}

func (h *LeaveHandlerImpl) HRReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requests.HRReject, "Leave request rejected")
}

func (h *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.balances(w, r, actor.EmployeeID)
}

func (h *LeaveHandlerImpl) GetEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	h.balances(w, r, chi.URLParam(r, "employeeID"))
}

func (h *LeaveHandlerImpl) GetTransactions(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	transactions, err := h.ledger.Transactions(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, leave.ToTransactionResponse(tx))
	}
	response.Success(w, out)
}

func (h *LeaveHandlerImpl) InitializeYear(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req struct {
		Year int `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("InitializeYear decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Year < 2000 || req.Year > 2100 {
		response.BadRequest(w, "Year is out of range", nil)
		return
	}

	summary, err := h.init.InitializeYear(r.Context(), actor, req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Year initialization completed", summary)
}

type leaveDecisionFunc func(ctx context.Context, actor identity.Actor, requestID string, req leave.DecisionRequest) (leave.Request, error)

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn leaveDecisionFunc, message string) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecisionRequest
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

	response.SuccessWithMessage(w, message, leave.ToRequestResponse(decided))
}

func (h *LeaveHandlerImpl) balances(w http.ResponseWriter, r *http.Request, employeeID string) {
	actor, err := middleware.Actor(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "Year must be a number", nil)
			return
		}
		year = parsed
	}

	balances, err := h.ledger.Balances(r.Context(), actor, employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, leave.ToBalanceResponse(b))
	}
	response.Success(w, out)
}

func toLeaveRequestResponses(requests []leave.Request) []leave.RequestResponse {
	out := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, leave.ToRequestResponse(req))
	}
	return out
}
