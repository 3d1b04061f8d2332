package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ManagerQueue(w http.ResponseWriter, r *http.Request)
	HRQueue(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	OnLeaveToday(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.leaveService.Apply(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", result)
}

// MyRequests lists the caller's own requests, newest first. An optional
// limit query parameter caps the result.
func (h *leaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	result, err := h.leaveService.GetMyRequests(r.Context(), p, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.leaveService.GetRequest(r.Context(), p, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *leaveHandlerImpl) ManagerQueue(w http.ResponseWriter, r *http.Request) {
	h.queue(w, r, h.leaveService.ManagerQueue)
}

func (h *leaveHandlerImpl) HRQueue(w http.ResponseWriter, r *http.Request) {
	h.queue(w, r, h.leaveService.HRQueue)
}

func (h *leaveHandlerImpl) OnLeaveToday(w http.ResponseWriter, r *http.Request) {
	h.queue(w, r, h.leaveService.OnLeaveToday)
}

type listFunc func(ctx context.Context, actor user.Principal) ([]leave.LeaveRequestResponse, error)

func (h *leaveHandlerImpl) queue(w http.ResponseWriter, r *http.Request, list listFunc) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := list(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Approve, "Leave request approved")
}

func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.Reject, "Leave request rejected")
}

type decideFunc func(ctx context.Context, actor user.Principal, id int64) (leave.LeaveRequestResponse, error)

func (h *leaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, decide decideFunc, message string) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := decide(r.Context(), p, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, result)
}
