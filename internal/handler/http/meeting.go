package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type MeetingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Invitable(w http.ResponseWriter, r *http.Request)
	MyInvitations(w http.ResponseWriter, r *http.Request)
	Respond(w http.ResponseWriter, r *http.Request)
}

type meetingHandlerImpl struct {
	meetingService meeting.MeetingService
}

func NewMeetingHandler(meetingService meeting.MeetingService) MeetingHandler {
	return &meetingHandlerImpl{meetingService: meetingService}
}

func (h *meetingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	var req meeting.CreateMeetingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.meetingService.Create(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Meeting scheduled successfully", result)
}

func (h *meetingHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.meetingService.ListMine(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *meetingHandlerImpl) Invitable(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.meetingService.Invitable(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *meetingHandlerImpl) MyInvitations(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.meetingService.MyInvitations(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *meetingHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req meeting.RespondRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.InvitationID = id

	result, err := h.meetingService.Respond(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Invitation "+result.Status, result)
}
