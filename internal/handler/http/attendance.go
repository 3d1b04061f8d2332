package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MyCalendar(w http.ResponseWriter, r *http.Request)
	EmployeeCalendar(w http.ResponseWriter, r *http.Request)
	TeamCalendar(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked in successfully", result)
}

func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out successfully", result)
}

func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Today(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.MyHistory(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) MyCalendar(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	events, err := h.attendanceService.MyCalendar(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeEvents(w, events)
}

func (h *attendanceHandlerImpl) EmployeeCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	events, err := h.attendanceService.EmployeeCalendar(r.Context(), id, calendarQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeEvents(w, events)
}

func (h *attendanceHandlerImpl) TeamCalendar(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	query := calendarQuery(r)
	employeeID, ok := queryInt64(w, r, "employee_id")
	if !ok {
		return
	}
	query.EmployeeID = employeeID

	events, err := h.attendanceService.TeamCalendar(r.Context(), p, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeEvents(w, events)
}

func calendarQuery(r *http.Request) attendance.CalendarQuery {
	return attendance.CalendarQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
}

// writeEvents always returns a JSON array so calendar widgets never see null.
func writeEvents(w http.ResponseWriter, events []attendance.DayEvent) {
	if events == nil {
		events = []attendance.DayEvent{}
	}
	response.Success(w, events)
}
