package meeting

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateMeetingRequest struct {
	Title              string  `json:"title"`
	Description        *string `json:"description,omitempty"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	InvitedEmployeeIDs []int64 `json:"invited_employee_ids"`

	start time.Time
	end   time.Time
}

func (r *CreateMeetingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if len(r.Title) > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 200 characters",
		})
	}

	start, startOK := validator.IsValidDateTime(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be an ISO 8601 timestamp",
		})
	}
	end, endOK := validator.IsValidDateTime(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be an ISO 8601 timestamp",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end time must be after the start time",
		})
	}

	for _, id := range r.InvitedEmployeeIDs {
		if id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "invited_employee_ids",
				Message: "invited employee ids must be positive",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	r.start, r.end = start, end
	return nil
}

func (r *CreateMeetingRequest) ToMeeting(creatorID int64) Meeting {
	var desc *string
	if r.Description != nil && !validator.IsEmpty(*r.Description) {
		d := strings.TrimSpace(*r.Description)
		desc = &d
	}
	return Meeting{
		Title:       strings.TrimSpace(r.Title),
		Description: desc,
		StartTime:   r.start,
		EndTime:     r.end,
		CreatedByID: creatorID,
	}
}

// Invitees returns the invited ids with duplicates removed, in input order.
func (r *CreateMeetingRequest) Invitees() []int64 {
	seen := make(map[int64]bool, len(r.InvitedEmployeeIDs))
	var out []int64
	for _, id := range r.InvitedEmployeeIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

type RespondRequest struct {
	InvitationID int64  `json:"-"` // From URL
	Status       string `json:"status"`
}

func (r *RespondRequest) Validate() error {
	if !InvitationStatus(r.Status).IsResponse() {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be Accepted or Declined",
		}}
	}
	return nil
}

type InvitationResponse struct {
	ID           int64            `json:"id"`
	MeetingID    int64            `json:"meeting_id"`
	EmployeeID   int64            `json:"employee_id"`
	EmployeeName string           `json:"employee_name,omitempty"`
	Status       string           `json:"status"`
	Meeting      *MeetingResponse `json:"meeting,omitempty"`
}

type MeetingResponse struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Description   *string              `json:"description,omitempty"`
	StartTime     string               `json:"start_time"`
	EndTime       string               `json:"end_time"`
	CreatedByID   int64                `json:"created_by_id"`
	CreatedByName string               `json:"created_by_name,omitempty"`
	Invitations   []InvitationResponse `json:"invitations,omitempty"`
}

func NewMeetingResponse(m Meeting) MeetingResponse {
	resp := MeetingResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		StartTime:     m.StartTime.Format(time.RFC3339),
		EndTime:       m.EndTime.Format(time.RFC3339),
		CreatedByID:   m.CreatedByID,
		CreatedByName: m.CreatedByName,
	}
	for _, inv := range m.Invitations {
		resp.Invitations = append(resp.Invitations, NewInvitationResponse(inv))
	}
	return resp
}

func NewInvitationResponse(inv Invitation) InvitationResponse {
	resp := InvitationResponse{
		ID:           inv.ID,
		MeetingID:    inv.MeetingID,
		EmployeeID:   inv.EmployeeID,
		EmployeeName: inv.EmployeeName,
		Status:       string(inv.Status),
	}
	if inv.Meeting != nil {
		m := NewMeetingResponse(*inv.Meeting)
		resp.Meeting = &m
	}
	return resp
}
