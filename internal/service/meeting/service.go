package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type MeetingServiceImpl struct {
	tx             database.Transactor
	meetingRepo    meeting.MeetingRepository
	invitationRepo meeting.InvitationRepository
	employeeRepo   employee.EmployeeRepository
}

func NewMeetingService(
	tx database.Transactor,
	meetingRepo meeting.MeetingRepository,
	invitationRepo meeting.InvitationRepository,
	employeeRepo employee.EmployeeRepository,
) meeting.MeetingService {
	return &MeetingServiceImpl{
		tx:             tx,
		meetingRepo:    meetingRepo,
		invitationRepo: invitationRepo,
		employeeRepo:   employeeRepo,
	}
}

// Create implements meeting.MeetingService.
func (s *MeetingServiceImpl) Create(ctx context.Context, actor user.Principal, req meeting.CreateMeetingRequest) (meeting.MeetingResponse, error) {
	if err := req.Validate(); err != nil {
		return meeting.MeetingResponse{}, err
	}
	creatorID, err := actor.Employee()
	if err != nil {
		return meeting.MeetingResponse{}, err
	}

	var invitees []employee.Employee
	for _, id := range req.Invitees() {
		if id == creatorID {
			continue
		}
		emp, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return meeting.MeetingResponse{}, validator.ValidationErrors{{
					Field:   "invited_employee_ids",
					Message: fmt.Sprintf("employee %d not found", id),
				}}
			}
			return meeting.MeetingResponse{}, fmt.Errorf("failed to get invitee: %w", err)
		}
		invitees = append(invitees, emp)
	}

	var created meeting.Meeting
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.meetingRepo.Create(txCtx, req.ToMeeting(creatorID))
		if err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		for _, emp := range invitees {
			inv, err := s.invitationRepo.Create(txCtx, meeting.Invitation{
				MeetingID:  created.ID,
				EmployeeID: emp.ID,
				Status:     meeting.InvitationPending,
			})
			if err != nil {
				return fmt.Errorf("failed to create invitation: %w", err)
			}
			inv.EmployeeName = emp.FullName()
			created.Invitations = append(created.Invitations, inv)
		}
		return nil
	})
	if err != nil {
		return meeting.MeetingResponse{}, err
	}

	slog.Info("meeting scheduled", "meeting_id", created.ID, "invitees", len(invitees))
	return meeting.NewMeetingResponse(created), nil
}

// ListMine implements meeting.MeetingService.
func (s *MeetingServiceImpl) ListMine(ctx context.Context, actor user.Principal) ([]meeting.MeetingResponse, error) {
	creatorID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	list, err := s.meetingRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	out := make([]meeting.MeetingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, meeting.NewMeetingResponse(m))
	}
	return out, nil
}

// Invitable implements meeting.MeetingService.
func (s *MeetingServiceImpl) Invitable(ctx context.Context, actor user.Principal) ([]employee.EmployeeSummary, error) {
	creatorID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	me, err := s.employeeRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if me.DepartmentID == nil {
		return []employee.EmployeeSummary{}, nil
	}

	members, err := s.employeeRepo.ListByDepartment(ctx, *me.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department members: %w", err)
	}
	others := make([]employee.Employee, 0, len(members))
	for _, m := range members {
		if m.ID != me.ID {
			others = append(others, m)
		}
	}
	return employee.NewEmployeeSummaries(others), nil
}

// MyInvitations implements meeting.MeetingService.
func (s *MeetingServiceImpl) MyInvitations(ctx context.Context, actor user.Principal) ([]meeting.InvitationResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	list, err := s.invitationRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	out := make([]meeting.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, meeting.NewInvitationResponse(inv))
	}
	return out, nil
}

// Respond implements meeting.MeetingService.
func (s *MeetingServiceImpl) Respond(ctx context.Context, actor user.Principal, req meeting.RespondRequest) (meeting.InvitationResponse, error) {
	if err := req.Validate(); err != nil {
		return meeting.InvitationResponse{}, err
	}
	employeeID, err := actor.Employee()
	if err != nil {
		return meeting.InvitationResponse{}, err
	}

	inv, err := s.invitationRepo.GetByID(ctx, req.InvitationID)
	if err != nil {
		return meeting.InvitationResponse{}, err
	}
	if inv.EmployeeID != employeeID {
		return meeting.InvitationResponse{}, meeting.ErrNotInvitee
	}
	if inv.Status != meeting.InvitationPending {
		return meeting.InvitationResponse{}, meeting.ErrAlreadyResponded
	}

	status := meeting.InvitationStatus(req.Status)
	if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, status); err != nil {
		return meeting.InvitationResponse{}, err
	}
	inv.Status = status
	return meeting.NewInvitationResponse(inv), nil
}
