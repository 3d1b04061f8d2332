package http

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

const maxUploadSize = 10 << 20

type EmployeeHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	ListByRole(w http.ResponseWriter, r *http.Request)
	UnassignFromDepartment(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)

	GetTeam(w http.ResponseWriter, r *http.Request)
	AssignToTeam(w http.ResponseWriter, r *http.Request)
	UnassignFromTeam(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// CreateEmployee accepts either plain JSON or a multipart form carrying the
// JSON in a 'data' field, an optional 'photo' and any number of
// 'certificates'.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		var opened []multipart.File
		defer func() {
			for _, f := range opened {
				f.Close()
			}
		}()

		if headers := r.MultipartForm.File["photo"]; len(headers) > 0 {
			f, err := headers[0].Open()
			if err != nil {
				response.BadRequest(w, "Failed to read photo", nil)
				return
			}
			opened = append(opened, f)
			req.Photo = &employee.Upload{Filename: headers[0].Filename, Content: f}
		}
		for _, header := range r.MultipartForm.File["certificates"] {
			f, err := header.Open()
			if err != nil {
				response.BadRequest(w, "Failed to read certificate "+header.Filename, nil)
				return
			}
			opened = append(opened, f)
			req.Certificates = append(req.Certificates, employee.Upload{Filename: header.Filename, Content: f})
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", result)
}

func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{}
	q := r.URL.Query()

	if search := q.Get("search"); search != "" {
		filter.Search = &search
	}
	departmentID, ok := queryInt64(w, r, "department_id")
	if !ok {
		return
	}
	filter.DepartmentID = departmentID
	if role := q.Get("role"); role != "" {
		rl := user.Role(role)
		filter.Role = &rl
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = l
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListByRole serves the reporting HR and head of department pickers.
func (h *employeeHandlerImpl) ListByRole(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListByRole(r.Context(), user.Role(r.URL.Query().Get("role")))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *employeeHandlerImpl) UnassignFromDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.employeeService.UnassignFromDepartment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee removed from department", nil)
}

func (h *employeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.GetMe(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *employeeHandlerImpl) GetTeam(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.GetTeam(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *employeeHandlerImpl) AssignToTeam(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "employeeID")
	if !ok {
		return
	}

	if err := h.employeeService.AssignToTeam(r.Context(), p, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee added to team", nil)
}

func (h *employeeHandlerImpl) UnassignFromTeam(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "employeeID")
	if !ok {
		return
	}

	if err := h.employeeService.UnassignFromTeam(r.Context(), p, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee removed from team", nil)
}
