package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type ProjectHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListManaged(w http.ResponseWriter, r *http.Request)
	Details(w http.ResponseWriter, r *http.Request)
	AddTask(w http.ResponseWriter, r *http.Request)
	AssignMember(w http.ResponseWriter, r *http.Request)
	UnassignMember(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ReviewForm(w http.ResponseWriter, r *http.Request)
	SubmitFinalReviews(w http.ResponseWriter, r *http.Request)

	MyProjects(w http.ResponseWriter, r *http.Request)
	CompleteTask(w http.ResponseWriter, r *http.Request)
	MyReviews(w http.ResponseWriter, r *http.Request)
}

type projectHandlerImpl struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) ProjectHandler {
	return &projectHandlerImpl{projectService: projectService}
}

func (h *projectHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	var req project.CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.projectService.Create(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Project created successfully", result)
}

func (h *projectHandlerImpl) ListManaged(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.projectService.ListManaged(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) Details(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.projectService.Details(r.Context(), p, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) AddTask(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req project.AddTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ProjectID = id

	result, err := h.projectService.AddTask(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Task added successfully", result)
}

func (h *projectHandlerImpl) AssignMember(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := idParam(w, r, "employeeID")
	if !ok {
		return
	}

	if err := h.projectService.AssignMember(r.Context(), p, id, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Member assigned to project", nil)
}

func (h *projectHandlerImpl) UnassignMember(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	employeeID, ok := idParam(w, r, "employeeID")
	if !ok {
		return
	}

	if err := h.projectService.UnassignMember(r.Context(), p, id, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Member removed from project", nil)
}

func (h *projectHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), p, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Project deleted successfully", nil)
}

func (h *projectHandlerImpl) ReviewForm(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.projectService.ReviewForm(r.Context(), p, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) SubmitFinalReviews(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req project.SubmitFinalReviewsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ProjectID = id

	if err := h.projectService.SubmitFinalReviews(r.Context(), p, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reviews submitted and project completed", nil)
}

func (h *projectHandlerImpl) MyProjects(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.projectService.MyProjects(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *projectHandlerImpl) CompleteTask(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "taskID")
	if !ok {
		return
	}

	result, err := h.projectService.CompleteTask(r.Context(), p, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Task completed", result)
}

func (h *projectHandlerImpl) MyReviews(w http.ResponseWriter, r *http.Request) {
	p, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.projectService.MyReviews(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
