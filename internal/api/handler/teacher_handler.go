package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"faculty_api/internal/app/service"
	"faculty_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type TeacherHandler struct {
	teacherService *service.TeacherService
}

func NewTeacherHandler(ts *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: ts}
}

func (h *TeacherHandler) RegisterRoutes(r chi.Router) {
	// GET /teachers?subject=physics
	r.Get("/", h.listTeachers)
	r.Post("/", h.createTeacher)
	r.Get("/{teacherID}", h.getTeacher)
	r.Put("/{teacherID}", h.updateTeacher)
	r.Delete("/{teacherID}", h.deleteTeacher)
}

func (h *TeacherHandler) listTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teacherService.ListTeachers(r.Context(), r.URL.Query().Get("subject"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) getTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := teacherIDParam(w, r)
	if !ok {
		return
	}
	teacher, err := h.teacherService.GetTeacher(r.Context(), id)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) createTeacher(w http.ResponseWriter, r *http.Request) {
	var req service.TeacherRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	teacher, err := h.teacherService.CreateTeacher(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, teacher)
}

func (h *TeacherHandler) updateTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := teacherIDParam(w, r)
	if !ok {
		return
	}
	var req service.TeacherRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.teacherService.UpdateTeacher(r.Context(), id, req); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithText(w, http.StatusOK, fmt.Sprintf("Teacher with ID %d updated successfully", id))
}

func (h *TeacherHandler) deleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := teacherIDParam(w, r)
	if !ok {
		return
	}
	if err := h.teacherService.DeleteTeacher(r.Context(), id); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Deleted teacher with ID %d", id)})
}

func teacherIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "teacherID"), 10, 64)
	if err != nil || id < 1 {
		common.RespondWithError(w, http.StatusBadRequest, "teacher id must be a positive integer")
		return 0, false
	}
	return id, true
}
