package handler

import (
	"net/http"

	"github.com/sayafh/curriculum-chat/internal/api/middleware"
	"github.com/sayafh/curriculum-chat/internal/api/response"
	"github.com/sayafh/curriculum-chat/internal/domain"
)

// CourseHandler serves the static course catalog.
type CourseHandler struct {
	catalog *domain.Catalog
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(catalog *domain.Catalog) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

type courseView struct {
	domain.Course
	HasDocument bool `json:"has_document"`
}

// List returns the catalog decorated with the caller's attachment state.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := middleware.GetController(r.Context())
	if !ok {
		response.InternalError(w, "missing session")
		return
	}

	courses := h.catalog.List()
	views := make([]courseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, courseView{
			Course:      c,
			HasDocument: ctrl.HasDocument(c.ID),
		})
	}

	response.OK(w, views)
}
