package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-lms-api/internal/application"
	"github.com/oksasatya/go-lms-api/pkg/response"
)

type CourseHandler struct {
	Svc *application.CourseService
}

func NewCourseHandler(svc *application.CourseService) *CourseHandler {
	return &CourseHandler{Svc: svc}
}

// Create POST /create-course
func (h *CourseHandler) Create(c *gin.Context) {
	var req application.CourseInput
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course, "course created", nil)
}

// Edit PUT /edit-course/:id
func (h *CourseHandler) Edit(c *gin.Context) {
	var req application.CourseInput
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.Edit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		failSaved(c, course, err)
		return
	}
	response.Success(c, http.StatusCreated, course, "course updated", nil)
}

// Get GET /get-course/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "course", nil)
}

// List GET /get-courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses, "courses", nil)
}

// ListAll GET /get-all-courses
func (h *CourseHandler) ListAll(c *gin.Context) {
	courses, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses, "courses", nil)
}

// Content GET /get-course-content/:id
func (h *CourseHandler) Content(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	content, err := h.Svc.Content(c.Request.Context(), u, c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, content, "course content", nil)
}

// AddQuestion PUT /add-question
func (h *CourseHandler) AddQuestion(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.QuestionInput
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.AddQuestion(c.Request.Context(), u, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "question added", nil)
}

// AddAnswer PUT /add-answer
func (h *CourseHandler) AddAnswer(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.AnswerInput
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.AddAnswer(c.Request.Context(), u, req)
	if err != nil {
		failSaved(c, course, err)
		return
	}
	response.Success(c, http.StatusOK, course, "answer added", nil)
}

// AddReview PUT /add-review/:id
func (h *CourseHandler) AddReview(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.ReviewInput
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.AddReview(c.Request.Context(), u, c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "review added", nil)
}

// AddReply PUT /add-reply
func (h *CourseHandler) AddReply(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req application.ReplyInput
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.AddReply(c.Request.Context(), u, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course, "reply added", nil)
}

// Delete DELETE /delete-course/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "course deleted successfully", nil)
}

// Search GET /search-courses?q=&size=
func (h *CourseHandler) Search(c *gin.Context) {
	courses, err := h.Svc.Search(c.Request.Context(), c.Query("q"), querySize(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses, "courses", gin.H{"count": len(courses)})
}
