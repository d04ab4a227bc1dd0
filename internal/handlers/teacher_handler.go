package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skolaplan/admin-service/internal/models"
	"github.com/skolaplan/admin-service/internal/services"
	"github.com/skolaplan/admin-service/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	teacherService services.TeacherService
}

func NewTeacherHandler(
	teacherService services.TeacherService,
	logger utils.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:    NewBaseHandler(logger),
		teacherService: teacherService,
	}
}

// ListTeachers lists teachers, optionally filtered
// @Summary List teachers
// @Description Lists non-deactivated teachers ordered by first name. Supports searching by name or email and filtering by status
// @Tags teachers
// @Produce json
// @Param q query string false "Search query matching first name, last name or email"
// @Param status query string false "Teacher status (invited, active, deactivated)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size (unpaged when omitted)"
// @Success 200 {object} services.TeacherListResponse
// @Failure 500 {object} ErrorResponse
// @Router /teachers [get]
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	filters := services.ListTeachersFilters{
		Query: c.Query("q"),
		Page:  h.parseIntQuery(c, "page", 1),
		Size:  h.parseIntQuery(c, "size", 0),
	}
	if status := c.Query("status"); status != "" {
		teacherStatus := models.TeacherStatus(status)
		filters.Status = &teacherStatus
	}

	teachers, err := h.teacherService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teachers)
}

// GetTeacher retrieves a teacher by ID
// @Summary Get teacher
// @Description Retrieves a teacher by its ID, including deactivated ones
// @Tags teachers
// @Produce json
// @Param id path uint true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /teachers/{id} [get]
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacher, err := h.teacherService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// CreateTeacher adds a teacher
// @Summary Create teacher
// @Description Adds a teacher record in invited status
// @Tags teachers
// @Accept json
// @Produce json
// @Param teacher body services.CreateTeacherRequest true "Teacher data"
// @Success 201 {object} models.Teacher
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /teachers [post]
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req services.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	adminID, _ := GetUserIDFromContext(c)
	h.LogRequest(c, "Creating teacher", "email", req.Email, "admin_id", adminID)

	teacher, err := h.teacherService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

// UpdateTeacher edits a teacher
// @Summary Update teacher
// @Description Updates name and email of an existing teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param id path uint true "Teacher ID"
// @Param teacher body services.UpdateTeacherRequest true "Teacher update data"
// @Success 200 {object} models.Teacher
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /teachers/{id} [put]
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating teacher", "teacher_id", id)

	teacher, err := h.teacherService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// DeactivateTeacher soft-removes a teacher
// @Summary Deactivate teacher
// @Description Marks a teacher as deactivated; the record is kept and the email stays reserved
// @Tags teachers
// @Produce json
// @Param id path uint true "Teacher ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /teachers/{id}/deactivate [post]
func (h *TeacherHandler) DeactivateTeacher(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	adminID, _ := GetUserIDFromContext(c)
	h.LogRequest(c, "Deactivating teacher", "teacher_id", id, "admin_id", adminID)

	if err := h.teacherService.Deactivate(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Teacher deactivated successfully",
	})
}

func (h *TeacherHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Teacher not found",
		})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Email address is already registered",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
