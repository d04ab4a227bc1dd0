package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skolaplan/admin-service/internal/services"
	"github.com/skolaplan/admin-service/internal/utils"
)

type WorkPeriodHandler struct {
	BaseHandler
	workPeriodService services.WorkPeriodService
}

func NewWorkPeriodHandler(
	workPeriodService services.WorkPeriodService,
	logger utils.Logger,
) *WorkPeriodHandler {
	return &WorkPeriodHandler{
		BaseHandler:       NewBaseHandler(logger),
		workPeriodService: workPeriodService,
	}
}

// ListWorkPeriods lists all work periods
// @Summary List work periods
// @Description Lists all work periods, newest start date first
// @Tags work-periods
// @Produce json
// @Success 200 {object} services.WorkPeriodListResponse
// @Failure 500 {object} ErrorResponse
// @Router /work-periods [get]
func (h *WorkPeriodHandler) ListWorkPeriods(c *gin.Context) {
	periods, err := h.workPeriodService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, periods)
}

// GetWorkPeriod retrieves a work period by ID
// @Summary Get work period
// @Description Retrieves a work period by its ID
// @Tags work-periods
// @Produce json
// @Param id path uint true "Work period ID"
// @Success 200 {object} models.WorkPeriod
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /work-periods/{id} [get]
func (h *WorkPeriodHandler) GetWorkPeriod(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	period, err := h.workPeriodService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, period)
}

// CreateWorkPeriod adds a work period
// @Summary Create work period
// @Description Adds a work period with a start and end date
// @Tags work-periods
// @Accept json
// @Produce json
// @Param period body services.CreateWorkPeriodRequest true "Work period data"
// @Success 201 {object} models.WorkPeriod
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /work-periods [post]
func (h *WorkPeriodHandler) CreateWorkPeriod(c *gin.Context) {
	var req services.CreateWorkPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Creating work period", "start", req.Start, "end", req.End)

	period, err := h.workPeriodService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, period)
}

// UpdateWorkPeriod edits a work period
// @Summary Update work period
// @Description Updates the dates of an existing work period
// @Tags work-periods
// @Accept json
// @Produce json
// @Param id path uint true "Work period ID"
// @Param period body services.UpdateWorkPeriodRequest true "Work period update data"
// @Success 200 {object} models.WorkPeriod
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /work-periods/{id} [put]
func (h *WorkPeriodHandler) UpdateWorkPeriod(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateWorkPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating work period", "work_period_id", id)

	period, err := h.workPeriodService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, period)
}

func (h *WorkPeriodHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Work period not found",
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
