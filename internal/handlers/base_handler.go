package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skolaplan/admin-service/internal/utils"
)

// ErrorResponse is the envelope for all error replies.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse is the envelope for replies that carry no resource body.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries the pieces every handler shares.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs one handler-level line using the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c, h.logger).Info(msg, args...)
}

// LogError logs a handler-level error using the request-scoped logger.
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.LoggerFromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// RespondWithError writes an ErrorResponse with optional detail.
func (h *BaseHandler) RespondWithError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}

// parseIntQuery parses an optional numeric query parameter, falling back to
// the default on absence, garbage or negative values.
func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// parseIDParam parses a numeric path parameter. On failure it writes a 400
// response and returns 0; route ids start at 1 so 0 never collides.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}
