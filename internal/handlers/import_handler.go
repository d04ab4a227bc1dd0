package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skolaplan/admin-service/internal/services"
	"github.com/skolaplan/admin-service/internal/utils"
)

type ImportHandler struct {
	BaseHandler
	importService  services.ImportService
	maxUploadBytes int64
}

func NewImportHandler(
	importService services.ImportService,
	maxUploadBytes int64,
	logger utils.Logger,
) *ImportHandler {
	return &ImportHandler{
		BaseHandler:    NewBaseHandler(logger),
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ImportTeachers bulk-imports teachers from a spreadsheet upload
// @Summary Import teachers from spreadsheet
// @Description Accepts an xlsx upload in the "file" form field, validates every row on every sheet and imports the accepted ones in a single transaction
// @Tags teachers
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file (.xlsx)"
// @Success 200 {object} models.ImportReport
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /teachers/import [post]
func (h *ImportHandler) ImportTeachers(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondWithError(c, http.StatusRequestEntityTooLarge, "Uploaded file is too large", err)
			return
		}
		h.RespondWithError(c, http.StatusBadRequest, "Missing file upload in 'file' field", err)
		return
	}

	adminID, _ := GetUserIDFromContext(c)
	h.LogRequest(c, "Importing teachers from spreadsheet",
		"filename", fileHeader.Filename, "size", fileHeader.Size, "admin_id", adminID)

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Could not read uploaded file", err)
		return
	}
	defer file.Close()

	report, err := h.importService.ImportTeachers(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileFormat) {
			h.RespondWithError(c, http.StatusBadRequest, "Uploaded file is not a valid spreadsheet", err)
			return
		}
		h.LogError(c, err, "Teacher import failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
