package attendance

import (
	"fmt"
	"net/http"
	"strconv"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func actingAdmin(c *gin.Context) string {
	if adminID := c.GetString("admin_id"); adminID != "" {
		return adminID
	}
	return c.Query("admin_id")
}

func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Import(c.Request.Context(), c.GetString("organization_id"), actingAdmin(c), req.Month, req.Year, req.Entries)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Upload takes a multipart xlsx under "file" with month and year form fields.
func (h *Handler) Upload(c *gin.Context) {
	month, errMonth := strconv.Atoi(c.PostForm("month"))
	year, errYear := strconv.Atoi(c.PostForm("year"))
	if errMonth != nil || errYear != nil || !ValidPeriod(month, year) {
		response.FromError(c, attendanceerrors.ErrInvalidPeriod)
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.FromError(c, apperror.RequiredField("file"))
		return
	}
	defer file.Close()

	entries, err := ParseWorkbook(file)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp, err := h.service.Import(c.Request.Context(), c.GetString("organization_id"), actingAdmin(c), month, year, entries)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetSheet(c *gin.Context) {
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.GetSheet(c.Request.Context(), c.GetString("organization_id"), actingAdmin(c), q.Month, q.Year)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadTemplate(c *gin.Context) {
	f, err := Template()
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "attendance_template.xlsx"))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}
