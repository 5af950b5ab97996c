package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/farmstore-admin/internal/application/service"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/dto/request"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/dto/response"
	"github.com/sangkips/farmstore-admin/pkg/pagination"
)

// ReportHandler handles order report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Overview handles the order report view
func (h *ReportHandler) Overview(c *gin.Context) {
	var q request.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	overview, err := h.reportService.Overview(c.Request.Context(), &service.OverviewInput{
		ReportInput: reportInput(c, &q),
		Pagination: pagination.PaginationParams{
			Page:    q.Page,
			PerPage: q.PerPage,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order report retrieved successfully", response.NewReportOverviewResponse(overview))
}

// Export handles downloading the order report as a file
func (h *ReportHandler) Export(c *gin.Context) {
	var q request.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	file, err := h.reportService.Export(c.Request.Context(), &service.ExportInput{
		ReportInput: reportInput(c, &q.ReportQuery),
		Format:      q.Format,
		UserEmail:   GetUserEmail(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func reportInput(c *gin.Context, q *request.ReportQuery) service.ReportInput {
	input := service.ReportInput{
		Period:    q.Period,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Status:    q.Status,
		Search:    q.Search,
		Refresh:   q.Refresh,
	}
	if userID := GetUserID(c); userID != nil {
		input.UserID = *userID
	}
	return input
}
