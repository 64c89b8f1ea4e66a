package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-tracker/internal/dto"
	"github.com/noah-isme/classroom-tracker/internal/service"
	"github.com/noah-isme/classroom-tracker/pkg/export"
	"github.com/noah-isme/classroom-tracker/pkg/response"
)

type reportService interface {
	Render(ctx context.Context) (*service.RenderedReport, error)
	Generate(ctx context.Context) (*dto.ReportResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ReportDownload, error)
}

// ReportHandler exposes the attendance CSV report.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ExportCSV godoc
// @Summary Download the attendance report as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /reports/csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	report, err := h.reports.Render(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, export.ContentTypeCSV, report.Payload)
}

// GenerateReport godoc
// @Summary Store the attendance report and return a signed download URL
// @Tags Reports
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	report, err := h.reports.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, report)
}

// Download godoc
// @Summary Download a stored report
// @Tags Reports
// @Produce text/csv
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Router /reports/download/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	download, err := h.reports.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, download.Filename, export.ContentTypeCSV, download.Payload)
}
