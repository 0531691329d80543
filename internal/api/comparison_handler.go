package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scadaval/adapters/excel"
	"scadaval/app"
	"scadaval/domain/deviation"
	"scadaval/internal"
	apperrors "scadaval/internal/errors"
	"scadaval/internal/presentation"
)

// ComparisonHandler serves the comparison endpoints
type ComparisonHandler struct {
	service *app.ComparisonService
	config  Config
	logger  *internal.Logger
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(service *app.ComparisonService, config Config, logger *internal.Logger) *ComparisonHandler {
	return &ComparisonHandler{
		service: service,
		config:  config,
		logger:  logger,
	}
}

// ColumnInput is one named column of a JSON compare request; null entries are missing values
type ColumnInput struct {
	Name   string            `json:"name" binding:"required"`
	Values []deviation.Value `json:"values"`
}

// CompareRequest is the body of POST /api/v1/compare
type CompareRequest struct {
	ColumnA ColumnInput `json:"column_a" binding:"required"`
	ColumnB ColumnInput `json:"column_b" binding:"required"`
}

// CompareResponse is a comparison report plus its display values
type CompareResponse struct {
	*app.ComparisonReport
	Headline     presentation.Headline `json:"headline"`
	Distribution []presentation.Slice  `json:"distribution"`
}

// ColumnsResponse describes an uploaded table
type ColumnsResponse struct {
	Source   string   `json:"source"`
	Columns  []string `json:"columns"`
	RowCount int      `json:"row_count"`
}

// Compare compares two columns sent inline as JSON
func (h *ComparisonHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Coded(apperrors.CodeInvalidInput, fmt.Errorf("invalid request body: %w", err)))
		return
	}

	report, err := h.service.CompareColumns(c.Request.Context(),
		req.ColumnA.Name, req.ColumnB.Name, req.ColumnA.Values, req.ColumnB.Values)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCompareResponse(report))
}

// CompareUpload compares two columns of an uploaded workbook
func (h *ComparisonHandler) CompareUpload(c *gin.Context) {
	data, err := h.readUpload(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	report, err := h.service.Compare(c.Request.Context(), app.ComparisonRequest{
		Table:   data,
		ColumnA: c.PostForm("column_a"),
		ColumnB: c.PostForm("column_b"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCompareResponse(report))
}

// Columns lists the headers of an uploaded workbook
func (h *ComparisonHandler) Columns(c *gin.Context) {
	data, err := h.readUpload(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ColumnsResponse{
		Source:   data.Source(),
		Columns:  data.Columns(),
		RowCount: data.RowCount(),
	})
}

func (h *ComparisonHandler) readUpload(c *gin.Context) (*excel.ExcelData, error) {
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.New(apperrors.CodeTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
		}
		return nil, apperrors.InvalidInput("multipart field \"file\" is required")
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	sheet := strings.TrimSpace(c.PostForm("sheet"))
	if sheet == "" {
		sheet = h.config.Sheet
	}

	data, err := excel.ReadFrom(file, header.Filename, sheet)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read %s", header.Filename)
	}
	return data, nil
}

func (h *ComparisonHandler) respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}

func newCompareResponse(report *app.ComparisonReport) CompareResponse {
	slices, _ := presentation.Distribution(report.Summary)
	return CompareResponse{
		ComparisonReport: report,
		Headline:         presentation.NewHeadline(report.Summary),
		Distribution:     slices,
	}
}
