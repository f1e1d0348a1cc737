package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant-recap/internal/logger"
	"restaurant-recap/internal/middleware"
	"restaurant-recap/internal/parser"
	"restaurant-recap/internal/recap"
	"restaurant-recap/internal/service"
	"restaurant-recap/pkg/pagination"
	"restaurant-recap/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	dateLayout = "2006-01-02"
	xlsxType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler struct {
	reportService service.ReportService
	recapService  service.RecapService
	maxUpload     int64
}

// NewReportHandler limits upload bodies to maxUploadMB megabytes.
func NewReportHandler(reportService service.ReportService, recapService service.RecapService, maxUploadMB int64) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		recapService:  recapService,
		maxUpload:     maxUploadMB << 20,
	}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("", middleware.RequireRole(middleware.AllRoles...), h.ListReports)
		reports.GET("/monthly", middleware.RequireRole(middleware.AllRoles...), h.GetMonthly)
		reports.GET("/monthly/export", middleware.RequireRole(middleware.AllRoles...), h.ExportMonthly)
		reports.GET("/:id", middleware.RequireRole(middleware.AllRoles...), h.GetReport)
		reports.POST("/upload", middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin, middleware.RoleDev), h.UploadReport)
		reports.DELETE("/:id", middleware.RequireRole(middleware.RoleManager, middleware.RoleAdmin, middleware.RoleDev), h.DeleteReport)
	}
}

// ListReports godoc
// @Summary      List daily reports
// @Description  Newest first. Dates are inclusive and formatted YYYY-MM-DD.
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        start_date       query  string  false  "First report date"
// @Param        end_date         query  string  false  "Last report date"
// @Param        restaurant_code  query  string  false  "Restaurant code"
// @Param        page             query  int     false  "Page number (default 1)"
// @Param        limit            query  int     false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=[]service.ReportSummary}
// @Failure      400  {object}  response.Response
// @Router       /api/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	from, err := optionalDate(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	to, err := optionalDate(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	page := pagination.Parse(c)
	reports, err := h.reportService.List(c.Request.Context(), service.ReportListQuery{
		RestaurantCode: c.Query("restaurant_code"),
		From:           from,
		To:             to,
		Page:           page.Page,
		Limit:          page.Limit,
	})
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reports))
}

// GetReport godoc
// @Summary      Get a daily report with all its tables
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  response.Response{data=model.DailyReport}
// @Failure      404  {object}  response.Response
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid report ID"))
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// UploadReport godoc
// @Summary      Import the export files of one restaurant day
// @Description  All eight files are required. With replace=true an existing report is swapped for the new one.
// @Tags         reports
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        report_date            formData  string  true   "Report date (YYYY-MM-DD)"
// @Param        restaurant_code        formData  string  true   "Restaurant code"
// @Param        replace                formData  bool    false  "Replace an existing report"
// @Param        caparprofit            formData  file    true   "Sales per channel"
// @Param        consommationparprofit  formData  file    true   "Consumption modes"
// @Param        corrections            formData  file    true   "Corrections"
// @Param        divers                 formData  file    true   "Miscellaneous"
// @Param        reglement              formData  file    true   "Payments"
// @Param        remises                formData  file    true   "Discounts"
// @Param        tva                    formData  file    true   "VAT"
// @Param        vente_annexes          formData  file    true   "Annex sales"
// @Param        kpi                    formData  file    false  "KPI sheet (.csv or .xlsx)"
// @Success      201  {object}  response.Response{data=service.ImportResult}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/reports/upload [post]
func (h *ReportHandler) UploadReport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, response.Error(http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d bytes", h.maxUpload)))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid multipart form: "+err.Error()))
		return
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(c.PostForm("report_date")))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "report_date must be formatted YYYY-MM-DD"))
		return
	}
	replace := false
	if raw := c.PostForm("replace"); raw != "" {
		if replace, err = strconv.ParseBool(raw); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "replace must be a boolean"))
			return
		}
	}

	files, err := readUploadedFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	userID, role := middleware.Actor(c)
	result, err := h.reportService.Import(c.Request.Context(), service.ImportRequest{
		RestaurantCode: c.PostForm("restaurant_code"),
		ReportDate:     date,
		Files:          files,
		Replace:        replace,
		Actor:          service.Actor{ID: userID, Role: role},
	})
	if err != nil {
		writeError(c, err, http.StatusUnprocessableEntity)
		return
	}

	status := http.StatusCreated
	if result.Replaced {
		status = http.StatusOK
	}
	c.JSON(status, response.Success(status, result))
}

// DeleteReport godoc
// @Summary      Delete a daily report
// @Description  Deleting a report that does not exist succeeds.
// @Tags         reports
// @Security     BearerAuth
// @Param        id   path  string  true  "Report ID"
// @Success      204
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid report ID"))
		return
	}

	userID, role := middleware.Actor(c)
	if err := h.reportService.Delete(c.Request.Context(), service.Actor{ID: userID, Role: role}, id); err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMonthly godoc
// @Summary      Monthly recap
// @Description  One row per day, a subtotal per ISO week and a month total, with derived ratios. Without restaurant_code all restaurants are summed.
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        year             query  int     true   "Year"
// @Param        month            query  int     true   "Month (1-12)"
// @Param        restaurant_code  query  string  false  "Restaurant code"
// @Success      200  {object}  response.Response{data=service.MonthlyRecap}
// @Failure      400  {object}  response.Response
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) GetMonthly(c *gin.Context) {
	sel, err := monthSelection(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	view, err := h.recapService.GetMonthly(c.Request.Context(), sel)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, view))
}

// ExportMonthly godoc
// @Summary      Monthly recap as a spreadsheet
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year             query  int     true   "Year"
// @Param        month            query  int     true   "Month (1-12)"
// @Param        restaurant_code  query  string  false  "Restaurant code"
// @Success      200  {file}  file
// @Failure      400  {object}  response.Response
// @Router       /api/reports/monthly/export [get]
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	sel, err := monthSelection(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	data, filename, err := h.recapService.ExportMonthly(c.Request.Context(), sel)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxType, data)
}

// readUploadedFiles collects the known file fields of the form. Absent
// fields are left for the service to report.
func readUploadedFiles(c *gin.Context) (parser.Files, error) {
	names := append(append([]string{}, parser.RequiredFiles...), parser.FileKPI)
	files := make(parser.Files, len(names))
	for _, name := range names {
		header, err := c.FormFile(name)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		files[name] = parser.File{Filename: header.Filename, Content: content}
	}
	return files, nil
}

func optionalDate(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be formatted YYYY-MM-DD", key)
	}
	return &t, nil
}

func monthSelection(c *gin.Context) (recap.MonthSelection, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return recap.MonthSelection{}, errors.New("year is required")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return recap.MonthSelection{}, errors.New("month is required")
	}
	return recap.MonthSelection{
		Year:           year,
		Month:          time.Month(month),
		RestaurantCode: c.Query("restaurant_code"),
	}, nil
}

// writeError maps service errors to statuses. validationStatus is used for
// ErrValidation, which is 422 when the uploaded files were rejected.
func writeError(c *gin.Context, err error, validationStatus int) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = validationStatus
	case errors.Is(err, service.ErrIncompleteFileSet), errors.Is(err, service.ErrFutureDateRejected):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyImported), errors.Is(err, service.ErrImportInProgress):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
	}
	c.JSON(status, response.Error(status, err.Error()))
}
