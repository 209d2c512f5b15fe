package reports

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uph-campus/campus-events-backend/internal/event"
)

type Handler struct {
	events   *event.Service
	exporter ReportExporter
}

func NewHandler(events *event.Service, exporter ReportExporter) *Handler {
	return &Handler{events: events, exporter: exporter}
}

// ExportEvents godoc
// @Summary Export events
// @Description Filtered event list with status column as xlsx, csv or pdf
// @Tags Admin
// @Produce application/octet-stream
// @Param format query string false "xlsx (default), csv or pdf"
// @Param building query string false "Building code"
// @Param status query string false "Status filter"
// @Param from query string false "First day"
// @Param to query string false "Last day"
// @Param q query string false "Search text"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /admin/events/export [get]
func (h *Handler) ExportEvents(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", FormatExcel))
	if format != FormatExcel && format != FormatCSV && format != FormatPDF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx, csv or pdf"})
		return
	}

	filter, ok := event.BindListFilter(c)
	if !ok {
		return
	}
	events, err := h.events.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("❌ export: list events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	data, filename, contentType, err := h.exporter.Export(format, RowsFromViews(h.events.Views(events)))
	if err != nil {
		log.Printf("❌ export %s: %v", format, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
