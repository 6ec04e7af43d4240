package controllers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/Xfhreall/armaso-pos/reports"
	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type ReportController struct {
	Analytics *services.AnalyticsService
}

func NewReportController(analytics *services.AnalyticsService) *ReportController {
	return &ReportController{Analytics: analytics}
}

func (rc *ReportController) WeeklyExcel(c *gin.Context) {
	rc.export(c, "xlsx", contentTypeXLSX, reports.WeeklyExcel)
}

func (rc *ReportController) WeeklyPDF(c *gin.Context) {
	rc.export(c, "pdf", contentTypePDF, reports.WeeklyPDF)
}

func (rc *ReportController) export(c *gin.Context, ext, contentType string, render func(io.Writer, *services.WeeklyStats) error) {
	stats, err := rc.Analytics.GetWeeklyStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, stats); err != nil {
		utils.ErrorLogger.WithError(err).WithField("format", ext).Error("error rendering weekly report")
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
		return
	}

	filename := fmt.Sprintf("laporan_mingguan_%s_%s.%s", stats.From, stats.To, ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
