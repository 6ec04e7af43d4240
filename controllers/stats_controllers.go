package controllers

import (
	"net/http"

	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Analytics *services.AnalyticsService
}

func NewStatsController(analytics *services.AnalyticsService) *StatsController {
	return &StatsController{Analytics: analytics}
}

func (sc *StatsController) GetDailyStats(c *gin.Context) {
	stats, err := sc.Analytics.GetDailyStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily stats", stats)
}

func (sc *StatsController) GetWeeklyStats(c *gin.Context) {
	stats, err := sc.Analytics.GetWeeklyStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Weekly stats", stats)
}
