package controllers

import (
	"strconv"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	Svc *services.StatisticsService
}

func NewStatisticsController(svc *services.StatisticsService) *StatisticsController {
	return &StatisticsController{Svc: svc}
}

// GET /statistics/top?limit=
func (h *StatisticsController) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	out, err := h.Svc.Top(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get top statistics success", out)
}

// GET /statistics/summary?from&to&includeMissingDays; defaults to the current month.
func (h *StatisticsController) Summary(c *gin.Context) {
	var q services.SummaryQuery
	if !bindQuery(c, &q) {
		return
	}
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if q.From == "" {
		q.From = first.Format(time.DateOnly)
	}
	if q.To == "" {
		q.To = first.AddDate(0, 1, -1).Format(time.DateOnly)
	}
	out, err := h.Svc.Summary(c.Request.Context(), caller(c), q)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get statistics summary success", out)
}
