package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Svc *services.RecommendationService
}

func NewRecommendationController(svc *services.RecommendationService) *RecommendationController {
	return &RecommendationController{Svc: svc}
}

func (rc *RecommendationController) Calories(c *gin.Context) {
	var req services.CalorieRecommendRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	out, err := rc.Svc.Calories(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Recommend calories success", out)
}

func (rc *RecommendationController) WorkoutPlans(c *gin.Context) {
	var req services.WorkoutRecommendRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	out, err := rc.Svc.WorkoutPlans(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Recommend workout plans success", out)
}

func (rc *RecommendationController) Dishes(c *gin.Context) {
	var req services.DishRecommendRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := rc.Svc.Dishes(req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Recommend dishes success", out)
}
