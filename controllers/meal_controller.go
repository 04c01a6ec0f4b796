package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(s *services.MealService) *MealController {
	return &MealController{Meals: s}
}

type mealDateQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

func (mc *MealController) Search(c *gin.Context) {
	var q services.MealQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := mc.Meals.Search(q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get meals success", "meals", page)
}

func (mc *MealController) ByDate(c *gin.Context) {
	var q mealDateQuery
	if !bindQuery(c, &q) {
		return
	}
	out, err := mc.Meals.ByDate(q.Date, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get meals by date success", out)
}

func (mc *MealController) GetByID(c *gin.Context) {
	id, err := idParam(c, "meal_id")
	if err != nil {
		c.Error(err)
		return
	}
	m, err := mc.Meals.GetByID(id, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get meal success", m)
}

func (mc *MealController) Add(c *gin.Context) {
	var req services.MealRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := mc.Meals.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add meal success", m)
}

func (mc *MealController) Clone(c *gin.Context) {
	var req services.CloneMealsRequest
	if !bindJSON(c, &req) {
		return
	}
	meals, err := mc.Meals.Clone(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Clone meals success", meals)
}

func (mc *MealController) Update(c *gin.Context) {
	id, err := idParam(c, "meal_id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.MealRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := mc.Meals.Update(id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update meal success", m)
}

func (mc *MealController) Delete(c *gin.Context) {
	id, err := idParam(c, "meal_id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := mc.Meals.Delete(id, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete meal success", nil)
}
