package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type WorkoutPlanController struct {
	Plans   *services.WorkoutPlanService
	Details *services.WorkoutPlanDetailService
}

func NewWorkoutPlanController(plans *services.WorkoutPlanService, details *services.WorkoutPlanDetailService) *WorkoutPlanController {
	return &WorkoutPlanController{Plans: plans, Details: details}
}

func (wc *WorkoutPlanController) Search(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := wc.Plans.Search(q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get workout plans success", "workout_plans", page)
}

func (wc *WorkoutPlanController) GetByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	p, err := wc.Plans.GetByID(id, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get workout plan success", p)
}

func (wc *WorkoutPlanController) Add(c *gin.Context) {
	var req services.WorkoutPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := wc.Plans.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add workout plan success", p)
}

func (wc *WorkoutPlanController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateWorkoutPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := wc.Plans.Update(id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update workout plan success", p)
}

func (wc *WorkoutPlanController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := wc.Plans.Delete(id, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete workout plan success", nil)
}

// ---------- details ----------

func detailIDs(c *gin.Context) (uint, uint, error) {
	planID, err := idParam(c, "workoutPlanId")
	if err != nil {
		return 0, 0, err
	}
	id, err := idParam(c, "id")
	return planID, id, err
}

func (wc *WorkoutPlanController) ListDetails(c *gin.Context) {
	planID, err := idParam(c, "workoutPlanId")
	if err != nil {
		c.Error(err)
		return
	}
	var q services.DetailQuery
	if !bindQuery(c, &q) {
		return
	}
	out, err := wc.Details.List(planID, q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get workout plan details success", out)
}

func (wc *WorkoutPlanController) GetDetail(c *gin.Context) {
	planID, id, err := detailIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	d, err := wc.Details.GetByID(planID, id, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get workout plan detail success", d)
}

func (wc *WorkoutPlanController) AddDetail(c *gin.Context) {
	planID, err := idParam(c, "workoutPlanId")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.WorkoutPlanDetailRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := wc.Details.Add(planID, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add workout plan detail success", d)
}

func (wc *WorkoutPlanController) AddDetailSet(c *gin.Context) {
	planID, id, err := detailIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req services.SetRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := wc.Details.AddSet(planID, id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add set to workout plan detail success", d)
}

func (wc *WorkoutPlanController) DeleteDetailSet(c *gin.Context) {
	planID, id, err := detailIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	setID, err := idParam(c, "setId")
	if err != nil {
		c.Error(err)
		return
	}
	d, err := wc.Details.DeleteSet(planID, id, setID, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete set from workout plan detail success", d)
}

func (wc *WorkoutPlanController) UpdateDetail(c *gin.Context) {
	planID, id, err := detailIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateWorkoutPlanDetailRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := wc.Details.Update(planID, id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update workout plan detail success", d)
}

func (wc *WorkoutPlanController) DeleteDetail(c *gin.Context) {
	planID, id, err := detailIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := wc.Details.Delete(planID, id, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete workout plan detail success", nil)
}
