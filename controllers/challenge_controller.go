package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	Challenges *services.ChallengeService
}

func NewChallengeController(s *services.ChallengeService) *ChallengeController {
	return &ChallengeController{Challenges: s}
}

func (cc *ChallengeController) Search(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := cc.Challenges.Search(q)
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get challenges success", "challenges", page)
}

func (cc *ChallengeController) Joined(c *gin.Context) {
	out, err := cc.Challenges.Joined(caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get joined challenges success", out)
}

func (cc *ChallengeController) GetByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	ch, err := cc.Challenges.GetByID(id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get challenge success", ch)
}

func (cc *ChallengeController) Add(c *gin.Context) {
	var req services.ChallengeRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := cc.Challenges.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add challenge success", ch)
}

func (cc *ChallengeController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateChallengeRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := cc.Challenges.Update(id, req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update challenge success", ch)
}

func (cc *ChallengeController) UpdateMeal(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.MealSource
	if !bindJSON(c, &req) {
		return
	}
	ch, err := cc.Challenges.UpdateMeal(id, req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update challenge meal success", ch)
}

func (cc *ChallengeController) UpdateWorkout(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.WorkoutSource
	if !bindJSON(c, &req) {
		return
	}
	ch, err := cc.Challenges.UpdateWorkout(id, req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update challenge workout plan success", ch)
}

func (cc *ChallengeController) Join(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	uc, err := cc.Challenges.Join(c.Request.Context(), id, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Join challenge success", uc)
}

func (cc *ChallengeController) Activate(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	ch, err := cc.Challenges.Activate(id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Activate challenge success", ch)
}

func (cc *ChallengeController) Deactivate(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	ch, err := cc.Challenges.Deactivate(id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Deactivate challenge success", ch)
}

func (cc *ChallengeController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := cc.Challenges.Delete(id); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete challenge success", nil)
}
