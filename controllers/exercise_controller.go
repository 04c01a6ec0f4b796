package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Exercises *services.ExerciseService
}

func NewExerciseController(s *services.ExerciseService) *ExerciseController {
	return &ExerciseController{Exercises: s}
}

func (ec *ExerciseController) Search(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := ec.Exercises.Search(q)
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get exercises success", "exercises", page)
}

func (ec *ExerciseController) All(c *gin.Context) {
	out, err := ec.Exercises.All()
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get all exercises success", out)
}

func (ec *ExerciseController) GetByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	ex, err := ec.Exercises.GetByID(id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get exercise success", ex)
}

func (ec *ExerciseController) Add(c *gin.Context) {
	var req services.ExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	ex, err := ec.Exercises.Add(req)
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add exercise success", ex)
}

func (ec *ExerciseController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	ex, err := ec.Exercises.Update(id, req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update exercise success", ex)
}

func (ec *ExerciseController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := ec.Exercises.Delete(id); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete exercise success", nil)
}

func (ec *ExerciseController) Rating(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.RatingRequest
	if !bindJSON(c, &req) {
		return
	}
	ex, err := ec.Exercises.Rating(id, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Rating exercise success", ex)
}
