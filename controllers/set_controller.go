package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

// SetController serves /sets and the /sets-exercise children.
type SetController struct {
	Sets *services.SetService
}

func NewSetController(s *services.SetService) *SetController {
	return &SetController{Sets: s}
}

func (sc *SetController) Search(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := sc.Sets.Search(q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get sets success", "sets", page)
}

func (sc *SetController) GetByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	s, err := sc.Sets.GetByID(id, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get set success", s)
}

func (sc *SetController) Add(c *gin.Context) {
	var req services.SetRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := sc.Sets.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add set success", s)
}

func (sc *SetController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateSetRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := sc.Sets.Update(id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update set success", s)
}

func (sc *SetController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := sc.Sets.Delete(id, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete set success", nil)
}

func (sc *SetController) Rating(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.RatingRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := sc.Sets.Rating(id, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Rating set success", s)
}

func setExerciseIDs(c *gin.Context) (uint, uint, error) {
	setID, err := idParam(c, "setId")
	if err != nil {
		return 0, 0, err
	}
	id, err := idParam(c, "id")
	return setID, id, err
}

func (sc *SetController) GetSetExercise(c *gin.Context) {
	setID, id, err := setExerciseIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	se, err := sc.Sets.GetSetExercise(setID, id, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get set exercise success", se)
}

func (sc *SetController) AddSetExercise(c *gin.Context) {
	setID, err := idParam(c, "setId")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.SetExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	se, err := sc.Sets.AddSetExercise(setID, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add set exercise success", se)
}

func (sc *SetController) UpdateSetExercise(c *gin.Context) {
	setID, id, err := setExerciseIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateSetExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	se, err := sc.Sets.UpdateSetExercise(setID, id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update set exercise success", se)
}

func (sc *SetController) DeleteSetExercise(c *gin.Context) {
	setID, id, err := setExerciseIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := sc.Sets.DeleteSetExercise(setID, id, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete set exercise success", nil)
}
