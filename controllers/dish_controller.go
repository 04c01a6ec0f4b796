package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type DishController struct {
	Dishes *services.DishService
}

func NewDishController(s *services.DishService) *DishController {
	return &DishController{Dishes: s}
}

func (dc *DishController) Search(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := dc.Dishes.Search(q, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get dishes success", "dishes", page)
}

func (dc *DishController) GetByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	d, err := dc.Dishes.GetByID(id, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get dish success", d)
}

func (dc *DishController) Add(c *gin.Context) {
	var req services.DishRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := dc.Dishes.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add dish success", d)
}

func (dc *DishController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateDishRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := dc.Dishes.Update(id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update dish success", d)
}

func (dc *DishController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := dc.Dishes.Delete(id, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete dish success", nil)
}

func (dc *DishController) Rating(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.RatingRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := dc.Dishes.Rating(id, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Rating dish success", d)
}

func (dc *DishController) AddIngredient(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.DishIngredientRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := dc.Dishes.AddIngredient(id, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add dish ingredient success", d)
}

func dishIngredientIDs(c *gin.Context) (uint, uint, error) {
	id, err := idParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	rowID, err := idParam(c, "ingredient_id")
	return id, rowID, err
}

func (dc *DishController) GetIngredient(c *gin.Context) {
	id, rowID, err := dishIngredientIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	di, err := dc.Dishes.GetIngredient(id, rowID, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get dish ingredient success", di)
}

func (dc *DishController) UpdateIngredient(c *gin.Context) {
	id, rowID, err := dishIngredientIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateDishIngredientRequest
	if !bindJSON(c, &req) {
		return
	}
	di, err := dc.Dishes.UpdateIngredient(id, rowID, req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update dish ingredient success", di)
}

func (dc *DishController) DeleteIngredient(c *gin.Context) {
	id, rowID, err := dishIngredientIDs(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := dc.Dishes.DeleteIngredient(id, rowID, caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete dish ingredient success", nil)
}
