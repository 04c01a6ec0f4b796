package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	Ingredients *services.IngredientService
}

func NewIngredientController(s *services.IngredientService) *IngredientController {
	return &IngredientController{Ingredients: s}
}

func (ic *IngredientController) Search(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := ic.Ingredients.Search(q)
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get ingredients success", "ingredients", page)
}

func (ic *IngredientController) GetByID(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	ing, err := ic.Ingredients.GetByID(id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get ingredient success", ing)
}

func (ic *IngredientController) Add(c *gin.Context) {
	var req services.IngredientRequest
	if !bindJSON(c, &req) {
		return
	}
	ing, err := ic.Ingredients.Add(req)
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add ingredient success", ing)
}

func (ic *IngredientController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req services.UpdateIngredientRequest
	if !bindJSON(c, &req) {
		return
	}
	ing, err := ic.Ingredients.Update(id, req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update ingredient success", ing)
}

func (ic *IngredientController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := ic.Ingredients.Delete(id); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete ingredient success", nil)
}
