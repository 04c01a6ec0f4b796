package services

import (
	"fmt"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgDishNotFound           = "dish not found"
	msgDishNoPermission       = "you do not have permission on this dish"
	msgDishRatingPermission   = "only system dishes can be rated"
	msgDishInUse              = "dish is used by a meal"
	msgDishIngredientNotFound = "dish ingredient not found"
)

type DishService struct {
	db *gorm.DB
}

func NewDishService(db *gorm.DB) *DishService {
	return &DishService{db: db}
}

type DishIngredientRequest struct {
	IngredientID uint    `json:"ingredientId" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	Unit         string  `json:"unit"`
}

type UpdateDishIngredientRequest struct {
	IngredientID *uint    `json:"ingredientId"`
	Quantity     *float64 `json:"quantity" binding:"omitempty,gt=0"`
	Unit         *string  `json:"unit"`
}

type DishRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Image       string                  `json:"image" binding:"omitempty,url"`
	Video       string                  `json:"video" binding:"omitempty,url"`
	Instruction string                  `json:"instruction"`
	PrepTime    int                     `json:"prep_time" binding:"gte=0"`
	CookTime    int                     `json:"cook_time" binding:"gte=0"`
	Calories    *float64                `json:"calories" binding:"omitempty,gte=0"`
	Ingredients []DishIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
}

type UpdateDishRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Image       *string  `json:"image" binding:"omitempty,url"`
	Video       *string  `json:"video" binding:"omitempty,url"`
	Instruction *string  `json:"instruction"`
	PrepTime    *int     `json:"prep_time" binding:"omitempty,gte=0"`
	CookTime    *int     `json:"cook_time" binding:"omitempty,gte=0"`
	Calories    *float64 `json:"calories" binding:"omitempty,gte=0"`
}

// DishDetail is a dish with its ingredients resolved and nutrition summed.
type DishDetail struct {
	models.Dish
	Nutrition utils.Nutrition `json:"nutrition"`
	Warnings  []utils.Warning `json:"warnings"`
}

var dishList = listSpec{
	searchColumn: "name",
	sortable:     columns("name", "calories", "rating", "prep_time", "created_at", "updated_at"),
	defaultSort:  "name",
}

// Search filters by name; type selects System, Me or All sources.
func (s *DishService) Search(q SearchQuery, c utils.Caller) (*Page[models.Dish], error) {
	db := applySearch(s.db.Model(&models.Dish{}), dishList.searchColumn, q.Search)
	db = applySource(db, q.Type, c)
	return paginate[models.Dish](db, dishList, q)
}

func (s *DishService) owned(id uint, c utils.Caller) (*models.Dish, error) {
	d, err := first[models.Dish](s.db, id, msgDishNotFound)
	if err != nil {
		return nil, err
	}
	if err := authorize(d.UserID, c, msgDishNoPermission); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DishService) GetByID(id uint, c utils.Caller) (*DishDetail, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	return s.detail(id)
}

func (s *DishService) detail(id uint) (*DishDetail, error) {
	d, err := first[models.Dish](s.db, id, msgDishNotFound, "Ingredients", "Ingredients.Ingredient")
	if err != nil {
		return nil, err
	}
	var total utils.Nutrition
	for _, di := range d.Ingredients {
		if di.Ingredient != nil {
			total = total.Add(nutritionOf(*di.Ingredient).Scale(di.Quantity))
		}
	}
	total = total.Rounded()
	return &DishDetail{Dish: *d, Nutrition: total, Warnings: utils.AssessNutrition(total, 0)}, nil
}

// Add fails with 400 when an ingredient id is unknown. Calories default to the ingredient sum.
func (s *DishService) Add(req DishRequest, c utils.Caller) (*DishDetail, error) {
	ids := make([]uint, 0, len(req.Ingredients))
	for _, i := range req.Ingredients {
		ids = append(ids, i.IngredientID)
	}
	ingredients, err := loadIngredients(s.db, ids)
	if err != nil {
		return nil, err
	}

	dish := &models.Dish{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Video:       req.Video,
		Instruction: req.Instruction,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		UserID:      utils.OwnerOf(c),
	}
	var kcal float64
	for _, i := range req.Ingredients {
		ing := ingredients[i.IngredientID]
		unit := i.Unit
		if unit == "" {
			unit = ing.Unit
		}
		dish.Ingredients = append(dish.Ingredients, models.DishIngredient{
			IngredientID: i.IngredientID,
			Quantity:     i.Quantity,
			Unit:         unit,
		})
		kcal += ing.Calories * i.Quantity
	}
	dish.Calories = utils.Round(kcal, 2)
	if req.Calories != nil {
		dish.Calories = *req.Calories
	}

	if err := s.db.Create(dish).Error; err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return s.detail(dish.ID)
}

func (s *DishService) Update(id uint, req UpdateDishRequest, c utils.Caller) (*DishDetail, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "name", req.Name)
	setIf(p, "description", req.Description)
	setIf(p, "image", req.Image)
	setIf(p, "video", req.Video)
	setIf(p, "instruction", req.Instruction)
	setIf(p, "prep_time", req.PrepTime)
	setIf(p, "cook_time", req.CookTime)
	setIf(p, "calories", req.Calories)
	if err := applyPatch[models.Dish](s.db, id, p); err != nil {
		return nil, err
	}
	return s.detail(id)
}

// Delete refuses with 409 while a meal still holds a copy of the dish.
func (s *DishService) Delete(id uint, c utils.Caller) error {
	if _, err := s.owned(id, c); err != nil {
		return err
	}
	n, err := countWhere(s.db, &models.MealDish{}, "dish_id = ?", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.Conflict(msgDishInUse)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", id).Delete(&models.DishIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Dish{}, id).Error
	})
}

func (s *DishService) Rating(id uint, value float64) (*models.Dish, error) {
	d, err := first[models.Dish](s.db, id, msgDishNotFound)
	if err != nil {
		return nil, err
	}
	if d.UserID != nil {
		return nil, utils.Forbidden(msgDishRatingPermission)
	}
	if err := rate[models.Dish](s.db, id, value, msgDishNotFound); err != nil {
		return nil, err
	}
	return first[models.Dish](s.db, id, msgDishNotFound)
}

func (s *DishService) AddIngredient(id uint, req DishIngredientRequest, c utils.Caller) (*DishDetail, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	ings, err := loadIngredients(s.db, []uint{req.IngredientID})
	if err != nil {
		return nil, err
	}
	unit := req.Unit
	if unit == "" {
		unit = ings[req.IngredientID].Unit
	}
	row := &models.DishIngredient{DishID: id, IngredientID: req.IngredientID, Quantity: req.Quantity, Unit: unit}
	if err := s.db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("add dish ingredient: %w", err)
	}
	return s.detail(id)
}

func (s *DishService) dishIngredient(dishID, rowID uint) (*models.DishIngredient, error) {
	var row models.DishIngredient
	err := s.db.Preload("Ingredient").Where("id = ? AND dish_id = ?", rowID, dishID).First(&row).Error
	if err != nil {
		return nil, utils.NotFoundOr(err, msgDishIngredientNotFound)
	}
	return &row, nil
}

func (s *DishService) GetIngredient(id, rowID uint, c utils.Caller) (*models.DishIngredient, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	return s.dishIngredient(id, rowID)
}

func (s *DishService) UpdateIngredient(id, rowID uint, req UpdateDishIngredientRequest, c utils.Caller) (*models.DishIngredient, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	if _, err := s.dishIngredient(id, rowID); err != nil {
		return nil, err
	}
	if req.IngredientID != nil {
		if _, err := loadIngredients(s.db, []uint{*req.IngredientID}); err != nil {
			return nil, err
		}
	}
	p := Patch{}
	setIf(p, "ingredient_id", req.IngredientID)
	setIf(p, "quantity", req.Quantity)
	setIf(p, "unit", req.Unit)
	if err := applyPatch[models.DishIngredient](s.db, rowID, p); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Dish{}).Where("id = ?", id).Update("updated_at", time.Now()).Error; err != nil {
		return nil, err
	}
	return s.dishIngredient(id, rowID)
}

func (s *DishService) DeleteIngredient(id, rowID uint, c utils.Caller) error {
	if _, err := s.owned(id, c); err != nil {
		return err
	}
	if _, err := s.dishIngredient(id, rowID); err != nil {
		return err
	}
	return s.db.Delete(&models.DishIngredient{}, rowID).Error
}

// ClosestTo returns system dishes ordered by distance from a calorie target.
func (s *DishService) ClosestTo(calories float64, limit int) ([]models.Dish, error) {
	if limit <= 0 {
		limit = 5
	}
	out := []models.Dish{}
	err := s.db.Where("user_id IS NULL").
		Order(clause.OrderBy{Expression: clause.Expr{SQL: "ABS(calories - ?)", Vars: []any{calories}, WithoutParentheses: true}}).
		Limit(limit).
		Find(&out).Error
	return out, err
}
