package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgIngredientNotFound  = "ingredient not found"
	msgIngredientInUse     = "ingredient is used by a dish"
	msgSomeIngredientsMiss = "some ingredients not found"
)

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

type IngredientRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image" binding:"omitempty,url"`
	Unit        string  `json:"unit"`
	Calories    float64 `json:"calories" binding:"gte=0"`
	Protein     float64 `json:"protein" binding:"gte=0"`
	Fat         float64 `json:"fat" binding:"gte=0"`
	Carbs       float64 `json:"carbs" binding:"gte=0"`
	Sugar       float64 `json:"sugar" binding:"gte=0"`
	Sodium      float64 `json:"sodium" binding:"gte=0"`
	Cholesterol float64 `json:"cholesterol" binding:"gte=0"`
}

type UpdateIngredientRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Image       *string  `json:"image" binding:"omitempty,url"`
	Unit        *string  `json:"unit"`
	Calories    *float64 `json:"calories" binding:"omitempty,gte=0"`
	Protein     *float64 `json:"protein" binding:"omitempty,gte=0"`
	Fat         *float64 `json:"fat" binding:"omitempty,gte=0"`
	Carbs       *float64 `json:"carbs" binding:"omitempty,gte=0"`
	Sugar       *float64 `json:"sugar" binding:"omitempty,gte=0"`
	Sodium      *float64 `json:"sodium" binding:"omitempty,gte=0"`
	Cholesterol *float64 `json:"cholesterol" binding:"omitempty,gte=0"`
}

var ingredientList = listSpec{
	searchColumn: "name",
	sortable:     columns("name", "calories", "protein", "created_at", "updated_at"),
	defaultSort:  "name",
}

func (s *IngredientService) Search(q SearchQuery) (*Page[models.Ingredient], error) {
	db := applySearch(s.db.Model(&models.Ingredient{}), ingredientList.searchColumn, q.Search)
	return paginate[models.Ingredient](db, ingredientList, q)
}

func (s *IngredientService) GetByID(id uint) (*models.Ingredient, error) {
	return first[models.Ingredient](s.db, id, msgIngredientNotFound)
}

func (s *IngredientService) Add(req IngredientRequest) (*models.Ingredient, error) {
	ing := &models.Ingredient{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Unit:        req.Unit,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Fat:         req.Fat,
		Carbs:       req.Carbs,
		Sugar:       req.Sugar,
		Sodium:      req.Sodium,
		Cholesterol: req.Cholesterol,
	}
	if err := s.db.Create(ing).Error; err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ing, nil
}

func (s *IngredientService) Update(id uint, req UpdateIngredientRequest) (*models.Ingredient, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "name", req.Name)
	setIf(p, "description", req.Description)
	setIf(p, "image", req.Image)
	setIf(p, "unit", req.Unit)
	setIf(p, "calories", req.Calories)
	setIf(p, "protein", req.Protein)
	setIf(p, "fat", req.Fat)
	setIf(p, "carbs", req.Carbs)
	setIf(p, "sugar", req.Sugar)
	setIf(p, "sodium", req.Sodium)
	setIf(p, "cholesterol", req.Cholesterol)
	if err := applyPatch[models.Ingredient](s.db, id, p); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *IngredientService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	n, err := countWhere(s.db, &models.DishIngredient{}, "ingredient_id = ?", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.Conflict(msgIngredientInUse)
	}
	return s.db.Delete(&models.Ingredient{}, id).Error
}

// loadIngredients loads ingredients keyed by id and fails with 400 when any id is unknown.
func loadIngredients(db *gorm.DB, ids []uint) (map[uint]models.Ingredient, error) {
	uniq := uniqueIDs(ids)
	var rows []models.Ingredient
	if len(uniq) > 0 {
		if err := db.Where("id IN ?", uniq).Find(&rows).Error; err != nil {
			return nil, err
		}
	}
	if len(rows) != len(uniq) {
		return nil, utils.BadRequest(msgSomeIngredientsMiss)
	}
	out := make(map[uint]models.Ingredient, len(rows))
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func nutritionOf(i models.Ingredient) utils.Nutrition {
	return utils.Nutrition{
		Calories:    i.Calories,
		Protein:     i.Protein,
		Fat:         i.Fat,
		Carbs:       i.Carbs,
		Sugar:       i.Sugar,
		Sodium:      i.Sodium,
		Cholesterol: i.Cholesterol,
	}
}
