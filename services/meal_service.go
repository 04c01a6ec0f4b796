package services

import (
	"fmt"
	"sort"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgMealNotFound      = "meal not found"
	msgMealNoPermission  = "you do not have permission on this meal"
	msgMealInUse         = "meal is used by a challenge"
	msgSomeDishesMissing = "some dishes not found"
	msgSomeMealsMissing  = "some meals not found"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type MealDishRequest struct {
	DishID   uint    `json:"dish_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"omitempty,gt=0"`
}

type MealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Image       string            `json:"image" binding:"omitempty,url"`
	MealType    string            `json:"meal_type" binding:"required,oneof=Breakfast Lunch Dinner"`
	Date        string            `json:"date" binding:"required,datetime=2006-01-02"`
	PrepTime    int               `json:"prep_time" binding:"gte=0"`
	Calories    *float64          `json:"calories" binding:"omitempty,gte=0"`
	Dishes      []MealDishRequest `json:"dishes" binding:"dive"`
}

type CloneMealsRequest struct {
	MealIDs []uint `json:"meal_ids" binding:"required,min=1"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
}

type MealQuery struct {
	SearchQuery
	MealType string `form:"meal_type"`
}

// MealsByDate groups one day's meals by type, each group sorted by calories.
type MealsByDate struct {
	Breakfasts []models.Meal `json:"breakfasts"`
	Lunches    []models.Meal `json:"lunches"`
	Dinners    []models.Meal `json:"dinners"`
}

var mealList = listSpec{
	searchColumn: "name",
	sortable:     columns("name", "calories", "date", "created_at", "updated_at"),
	defaultSort:  "name",
}

func (s *MealService) Search(q MealQuery, c utils.Caller) (*Page[models.Meal], error) {
	db := applySearch(s.db.Model(&models.Meal{}), mealList.searchColumn, q.Search)
	db = applyEnum(db, "meal_type", q.MealType)
	db = applySource(db, q.Type, c)
	return paginate[models.Meal](db, mealList, q.SearchQuery)
}

func (s *MealService) ByDate(date string, c utils.Caller) (*MealsByDate, error) {
	var meals []models.Meal
	err := s.db.Where("user_id = ? AND date = ?", c.ID, date).Find(&meals).Error
	if err != nil {
		return nil, err
	}
	sort.SliceStable(meals, func(i, j int) bool { return meals[i].Calories < meals[j].Calories })

	out := &MealsByDate{Breakfasts: []models.Meal{}, Lunches: []models.Meal{}, Dinners: []models.Meal{}}
	for _, m := range meals {
		switch m.MealType {
		case models.MealBreakfast:
			out.Breakfasts = append(out.Breakfasts, m)
		case models.MealLunch:
			out.Lunches = append(out.Lunches, m)
		case models.MealDinner:
			out.Dinners = append(out.Dinners, m)
		}
	}
	return out, nil
}

func (s *MealService) owned(id uint, c utils.Caller) (*models.Meal, error) {
	m, err := first[models.Meal](s.db, id, msgMealNotFound, "Dishes")
	if err != nil {
		return nil, err
	}
	if err := authorize(m.UserID, c, msgMealNoPermission); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MealService) GetByID(id uint, c utils.Caller) (*models.Meal, error) {
	return s.owned(id, c)
}

// copyDishes snapshots the requested dishes into meal rows. Only system dishes
// and, when owner is set, that user's own dishes may be copied.
func copyDishes(db *gorm.DB, reqs []MealDishRequest, owner *uint) ([]models.MealDish, float64, error) {
	ids := make([]uint, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.DishID)
	}
	uniq := uniqueIDs(ids)
	var dishes []models.Dish
	if len(uniq) > 0 {
		if err := db.Where("id IN ?", uniq).Find(&dishes).Error; err != nil {
			return nil, 0, err
		}
	}
	if len(dishes) != len(uniq) {
		return nil, 0, utils.BadRequest(msgSomeDishesMissing)
	}
	byID := make(map[uint]models.Dish, len(dishes))
	for _, d := range dishes {
		if d.UserID != nil && (owner == nil || *d.UserID != *owner) {
			return nil, 0, utils.Forbidden(msgDishNoPermission)
		}
		byID[d.ID] = d
	}

	out := make([]models.MealDish, 0, len(reqs))
	var kcal float64
	for _, r := range reqs {
		d := byID[r.DishID]
		q := r.Quantity
		if q == 0 {
			q = 1
		}
		out = append(out, models.MealDish{
			DishID:      d.ID,
			Name:        d.Name,
			Description: d.Description,
			Image:       d.Image,
			Calories:    d.Calories,
			Quantity:    q,
		})
		kcal += d.Calories * q
	}
	return out, utils.Round(kcal, 2), nil
}

func (s *MealService) Add(req MealRequest, c utils.Caller) (*models.Meal, error) {
	dishes, kcal, err := copyDishes(s.db, req.Dishes, utils.OwnerOf(c))
	if err != nil {
		return nil, err
	}
	meal := &models.Meal{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		MealType:    req.MealType,
		Date:        req.Date,
		PrepTime:    req.PrepTime,
		Calories:    kcal,
		Status:      models.StatusUndone,
		UserID:      utils.OwnerOf(c),
		Dishes:      dishes,
	}
	if req.Calories != nil {
		meal.Calories = *req.Calories
	}
	if err := s.db.Create(meal).Error; err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return meal, nil
}

// Clone copies visible meals (system or the caller's own) to the caller on date.
func (s *MealService) Clone(req CloneMealsRequest, c utils.Caller) ([]models.Meal, error) {
	uniq := uniqueIDs(req.MealIDs)
	var src []models.Meal
	if err := s.db.Preload("Dishes").Where("id IN ?", uniq).Find(&src).Error; err != nil {
		return nil, err
	}
	if len(src) != len(uniq) {
		return nil, utils.BadRequest(msgSomeMealsMissing)
	}

	owner := c.ID
	out := make([]models.Meal, 0, len(src))
	for _, m := range src {
		if m.UserID != nil && *m.UserID != c.ID {
			return nil, utils.Forbidden(msgMealNoPermission)
		}
		cp := models.Meal{
			Name:        m.Name,
			Description: m.Description,
			Image:       m.Image,
			MealType:    m.MealType,
			Date:        req.Date,
			PrepTime:    m.PrepTime,
			Calories:    m.Calories,
			Status:      models.StatusUndone,
			UserID:      &owner,
		}
		for _, d := range m.Dishes {
			cp.Dishes = append(cp.Dishes, models.MealDish{
				DishID:      d.DishID,
				Name:        d.Name,
				Description: d.Description,
				Image:       d.Image,
				Calories:    d.Calories,
				Quantity:    d.Quantity,
			})
		}
		out = append(out, cp)
	}
	if err := s.db.Create(&out).Error; err != nil {
		return nil, fmt.Errorf("clone meals: %w", err)
	}
	return out, nil
}

// Update replaces the meal's fields; dishes are replaced when provided.
func (s *MealService) Update(id uint, req MealRequest, c utils.Caller) (*models.Meal, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p := Patch{
			"name":        req.Name,
			"description": req.Description,
			"image":       req.Image,
			"meal_type":   req.MealType,
			"date":        req.Date,
			"prep_time":   req.PrepTime,
		}
		if req.Dishes != nil {
			dishes, kcal, err := copyDishes(tx, req.Dishes, utils.OwnerOf(c))
			if err != nil {
				return err
			}
			if err := tx.Where("meal_id = ?", id).Delete(&models.MealDish{}).Error; err != nil {
				return err
			}
			for i := range dishes {
				dishes[i].MealID = id
			}
			if len(dishes) > 0 {
				if err := tx.Create(&dishes).Error; err != nil {
					return err
				}
			}
			p["calories"] = kcal
		}
		setIf(p, "calories", req.Calories)
		return applyPatch[models.Meal](tx, id, p)
	})
	if err != nil {
		return nil, err
	}
	return first[models.Meal](s.db, id, msgMealNotFound, "Dishes")
}

// Delete refuses with 400 while a challenge was built from the meal.
func (s *MealService) Delete(id uint, c utils.Caller) error {
	if _, err := s.owned(id, c); err != nil {
		return err
	}
	n, err := countWhere(s.db, &models.Challenge{}, "meal_id = ?", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.BadRequest(msgMealInUse)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", id).Delete(&models.MealDish{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meal{}, id).Error
	})
}
