package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgExerciseNotFound = "exercise not found"
	msgExerciseInUse    = "exercise is used by a set"
)

type ExerciseService struct {
	db *gorm.DB
}

func NewExerciseService(db *gorm.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

type ExerciseRequest struct {
	Name                   string  `json:"name" binding:"required"`
	Category               string  `json:"category" binding:"required,oneof=Cardio Strength"`
	Description            string  `json:"description"`
	Instructions           string  `json:"instructions"`
	TargetMuscle           string  `json:"target_muscle"`
	Equipment              string  `json:"equipment"`
	Image                  string  `json:"image" binding:"omitempty,url"`
	Video                  string  `json:"video" binding:"omitempty,url"`
	CaloriesBurnPerMinutes float64 `json:"calories_burn_per_minutes" binding:"gte=0"`
}

type UpdateExerciseRequest struct {
	Name                   *string  `json:"name" binding:"omitempty,min=1"`
	Category               *string  `json:"category" binding:"omitempty,oneof=Cardio Strength"`
	Description            *string  `json:"description"`
	Instructions           *string  `json:"instructions"`
	TargetMuscle           *string  `json:"target_muscle"`
	Equipment              *string  `json:"equipment"`
	Image                  *string  `json:"image" binding:"omitempty,url"`
	Video                  *string  `json:"video" binding:"omitempty,url"`
	CaloriesBurnPerMinutes *float64 `json:"calories_burn_per_minutes" binding:"omitempty,gte=0"`
}

var exerciseList = listSpec{
	searchColumn: "name",
	sortable:     columns("name", "rating", "calories_burn_per_minutes", "created_at", "updated_at"),
	defaultSort:  "name",
}

// Search filters by name and, through type, by category.
func (s *ExerciseService) Search(q SearchQuery) (*Page[models.Exercise], error) {
	db := s.db.Model(&models.Exercise{})
	db = applySearch(db, exerciseList.searchColumn, q.Search)
	db = applyEnum(db, "category", q.Type)
	return paginate[models.Exercise](db, exerciseList, q)
}

func (s *ExerciseService) All() ([]models.ExerciseOption, error) {
	out := []models.ExerciseOption{}
	err := s.db.Model(&models.Exercise{}).Select("id", "name").Order("name").Scan(&out).Error
	return out, err
}

func (s *ExerciseService) GetByID(id uint) (*models.Exercise, error) {
	return first[models.Exercise](s.db, id, msgExerciseNotFound)
}

func (s *ExerciseService) Add(req ExerciseRequest) (*models.Exercise, error) {
	ex := &models.Exercise{
		Name:                   req.Name,
		Category:               req.Category,
		Description:            req.Description,
		Instructions:           req.Instructions,
		TargetMuscle:           req.TargetMuscle,
		Equipment:              req.Equipment,
		Image:                  req.Image,
		Video:                  req.Video,
		CaloriesBurnPerMinutes: req.CaloriesBurnPerMinutes,
	}
	if err := s.db.Create(ex).Error; err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return ex, nil
}

func (s *ExerciseService) Update(id uint, req UpdateExerciseRequest) (*models.Exercise, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "name", req.Name)
	setIf(p, "category", req.Category)
	setIf(p, "description", req.Description)
	setIf(p, "instructions", req.Instructions)
	setIf(p, "target_muscle", req.TargetMuscle)
	setIf(p, "equipment", req.Equipment)
	setIf(p, "image", req.Image)
	setIf(p, "video", req.Video)
	setIf(p, "calories_burn_per_minutes", req.CaloriesBurnPerMinutes)
	if err := applyPatch[models.Exercise](s.db, id, p); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete refuses with 409 while any set still uses the exercise.
func (s *ExerciseService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	n, err := countWhere(s.db, &models.SetExercise{}, "exercise_id = ?", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.Conflict(msgExerciseInUse)
	}
	return s.db.Delete(&models.Exercise{}, id).Error
}

func (s *ExerciseService) Rating(id uint, value float64) (*models.Exercise, error) {
	if err := rate[models.Exercise](s.db, id, value, msgExerciseNotFound); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}
