package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgWorkoutPlanNotFound     = "workout plan not found"
	msgWorkoutPlanNoPermission = "you do not have permission on this workout plan"
	msgWorkoutPlanInUse        = "workout plan is used by a challenge"
)

type WorkoutPlanService struct {
	db *gorm.DB
}

func NewWorkoutPlanService(db *gorm.DB) *WorkoutPlanService {
	return &WorkoutPlanService{db: db}
}

type WorkoutPlanDetailRequest struct {
	Day  int          `json:"day" binding:"required,min=1,max=7"`
	Week int          `json:"week" binding:"required,min=1"`
	Sets []SetRequest `json:"sets" binding:"dive"`
}

type WorkoutPlanRequest struct {
	Name          string                     `json:"name" binding:"required"`
	Description   string                     `json:"description"`
	Image         string                     `json:"image" binding:"omitempty,url"`
	Level         string                     `json:"type" binding:"required,oneof=Beginner Intermediate Advanced"`
	NumberOfWeeks int                        `json:"number_of_weeks" binding:"gte=0"`
	TotalCalories float64                    `json:"estimated_calories_burned" binding:"gte=0"`
	StartDate     string                     `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate       string                     `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Details       []WorkoutPlanDetailRequest `json:"details" binding:"dive"`
}

type UpdateWorkoutPlanRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1"`
	Description   *string  `json:"description"`
	Image         *string  `json:"image" binding:"omitempty,url"`
	Level         *string  `json:"type" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Status        *string  `json:"status" binding:"omitempty,oneof=Done Undone"`
	NumberOfWeeks *int     `json:"number_of_weeks" binding:"omitempty,gte=0"`
	TotalCalories *float64 `json:"estimated_calories_burned" binding:"omitempty,gte=0"`
	StartDate     *string  `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate       *string  `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

var workoutPlanList = listSpec{
	searchColumn: "name",
	sortable:     columns("name", "rating", "total_calories", "number_of_weeks", "created_at", "updated_at"),
	defaultSort:  "name",
}

// Search filters by name, level (type), status and source.
func (s *WorkoutPlanService) Search(q SearchQuery, c utils.Caller) (*Page[models.WorkoutPlan], error) {
	db := applySearch(s.db.Model(&models.WorkoutPlan{}), workoutPlanList.searchColumn, q.Search)
	db = applyEnum(db, "level", q.Type)
	db = applyEnum(db, "status", q.Status)
	db = applySource(db, q.Source, c)
	return paginate[models.WorkoutPlan](db, workoutPlanList, q)
}

func (s *WorkoutPlanService) owned(id uint, c utils.Caller) (*models.WorkoutPlan, error) {
	p, err := first[models.WorkoutPlan](s.db, id, msgWorkoutPlanNotFound)
	if err != nil {
		return nil, err
	}
	if err := authorize(p.UserID, c, msgWorkoutPlanNoPermission); err != nil {
		return nil, err
	}
	return p, nil
}

// loadPlan reads the whole tree: details, their sets and each set's exercises.
func loadPlan(db *gorm.DB, id uint) (*models.WorkoutPlan, error) {
	q := db.Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("week ASC, day ASC, id ASC")
	}).Preload("Details.Sets.SetExercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("orders ASC, id ASC")
	})
	return first[models.WorkoutPlan](q, id, msgWorkoutPlanNotFound, "Details.Sets.SetExercises.Exercise")
}

func (s *WorkoutPlanService) GetByID(id uint, c utils.Caller) (*models.WorkoutPlan, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	return loadPlan(s.db, id)
}

// createDetail persists a detail and its inline sets, in request order.
func createDetail(tx *gorm.DB, planID uint, req WorkoutPlanDetailRequest, owner *uint) (*models.WorkoutPlanDetail, error) {
	detail := &models.WorkoutPlanDetail{
		WorkoutPlanID: planID,
		Day:           req.Day,
		Week:          req.Week,
		Status:        models.StatusUndone,
	}
	if err := tx.Create(detail).Error; err != nil {
		return nil, err
	}
	for _, sr := range req.Sets {
		set := newSet(sr, owner)
		if err := tx.Create(set).Error; err != nil {
			return nil, err
		}
		if err := linkSet(tx, detail.ID, set.ID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (s *WorkoutPlanService) Add(req WorkoutPlanRequest, c utils.Caller) (*models.WorkoutPlan, error) {
	var sets []SetRequest
	for _, d := range req.Details {
		sets = append(sets, d.Sets...)
	}
	if err := checkExercises(s.db, setExerciseIDs(sets...)); err != nil {
		return nil, err
	}

	owner := utils.OwnerOf(c)
	plan := &models.WorkoutPlan{
		Name:          req.Name,
		Description:   req.Description,
		Image:         req.Image,
		Level:         req.Level,
		Status:        models.StatusUndone,
		NumberOfWeeks: req.NumberOfWeeks,
		TotalCalories: req.TotalCalories,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		UserID:        owner,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		for _, d := range req.Details {
			if _, err := createDetail(tx, plan.ID, d, owner); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create workout plan: %w", err)
	}
	return loadPlan(s.db, plan.ID)
}

func (s *WorkoutPlanService) Update(id uint, req UpdateWorkoutPlanRequest, c utils.Caller) (*models.WorkoutPlan, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "name", req.Name)
	setIf(p, "description", req.Description)
	setIf(p, "image", req.Image)
	setIf(p, "level", req.Level)
	setIf(p, "status", req.Status)
	setIf(p, "number_of_weeks", req.NumberOfWeeks)
	setIf(p, "total_calories", req.TotalCalories)
	setIf(p, "start_date", req.StartDate)
	setIf(p, "end_date", req.EndDate)
	if err := applyPatch[models.WorkoutPlan](s.db, id, p); err != nil {
		return nil, err
	}
	return loadPlan(s.db, id)
}

// Delete refuses with 400 when a challenge was built from the plan; otherwise
// the details and their sets go with it.
func (s *WorkoutPlanService) Delete(id uint, c utils.Caller) error {
	if _, err := s.owned(id, c); err != nil {
		return err
	}
	n, err := countWhere(s.db, &models.Challenge{}, "workout_plan_id = ?", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.BadRequest(msgWorkoutPlanInUse)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var detailIDs []uint
		if err := tx.Model(&models.WorkoutPlanDetail{}).Where("workout_plan_id = ?", id).Pluck("id", &detailIDs).Error; err != nil {
			return err
		}
		if err := deleteDetails(tx, detailIDs); err != nil {
			return err
		}
		return tx.Delete(&models.WorkoutPlan{}, id).Error
	})
}

func linkSet(tx *gorm.DB, detailID, setID uint) error {
	return tx.Exec("INSERT INTO workout_plan_detail_sets (workout_plan_detail_id, set_id) VALUES (?, ?)", detailID, setID).Error
}

func deleteDetails(tx *gorm.DB, detailIDs []uint) error {
	if len(detailIDs) == 0 {
		return nil
	}
	var setIDs []uint
	if err := tx.Table("workout_plan_detail_sets").Where("workout_plan_detail_id IN ?", detailIDs).Pluck("set_id", &setIDs).Error; err != nil {
		return err
	}
	if err := deleteSets(tx, setIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", detailIDs).Delete(&models.WorkoutPlanDetail{}).Error
}
