package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const msgWorkoutPlanDetailNotFound = "workout plan detail not found"

type WorkoutPlanDetailService struct {
	db    *gorm.DB
	plans *WorkoutPlanService
}

func NewWorkoutPlanDetailService(db *gorm.DB, plans *WorkoutPlanService) *WorkoutPlanDetailService {
	return &WorkoutPlanDetailService{db: db, plans: plans}
}

type DetailQuery struct {
	Status string `form:"status"`
	Week   int    `form:"week" binding:"omitempty,min=1"`
}

type UpdateWorkoutPlanDetailRequest struct {
	Day    *int    `json:"day" binding:"omitempty,min=1,max=7"`
	Week   *int    `json:"week" binding:"omitempty,min=1"`
	Status *string `json:"status" binding:"omitempty,oneof=Done Undone"`
}

func (s *WorkoutPlanDetailService) List(planID uint, q DetailQuery, c utils.Caller) ([]models.WorkoutPlanDetail, error) {
	if _, err := s.plans.owned(planID, c); err != nil {
		return nil, err
	}
	db := applyEnum(s.db.Where("workout_plan_id = ?", planID), "status", q.Status)
	if q.Week > 0 {
		db = db.Where("week = ?", q.Week)
	}
	out := []models.WorkoutPlanDetail{}
	err := db.Preload("Sets").Order("week ASC, day ASC, id ASC").Find(&out).Error
	return out, err
}

func (s *WorkoutPlanDetailService) load(planID, id uint) (*models.WorkoutPlanDetail, error) {
	var d models.WorkoutPlanDetail
	err := s.db.
		Preload("Sets.SetExercises", func(db *gorm.DB) *gorm.DB { return db.Order("orders ASC, id ASC") }).
		Preload("Sets.SetExercises.Exercise").
		Where("id = ? AND workout_plan_id = ?", id, planID).
		First(&d).Error
	if err != nil {
		return nil, utils.NotFoundOr(err, msgWorkoutPlanDetailNotFound)
	}
	return &d, nil
}

func (s *WorkoutPlanDetailService) GetByID(planID, id uint, c utils.Caller) (*models.WorkoutPlanDetail, error) {
	if _, err := s.plans.owned(planID, c); err != nil {
		return nil, err
	}
	return s.load(planID, id)
}

func (s *WorkoutPlanDetailService) Add(planID uint, req WorkoutPlanDetailRequest, c utils.Caller) (*models.WorkoutPlanDetail, error) {
	plan, err := s.plans.owned(planID, c)
	if err != nil {
		return nil, err
	}
	if err := checkExercises(s.db, setExerciseIDs(req.Sets...)); err != nil {
		return nil, err
	}
	var detail *models.WorkoutPlanDetail
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		detail, err = createDetail(tx, planID, req, plan.UserID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create workout plan detail: %w", err)
	}
	return s.load(planID, detail.ID)
}

// AddSet creates a set from the request and attaches it to the detail.
func (s *WorkoutPlanDetailService) AddSet(planID, id uint, req SetRequest, c utils.Caller) (*models.WorkoutPlanDetail, error) {
	plan, err := s.plans.owned(planID, c)
	if err != nil {
		return nil, err
	}
	if _, err := s.load(planID, id); err != nil {
		return nil, err
	}
	if err := checkExercises(s.db, setExerciseIDs(req)); err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		set := newSet(req, plan.UserID)
		if err := tx.Create(set).Error; err != nil {
			return err
		}
		return linkSet(tx, id, set.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("add set to detail: %w", err)
	}
	return s.load(planID, id)
}

// DeleteSet detaches the set from the detail and removes it.
func (s *WorkoutPlanDetailService) DeleteSet(planID, id, setID uint, c utils.Caller) (*models.WorkoutPlanDetail, error) {
	if _, err := s.plans.owned(planID, c); err != nil {
		return nil, err
	}
	if _, err := s.load(planID, id); err != nil {
		return nil, err
	}
	var n int64
	err := s.db.Table("workout_plan_detail_sets").
		Where("workout_plan_detail_id = ? AND set_id = ?", id, setID).
		Count(&n).Error
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, utils.NotFound(msgSetNotFound)
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error { return deleteSets(tx, []uint{setID}) }); err != nil {
		return nil, err
	}
	return s.load(planID, id)
}

func (s *WorkoutPlanDetailService) Update(planID, id uint, req UpdateWorkoutPlanDetailRequest, c utils.Caller) (*models.WorkoutPlanDetail, error) {
	if _, err := s.plans.owned(planID, c); err != nil {
		return nil, err
	}
	if _, err := s.load(planID, id); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "day", req.Day)
	setIf(p, "week", req.Week)
	setIf(p, "status", req.Status)
	if err := applyPatch[models.WorkoutPlanDetail](s.db, id, p); err != nil {
		return nil, err
	}
	return s.load(planID, id)
}

func (s *WorkoutPlanDetailService) Delete(planID, id uint, c utils.Caller) error {
	if _, err := s.plans.owned(planID, c); err != nil {
		return err
	}
	if _, err := s.load(planID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteDetails(tx, []uint{id})
	})
}
