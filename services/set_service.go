package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgSetNotFound          = "set not found"
	msgSetNoPermission      = "you do not have permission on this set"
	msgSetInUse             = "set is used by a workout plan"
	msgSetInChallenge       = "set belongs to a challenge"
	msgSomeExercisesMissing = "some exercises not found"
	msgSetExerciseNotFound  = "set exercise not found"
)

type SetService struct {
	db *gorm.DB
}

func NewSetService(db *gorm.DB) *SetService {
	return &SetService{db: db}
}

type SetExerciseRequest struct {
	ExerciseID              uint    `json:"exercise_id" binding:"required"`
	Duration                int     `json:"duration" binding:"gte=0"`
	Reps                    int     `json:"reps" binding:"gte=0"`
	Round                   int     `json:"round" binding:"gte=0"`
	RestPerRound            int     `json:"rest_per_round" binding:"gte=0"`
	EstimatedCaloriesBurned float64 `json:"estimated_calories_burned" binding:"gte=0"`
}

type UpdateSetExerciseRequest struct {
	ExerciseID              *uint    `json:"exercise_id"`
	Duration                *int     `json:"duration" binding:"omitempty,gte=0"`
	Reps                    *int     `json:"reps" binding:"omitempty,gte=0"`
	Round                   *int     `json:"round" binding:"omitempty,gte=0"`
	RestPerRound            *int     `json:"rest_per_round" binding:"omitempty,gte=0"`
	EstimatedCaloriesBurned *float64 `json:"estimated_calories_burned" binding:"omitempty,gte=0"`
	Status                  *string  `json:"status" binding:"omitempty,oneof=Done Undone"`
}

type SetRequest struct {
	Name         string               `json:"name" binding:"required"`
	Type         string               `json:"type" binding:"required,oneof=Beginner Intermediate Advanced"`
	Description  string               `json:"description"`
	Image        string               `json:"image" binding:"omitempty,url"`
	SetExercises []SetExerciseRequest `json:"set_exercises" binding:"dive"`
}

type UpdateSetRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Type        *string `json:"type" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Description *string `json:"description"`
	Image       *string `json:"image" binding:"omitempty,url"`
	IsFavorite  *bool   `json:"is_favorite"`
}

var setList = listSpec{
	searchColumn: "name",
	sortable:     columns("name", "rating", "total_calories", "number_of_exercises", "created_at", "updated_at"),
	defaultSort:  "name",
}

func (s *SetService) Search(q SearchQuery, c utils.Caller) (*Page[models.Set], error) {
	db := applySearch(s.db.Model(&models.Set{}).Where("challenge_id IS NULL"), setList.searchColumn, q.Search)
	db = applySource(db, q.Type, c)
	return paginate[models.Set](db, setList, q)
}

func (s *SetService) owned(id uint, c utils.Caller) (*models.Set, error) {
	set, err := first[models.Set](s.db, id, msgSetNotFound)
	if err != nil {
		return nil, err
	}
	if err := authorize(set.UserID, c, msgSetNoPermission); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *SetService) GetByID(id uint, c utils.Caller) (*models.Set, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	return s.load(s.db, id)
}

func (s *SetService) load(db *gorm.DB, id uint) (*models.Set, error) {
	return first[models.Set](db.Preload("SetExercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("orders ASC, id ASC")
	}), id, msgSetNotFound, "SetExercises.Exercise")
}

// checkExercises fails with 400 when any id is not in the catalog.
func checkExercises(db *gorm.DB, ids []uint) error {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return nil
	}
	var n int64
	if err := db.Model(&models.Exercise{}).Where("id IN ?", uniq).Count(&n).Error; err != nil {
		return err
	}
	if int(n) != len(uniq) {
		return utils.BadRequest(msgSomeExercisesMissing)
	}
	return nil
}

func (s *SetService) Add(req SetRequest, c utils.Caller) (*models.Set, error) {
	if err := checkExercises(s.db, setExerciseIDs(req)); err != nil {
		return nil, err
	}
	set := newSet(req, utils.OwnerOf(c))
	if err := s.db.Create(set).Error; err != nil {
		return nil, fmt.Errorf("create set: %w", err)
	}
	return s.load(s.db, set.ID)
}

func (s *SetService) Update(id uint, req UpdateSetRequest, c utils.Caller) (*models.Set, error) {
	if _, err := s.owned(id, c); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "name", req.Name)
	setIf(p, "type", req.Type)
	setIf(p, "description", req.Description)
	setIf(p, "image", req.Image)
	setIf(p, "is_favorite", req.IsFavorite)
	if err := applyPatch[models.Set](s.db, id, p); err != nil {
		return nil, err
	}
	return s.load(s.db, id)
}

// Delete refuses with 409 while a workout plan detail or a challenge references the set.
func (s *SetService) Delete(id uint, c utils.Caller) error {
	set, err := s.owned(id, c)
	if err != nil {
		return err
	}
	if set.ChallengeID != nil {
		return utils.Conflict(msgSetInChallenge)
	}
	var n int64
	if err := s.db.Table("workout_plan_detail_sets").Where("set_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return utils.Conflict(msgSetInUse)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteSets(tx, []uint{id})
	})
}

func (s *SetService) Rating(id uint, value float64) (*models.Set, error) {
	if err := rate[models.Set](s.db, id, value, msgSetNotFound); err != nil {
		return nil, err
	}
	return s.load(s.db, id)
}

// newSet builds an unsaved set with its exercises in request order.
func newSet(req SetRequest, owner *uint) *models.Set {
	set := &models.Set{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Image:       req.Image,
		UserID:      owner,
	}
	for i, e := range req.SetExercises {
		set.SetExercises = append(set.SetExercises, models.SetExercise{
			ExerciseID:              e.ExerciseID,
			Duration:                e.Duration,
			Reps:                    e.Reps,
			Round:                   e.Round,
			RestPerRound:            e.RestPerRound,
			EstimatedCaloriesBurned: e.EstimatedCaloriesBurned,
			Status:                  models.StatusUndone,
			Orders:                  i + 1,
		})
		set.TotalCalories += e.EstimatedCaloriesBurned
	}
	set.NumberOfExercises = len(set.SetExercises)
	set.TotalCalories = utils.Round(set.TotalCalories, 2)
	return set
}

func setExerciseIDs(reqs ...SetRequest) []uint {
	var ids []uint
	for _, r := range reqs {
		for _, e := range r.SetExercises {
			ids = append(ids, e.ExerciseID)
		}
	}
	return ids
}

// deleteSets removes sets together with their exercises and plan links.
func deleteSets(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM workout_plan_detail_sets WHERE set_id IN ?", ids).Error; err != nil {
		return err
	}
	if err := tx.Where("set_id IN ?", ids).Delete(&models.SetExercise{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Set{}).Error
}

// refreshTotals keeps number_of_exercises and total_calories in step with the children.
func refreshTotals(db *gorm.DB, setID uint) error {
	var agg struct {
		N     int64
		Total float64
	}
	err := db.Model(&models.SetExercise{}).
		Select("COUNT(*) AS n, COALESCE(SUM(estimated_calories_burned), 0) AS total").
		Where("set_id = ?", setID).
		Scan(&agg).Error
	if err != nil {
		return err
	}
	return db.Model(&models.Set{}).Where("id = ?", setID).Updates(map[string]any{
		"number_of_exercises": agg.N,
		"total_calories":      utils.Round(agg.Total, 2),
	}).Error
}

func (s *SetService) setExercise(setID, id uint) (*models.SetExercise, error) {
	var row models.SetExercise
	err := s.db.Preload("Exercise").Where("id = ? AND set_id = ?", id, setID).First(&row).Error
	if err != nil {
		return nil, utils.NotFoundOr(err, msgSetExerciseNotFound)
	}
	return &row, nil
}

func (s *SetService) GetSetExercise(setID, id uint, c utils.Caller) (*models.SetExercise, error) {
	if _, err := s.owned(setID, c); err != nil {
		return nil, err
	}
	return s.setExercise(setID, id)
}

func (s *SetService) AddSetExercise(setID uint, req SetExerciseRequest, c utils.Caller) (*models.SetExercise, error) {
	if _, err := s.owned(setID, c); err != nil {
		return nil, err
	}
	if err := checkExercises(s.db, []uint{req.ExerciseID}); err != nil {
		return nil, err
	}
	row := &models.SetExercise{
		SetID:                   setID,
		ExerciseID:              req.ExerciseID,
		Duration:                req.Duration,
		Reps:                    req.Reps,
		Round:                   req.Round,
		RestPerRound:            req.RestPerRound,
		EstimatedCaloriesBurned: req.EstimatedCaloriesBurned,
		Status:                  models.StatusUndone,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.SetExercise{}).Where("set_id = ?", setID).
			Select("COALESCE(MAX(orders), 0)").Scan(&last).Error; err != nil {
			return err
		}
		row.Orders = last + 1
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return refreshTotals(tx, setID)
	})
	if err != nil {
		return nil, fmt.Errorf("add set exercise: %w", err)
	}
	return s.setExercise(setID, row.ID)
}

func (s *SetService) UpdateSetExercise(setID, id uint, req UpdateSetExerciseRequest, c utils.Caller) (*models.SetExercise, error) {
	if _, err := s.owned(setID, c); err != nil {
		return nil, err
	}
	if _, err := s.setExercise(setID, id); err != nil {
		return nil, err
	}
	if req.ExerciseID != nil {
		if err := checkExercises(s.db, []uint{*req.ExerciseID}); err != nil {
			return nil, err
		}
	}
	p := Patch{}
	setIf(p, "exercise_id", req.ExerciseID)
	setIf(p, "duration", req.Duration)
	setIf(p, "reps", req.Reps)
	setIf(p, "round", req.Round)
	setIf(p, "rest_per_round", req.RestPerRound)
	setIf(p, "estimated_calories_burned", req.EstimatedCaloriesBurned)
	setIf(p, "status", req.Status)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyPatch[models.SetExercise](tx, id, p); err != nil {
			return err
		}
		return refreshTotals(tx, setID)
	})
	if err != nil {
		return nil, err
	}
	return s.setExercise(setID, id)
}

func (s *SetService) DeleteSetExercise(setID, id uint, c utils.Caller) error {
	if _, err := s.owned(setID, c); err != nil {
		return err
	}
	if _, err := s.setExercise(setID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SetExercise{}, id).Error; err != nil {
			return err
		}
		return refreshTotals(tx, setID)
	})
}
