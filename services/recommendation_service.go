package services

import (
	"math"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgNotEnoughInfo = "user does not have enough information"
	msgNoGoal        = "calorie goal has not been recommended yet"
	msgNoExercises   = "no exercises available for this category"
)

type RecommendationService struct {
	db     *gorm.DB
	users  *UserService
	dishes *DishService
	now    func() time.Time
}

func NewRecommendationService(db *gorm.DB, users *UserService, dishes *DishService) *RecommendationService {
	return &RecommendationService{db: db, users: users, dishes: dishes, now: time.Now}
}

type CalorieRecommendRequest struct {
	CalorieChangePerDay float64 `json:"calorie_change_per_day" binding:"omitempty,gt=0,lte=5000"`
}

type CalorieRecommendResponse struct {
	utils.CalorieRecommendation
	GoalDetail models.GoalDetail `json:"goalDetail"`
}

type WorkoutRecommendRequest struct {
	// Calories is the daily burn target; the stored goal is used when omitted.
	Calories        float64 `json:"calories" binding:"omitempty,gt=0"`
	NumberOfSets    int     `json:"number_of_sets" binding:"omitempty,min=1,max=10"`
	ExercisesPerSet int     `json:"exercises_per_set" binding:"omitempty,min=1,max=10"`
	Category        string  `json:"category" binding:"omitempty,oneof=Cardio Strength All"`
}

type WorkoutRecommendResponse struct {
	Calories float64            `json:"calories"`
	Sets     []utils.PlannedSet `json:"sets"`
}

type DishRecommendRequest struct {
	Calories float64 `json:"calories" binding:"required,gt=0"`
	Limit    int     `json:"limit" binding:"omitempty,min=1,max=50"`
}

// Calories computes the calorie plan for the caller's profile and stores it as the goal.
func (s *RecommendationService) Calories(req CalorieRecommendRequest, c utils.Caller) (*CalorieRecommendResponse, error) {
	u, err := first[models.User](s.db, c.ID, msgUserNotFound)
	if err != nil {
		return nil, err
	}
	if u.Weight <= 0 || u.GoalWeight <= 0 || u.Height <= 0 || u.DateOfBirth == nil || !utils.ValidActivityLevel(u.ActivityLevel) {
		return nil, utils.BadRequest(msgNotEnoughInfo)
	}
	now := s.now()
	rec := utils.RecommendCalories(utils.CalorieInput{
		CurrentWeight:       u.Weight,
		DesiredWeight:       u.GoalWeight,
		Height:              u.Height,
		Age:                 utils.CalculateAge(*u.DateOfBirth, now),
		Gender:              u.Gender,
		ActivityLevel:       u.ActivityLevel,
		CalorieChangePerDay: req.CalorieChangePerDay,
	})
	target := now.AddDate(0, 0, int(rec.DaysToGoal))
	goal := models.GoalDetail{
		StartDate:  &now,
		TargetDate: &target,
		Days:       int(rec.DaysToGoal),
		Goal:       rec.TotalCalories,
		Progress:   0,
		Status:     models.GoalUnStart,
	}
	if err := s.users.SaveGoal(u.ID, goal); err != nil {
		return nil, err
	}
	return &CalorieRecommendResponse{CalorieRecommendation: rec, GoalDetail: goal}, nil
}

// WorkoutPlans proposes sets from the system exercise catalog for a daily burn target.
func (s *RecommendationService) WorkoutPlans(req WorkoutRecommendRequest, c utils.Caller) (*WorkoutRecommendResponse, error) {
	budget := req.Calories
	if budget == 0 {
		u, err := first[models.User](s.db, c.ID, msgUserNotFound)
		if err != nil {
			return nil, err
		}
		if u.GoalDetail.Days <= 0 || u.GoalDetail.Goal <= 0 {
			return nil, utils.BadRequest(msgNoGoal)
		}
		budget = math.Round(u.GoalDetail.Goal / float64(u.GoalDetail.Days))
	}
	sets, perSet := req.NumberOfSets, req.ExercisesPerSet
	if sets == 0 {
		sets = 3
	}
	if perSet == 0 {
		perSet = 4
	}

	var exercises []models.Exercise
	q := applyEnum(s.db.Model(&models.Exercise{}), "category", req.Category)
	if err := q.Order("rating DESC, id ASC").Find(&exercises).Error; err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, utils.NotFound(msgNoExercises)
	}
	return &WorkoutRecommendResponse{
		Calories: budget,
		Sets:     utils.GetSetExercises(budget, sets, perSet, exercises),
	}, nil
}

// Dishes returns system dishes closest to the calorie target.
func (s *RecommendationService) Dishes(req DishRecommendRequest) ([]models.Dish, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 5
	}
	return s.dishes.ClosestTo(req.Calories, limit)
}
