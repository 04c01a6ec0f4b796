package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecommender(db *gorm.DB) *RecommendationService {
	svc := NewRecommendationService(db, NewUserService(db, nil), NewDishService(db))
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestRecommendCalories_StoresGoal(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newRecommender(db)
	u := testutil.NewUser(t, db, models.RoleUser)
	dob := time.Date(1996, 3, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(u).Updates(map[string]any{
		"weight": 80, "goal_weight": 70, "height": 175, "date_of_birth": dob,
		"gender": models.GenderMale, "activity_level": models.ActivityLight,
	}).Error)
	caller := testutil.CallerOf(u)

	out, err := svc.Calories(CalorieRecommendRequest{}, caller)
	require.NoError(t, err)
	assert.Equal(t, "1748.75", out.BMR)
	assert.Equal(t, 32, out.GoalDetail.Days)
	assert.Equal(t, models.GoalUnStart, out.GoalDetail.Status)

	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, 32, stored.GoalDetail.Days)
	assert.InDelta(t, 77000, stored.GoalDetail.Goal, 1)

	_, err = NewExerciseService(db).Add(ExerciseRequest{Name: "Burpee", Category: models.CategoryCardio})
	require.NoError(t, err)
	plan, err := svc.WorkoutPlans(WorkoutRecommendRequest{}, caller)
	require.NoError(t, err)
	assert.InDelta(t, 2406, plan.Calories, 2)
	assert.Len(t, plan.Sets, 3)
	assert.Len(t, plan.Sets[0].SetExercises, 4)
}

func TestRecommendCalories_MissingProfile(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := newRecommender(db).Calories(CalorieRecommendRequest{}, testutil.Member(t, db))
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	assert.Equal(t, msgNotEnoughInfo, err.Error())
}

func TestRecommendWorkout_NoGoal(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := newRecommender(db).WorkoutPlans(WorkoutRecommendRequest{}, testutil.Member(t, db))
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestRecommendDishes_Closest(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.Admin(t, db)
	ing, err := NewIngredientService(db).Add(IngredientRequest{Name: "Base", Calories: 1})
	require.NoError(t, err)
	dishes := NewDishService(db)
	for _, kcal := range []float64{200, 480, 900} {
		k := kcal
		_, err := dishes.Add(DishRequest{Name: "Dish", Calories: &k, Ingredients: []DishIngredientRequest{{IngredientID: ing.ID, Quantity: 1}}}, admin)
		require.NoError(t, err)
	}

	got, err := newRecommender(db).Dishes(DishRecommendRequest{Calories: 500, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 480.0, got[0].Calories)
	assert.Equal(t, 200.0, got[1].Calories)
}
