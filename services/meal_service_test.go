package services

import (
	"net/http"
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mealFixture struct {
	db     *gorm.DB
	meals  *MealService
	dishes *DishService
	admin  utils.Caller
	ingID  uint
}

func newMealFixture(t *testing.T) *mealFixture {
	db := testutil.NewDB(t)
	ing, err := NewIngredientService(db).Add(IngredientRequest{Name: "Rice", Calories: 100})
	require.NoError(t, err)
	return &mealFixture{
		db:     db,
		meals:  NewMealService(db),
		dishes: NewDishService(db),
		admin:  testutil.Admin(t, db),
		ingID:  ing.ID,
	}
}

func (f *mealFixture) dish(t *testing.T, name string, qty float64, c utils.Caller) uint {
	d, err := f.dishes.Add(DishRequest{
		Name:        name,
		Ingredients: []DishIngredientRequest{{IngredientID: f.ingID, Quantity: qty}},
	}, c)
	require.NoError(t, err)
	return d.ID
}

func TestMealAdd_SnapshotsDishes(t *testing.T) {
	f := newMealFixture(t)
	user := testutil.Member(t, f.db)
	system := f.dish(t, "Fried rice", 2, f.admin)
	own := f.dish(t, "Rice bowl", 1, user)

	meal, err := f.meals.Add(MealRequest{
		Name: "Lunch", MealType: models.MealLunch, Date: "2026-03-14",
		Dishes: []MealDishRequest{{DishID: system, Quantity: 1.5}, {DishID: own}},
	}, user)
	require.NoError(t, err)
	require.NotNil(t, meal.UserID)
	assert.Equal(t, user.ID, *meal.UserID)
	require.Len(t, meal.Dishes, 2)
	assert.Equal(t, "Fried rice", meal.Dishes[0].Name)
	assert.Equal(t, 1.0, meal.Dishes[1].Quantity)
	assert.Equal(t, 400.0, meal.Calories)

	_, err = f.meals.Add(MealRequest{
		Name: "Ghost", MealType: models.MealLunch, Date: "2026-03-14",
		Dishes: []MealDishRequest{{DishID: 9999}},
	}, user)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestMealAdd_RefusesOtherUsersDish(t *testing.T) {
	f := newMealFixture(t)
	alice := testutil.Member(t, f.db)
	bob := testutil.Member(t, f.db)
	secret := f.dish(t, "Secret", 3, alice)

	tests := []struct {
		name   string
		caller utils.Caller
	}{
		{"another user", bob},
		{"admin building a system meal", f.admin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.meals.Add(MealRequest{
				Name: "Copy", MealType: models.MealDinner, Date: "2026-03-14",
				Dishes: []MealDishRequest{{DishID: secret}},
			}, tt.caller)
			assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
		})
	}

	var copies int64
	require.NoError(t, f.db.Model(&models.MealDish{}).Where("dish_id = ?", secret).Count(&copies).Error)
	assert.Zero(t, copies)
	assert.NoError(t, f.dishes.Delete(secret, alice), "owner can still delete the dish")
}

func TestMealUpdate_RefusesOtherUsersDish(t *testing.T) {
	f := newMealFixture(t)
	alice := testutil.Member(t, f.db)
	bob := testutil.Member(t, f.db)
	secret := f.dish(t, "Secret", 3, alice)

	meal, err := f.meals.Add(MealRequest{Name: "Mine", MealType: models.MealDinner, Date: "2026-03-14"}, bob)
	require.NoError(t, err)
	_, err = f.meals.Update(meal.ID, MealRequest{
		Name: "Mine", MealType: models.MealDinner, Date: "2026-03-14",
		Dishes: []MealDishRequest{{DishID: secret}},
	}, bob)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
}

func TestMealByDate_GroupsAndSorts(t *testing.T) {
	f := newMealFixture(t)
	user := testutil.Member(t, f.db)
	other := testutil.Member(t, f.db)
	add := func(c utils.Caller, name, mealType, date string, kcal float64) {
		_, err := f.meals.Add(MealRequest{Name: name, MealType: mealType, Date: date, Calories: &kcal}, c)
		require.NoError(t, err)
	}
	add(user, "Oats", models.MealBreakfast, "2026-03-14", 350)
	add(user, "Eggs", models.MealBreakfast, "2026-03-14", 200)
	add(user, "Soup", models.MealDinner, "2026-03-14", 500)
	add(user, "Toast", models.MealBreakfast, "2026-03-15", 150)
	add(other, "Pasta", models.MealLunch, "2026-03-14", 700)

	got, err := f.meals.ByDate("2026-03-14", user)
	require.NoError(t, err)
	require.Len(t, got.Breakfasts, 2)
	assert.Equal(t, "Eggs", got.Breakfasts[0].Name)
	assert.Equal(t, "Oats", got.Breakfasts[1].Name)
	assert.Empty(t, got.Lunches)
	assert.Len(t, got.Dinners, 1)
}

func TestMealClone(t *testing.T) {
	f := newMealFixture(t)
	user := testutil.Member(t, f.db)
	other := testutil.Member(t, f.db)
	dish := f.dish(t, "Porridge", 1, f.admin)

	system, err := f.meals.Add(MealRequest{
		Name: "Classic breakfast", MealType: models.MealBreakfast, Date: "2026-03-01",
		Dishes: []MealDishRequest{{DishID: dish}},
	}, f.admin)
	require.NoError(t, err)
	private, err := f.meals.Add(MealRequest{Name: "Private", MealType: models.MealLunch, Date: "2026-03-01"}, other)
	require.NoError(t, err)

	out, err := f.meals.Clone(CloneMealsRequest{MealIDs: []uint{system.ID}, Date: "2026-03-20"}, user)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotEqual(t, system.ID, out[0].ID)
	assert.Equal(t, "2026-03-20", out[0].Date)
	require.NotNil(t, out[0].UserID)
	assert.Equal(t, user.ID, *out[0].UserID)
	require.Len(t, out[0].Dishes, 1)
	assert.Equal(t, "Porridge", out[0].Dishes[0].Name)

	_, err = f.meals.Clone(CloneMealsRequest{MealIDs: []uint{private.ID}, Date: "2026-03-20"}, user)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
	_, err = f.meals.Clone(CloneMealsRequest{MealIDs: []uint{system.ID, 9999}, Date: "2026-03-20"}, user)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestMealDelete_BlockedByChallenge(t *testing.T) {
	f := newMealFixture(t)
	meal, err := f.meals.Add(MealRequest{Name: "Clean eating", MealType: models.MealLunch, Date: "2026-03-01"}, f.admin)
	require.NoError(t, err)

	_, err = NewChallengeService(f.db, nil).Add(ChallengeRequest{
		Name: "Eat clean", Type: models.ChallengeEating,
		StartDate: "2026-04-01", EndDate: "2026-04-30",
		MealSource: MealSource{MealID: &meal.ID},
	}, f.admin)
	require.NoError(t, err)

	err = f.meals.Delete(meal.ID, f.admin)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	_, err = f.meals.GetByID(meal.ID, f.admin)
	assert.NoError(t, err, "row must survive a refused delete")
}

func TestChallengeSources_MustBeSystemOwned(t *testing.T) {
	f := newMealFixture(t)
	user := testutil.Member(t, f.db)
	challenges := NewChallengeService(f.db, nil)

	meal, err := f.meals.Add(MealRequest{Name: "Users meal", MealType: models.MealLunch, Date: "2026-03-01"}, user)
	require.NoError(t, err)
	plan, err := NewWorkoutPlanService(f.db).Add(WorkoutPlanRequest{Name: "Users plan", Level: models.LevelBeginner}, user)
	require.NoError(t, err)
	dish := f.dish(t, "Users dish", 1, user)

	base := ChallengeRequest{Name: "Borrowed", Type: models.ChallengeCombo, StartDate: "2026-04-01", EndDate: "2026-04-30"}
	tests := []struct {
		name string
		edit func(r *ChallengeRequest)
	}{
		{"meal by id", func(r *ChallengeRequest) { r.MealID = &meal.ID }},
		{"inline meal with a user dish", func(r *ChallengeRequest) {
			r.Meal = &ChallengeMealRequest{Name: "Inline", MealType: models.MealLunch, Dishes: []MealDishRequest{{DishID: dish}}}
		}},
		{"workout plan by id", func(r *ChallengeRequest) { r.WorkoutPlanID = &plan.ID }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.edit(&req)
			_, err := challenges.Add(req, f.admin)
			assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&models.Challenge{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.NoError(t, f.meals.Delete(meal.ID, user))
	assert.NoError(t, NewWorkoutPlanService(f.db).Delete(plan.ID, user))
}
