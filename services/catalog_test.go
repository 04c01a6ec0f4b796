package services

import (
	"net/http"
	"testing"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseSearch_TypeFilter(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewExerciseService(db)
	for _, r := range []ExerciseRequest{
		{Name: "Running", Category: models.CategoryCardio},
		{Name: "Rowing", Category: models.CategoryCardio},
		{Name: "Deadlift", Category: models.CategoryStrength},
	} {
		_, err := svc.Add(r)
		require.NoError(t, err)
	}

	all, err := svc.Search(SearchQuery{Type: models.FilterAll})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.TotalItems)

	cardio, err := svc.Search(SearchQuery{Type: models.CategoryCardio})
	require.NoError(t, err)
	assert.EqualValues(t, 2, cardio.TotalItems)
	assert.Equal(t, "Rowing", cardio.Items[0].Name)

	found, err := svc.Search(SearchQuery{Search: "DEAD"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Deadlift", found.Items[0].Name)
}

func TestExerciseDelete_BlockedWhileUsed(t *testing.T) {
	db := testutil.NewDB(t)
	exercises := NewExerciseService(db)
	sets := NewSetService(db)
	admin := testutil.Admin(t, db)

	ex, err := exercises.Add(ExerciseRequest{Name: "Squat", Category: models.CategoryStrength})
	require.NoError(t, err)
	_, err = sets.Add(SetRequest{
		Name: "Legs", Type: models.LevelBeginner,
		SetExercises: []SetExerciseRequest{{ExerciseID: ex.ID, Reps: 10}},
	}, admin)
	require.NoError(t, err)

	err = exercises.Delete(ex.ID)
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))

	_, err = exercises.GetByID(ex.ID)
	assert.NoError(t, err, "row must survive a refused delete")
}

func TestIngredientDelete_BlockedByDish(t *testing.T) {
	db := testutil.NewDB(t)
	ingredients := NewIngredientService(db)
	dishes := NewDishService(db)

	ing, err := ingredients.Add(IngredientRequest{Name: "Rice", Calories: 130})
	require.NoError(t, err)
	_, err = dishes.Add(DishRequest{Name: "Fried rice", Ingredients: []DishIngredientRequest{{IngredientID: ing.ID, Quantity: 1}}}, testutil.Admin(t, db))
	require.NoError(t, err)

	err = ingredients.Delete(ing.ID)
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
}

func TestDishAdd_ResolvesIngredients(t *testing.T) {
	db := testutil.NewDB(t)
	ingredients := NewIngredientService(db)
	dishes := NewDishService(db)
	admin := testutil.Admin(t, db)

	ing, err := ingredients.Add(IngredientRequest{Name: "Egg", Unit: "piece", Calories: 100, Protein: 6})
	require.NoError(t, err)

	d, err := dishes.Add(DishRequest{Name: "Omelette", Ingredients: []DishIngredientRequest{{IngredientID: ing.ID, Quantity: 2}}}, admin)
	require.NoError(t, err)
	assert.Equal(t, 200.0, d.Calories)
	assert.Nil(t, d.UserID)

	got, err := dishes.GetByID(d.ID, admin)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 1)
	di := got.Ingredients[0]
	assert.Equal(t, 2.0, di.Quantity)
	assert.Equal(t, "piece", di.Unit)
	require.NotNil(t, di.Ingredient)
	assert.Equal(t, "Egg", di.Ingredient.Name)
	assert.Equal(t, 100.0, di.Ingredient.Calories)
	assert.Equal(t, 200.0, got.Nutrition.Calories)
	assert.Equal(t, 12.0, got.Nutrition.Protein)
}

func TestDishAdd_UnknownIngredient(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := NewDishService(db).Add(DishRequest{Name: "Ghost", Ingredients: []DishIngredientRequest{{IngredientID: 99, Quantity: 1}}}, testutil.Member(t, db))
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestDishOwnership(t *testing.T) {
	db := testutil.NewDB(t)
	ingredients := NewIngredientService(db)
	dishes := NewDishService(db)
	admin := testutil.Admin(t, db)
	alice := testutil.Member(t, db)
	bob := testutil.Member(t, db)

	ing, err := ingredients.Add(IngredientRequest{Name: "Oats", Calories: 10})
	require.NoError(t, err)
	req := DishRequest{Name: "Porridge", Ingredients: []DishIngredientRequest{{IngredientID: ing.ID, Quantity: 1}}}
	system, err := dishes.Add(req, admin)
	require.NoError(t, err)
	mine, err := dishes.Add(req, alice)
	require.NoError(t, err)

	_, err = dishes.GetByID(system.ID, alice)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err), "user on a system dish")
	_, err = dishes.GetByID(mine.ID, admin)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err), "admin on a user dish")
	_, err = dishes.GetByID(mine.ID, bob)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err), "user on another user's dish")
	_, err = dishes.GetByID(mine.ID, alice)
	assert.NoError(t, err)

	page, err := dishes.Search(SearchQuery{Type: models.FilterAll}, bob)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalItems, "bob sees only the system dish")

	page, err = dishes.Search(SearchQuery{Type: models.SourceMe}, alice)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, mine.ID, page.Items[0].ID)
}

func TestDishRating(t *testing.T) {
	db := testutil.NewDB(t)
	ingredients := NewIngredientService(db)
	dishes := NewDishService(db)
	alice := testutil.Member(t, db)

	ing, err := ingredients.Add(IngredientRequest{Name: "Tofu", Calories: 80})
	require.NoError(t, err)
	req := DishRequest{Name: "Tofu bowl", Ingredients: []DishIngredientRequest{{IngredientID: ing.ID, Quantity: 1}}}
	system, err := dishes.Add(req, testutil.Admin(t, db))
	require.NoError(t, err)

	d, err := dishes.Rating(system.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d.Rating)
	d, err = dishes.Rating(system.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, d.Rating)

	own, err := dishes.Add(req, alice)
	require.NoError(t, err)
	_, err = dishes.Rating(own.ID, 5)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
}

func TestDishIngredientRows(t *testing.T) {
	db := testutil.NewDB(t)
	ingredients := NewIngredientService(db)
	dishes := NewDishService(db)
	alice := testutil.Member(t, db)

	rice, err := ingredients.Add(IngredientRequest{Name: "Rice", Calories: 130})
	require.NoError(t, err)
	egg, err := ingredients.Add(IngredientRequest{Name: "Egg", Calories: 70})
	require.NoError(t, err)
	d, err := dishes.Add(DishRequest{Name: "Rice bowl", Ingredients: []DishIngredientRequest{{IngredientID: rice.ID, Quantity: 1}}}, alice)
	require.NoError(t, err)

	withEgg, err := dishes.AddIngredient(d.ID, DishIngredientRequest{IngredientID: egg.ID, Quantity: 1}, alice)
	require.NoError(t, err)
	require.Len(t, withEgg.Ingredients, 2)
	var rowID uint
	for _, di := range withEgg.Ingredients {
		if di.IngredientID == egg.ID {
			rowID = di.ID
		}
	}
	require.NotZero(t, rowID)

	qty := 3.0
	row, err := dishes.UpdateIngredient(d.ID, rowID, UpdateDishIngredientRequest{Quantity: &qty}, alice)
	require.NoError(t, err)
	assert.Equal(t, 3.0, row.Quantity)

	require.NoError(t, dishes.DeleteIngredient(d.ID, rowID, alice))
	_, err = dishes.GetIngredient(d.ID, rowID, alice)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}
