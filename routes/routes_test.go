package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/services"
	"github.com/tuonghuynh11/HealthAppAPI/testutil"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	router *gin.Engine
	tokens *utils.TokenManager
	admin  string
	user   string
}

func newAPI(t *testing.T) *apiFixture {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	tokens := utils.NewTokenManager(map[utils.TokenKind]utils.TokenConfig{
		utils.AccessToken: {Secret: "routes-access", TTL: time.Minute},
	})
	dishes := services.NewDishService(db)
	users := services.NewUserService(db, nil)
	r := SetupRouter(Deps{
		Tokens:         tokens,
		Users:          users,
		Tracking:       services.NewHealthTrackingService(db, time.UTC),
		Water:          services.NewWaterService(db),
		Exercises:      services.NewExerciseService(db),
		Ingredients:    services.NewIngredientService(db),
		Dishes:         dishes,
		Recommendation: services.NewRecommendationService(db, users, dishes),
	})

	sign := func(c utils.Caller) string {
		tok, _, err := tokens.Sign(utils.AccessToken, c)
		require.NoError(t, err)
		return tok
	}
	return &apiFixture{
		router: r,
		tokens: tokens,
		admin:  sign(testutil.Admin(t, db)),
		user:   sign(testutil.Member(t, db)),
	}
}

type envelope struct {
	Message string            `json:"message"`
	Result  json.RawMessage   `json:"result"`
	Errors  map[string]string `json:"errors"`
}

func (f *apiFixture) call(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestIngredientToDish(t *testing.T) {
	api := newAPI(t)

	code, env := api.call(t, http.MethodPost, "/api/v1/ingredients", api.admin, gin.H{"name": "Chicken breast", "unit": "100g", "calories": 100, "protein": 31})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var ing models.Ingredient
	require.NoError(t, json.Unmarshal(env.Result, &ing))

	code, env = api.call(t, http.MethodPost, "/api/v1/dishes", api.admin, gin.H{
		"name":        "Grilled chicken",
		"ingredients": []gin.H{{"ingredientId": ing.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var dish services.DishDetail
	require.NoError(t, json.Unmarshal(env.Result, &dish))
	assert.Equal(t, 200.0, dish.Calories)

	code, env = api.call(t, http.MethodGet, fmt.Sprintf("/api/v1/dishes/%d", dish.ID), api.admin, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var got services.DishDetail
	require.NoError(t, json.Unmarshal(env.Result, &got))
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, 2.0, got.Ingredients[0].Quantity)
	require.NotNil(t, got.Ingredients[0].Ingredient)
	assert.Equal(t, "Chicken breast", got.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 100.0, got.Ingredients[0].Ingredient.Calories)
	assert.Equal(t, 62.0, got.Nutrition.Protein)

	code, _ = api.call(t, http.MethodGet, fmt.Sprintf("/api/v1/dishes/%d", dish.ID), api.user, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.call(t, http.MethodDelete, fmt.Sprintf("/api/v1/ingredients/%d", ing.ID), api.admin, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestHealthTrackingTwice(t *testing.T) {
	api := newAPI(t)
	body := gin.H{"date": "2026-03-14", "type": models.TrackingConsumed, "value": 400, "target": 2000}

	code, env := api.call(t, http.MethodPost, "/api/v1/users/health-tracking", api.user, body)
	require.Equal(t, http.StatusOK, code, env.Message)

	body["value"] = 650
	code, env = api.call(t, http.MethodPost, "/api/v1/users/health-tracking", api.user, body)
	require.Equal(t, http.StatusOK, code, env.Message)
	var first models.HealthTracking
	require.NoError(t, json.Unmarshal(env.Result, &first))
	assert.Equal(t, 650.0, first.Value)

	code, env = api.call(t, http.MethodGet, "/api/v1/users/health-tracking?date=2026-03-14&type=Calories%20Consumed", api.user, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var got models.HealthTracking
	require.NoError(t, json.Unmarshal(env.Result, &got))
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 650.0, got.Value)
}

func TestValidationErrors(t *testing.T) {
	api := newAPI(t)

	code, env := api.call(t, http.MethodPost, "/api/v1/users/health-tracking", api.user, gin.H{"type": "Steps"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Validation error", env.Message)
	assert.Equal(t, "is required", env.Errors["date"])
	assert.Contains(t, env.Errors["type"], "must be one of")

	code, env = api.call(t, http.MethodGet, "/api/v1/exercises/abc", api.user, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "id")
}

func TestAccessControl(t *testing.T) {
	api := newAPI(t)

	code, _ := api.call(t, http.MethodGet, "/api/v1/exercises", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.call(t, http.MethodPost, "/api/v1/exercises", api.user, gin.H{"name": "Plank", "category": "Strength"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env := api.call(t, http.MethodGet, "/api/v1/users", api.admin, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var page struct {
		Users      []models.User `json:"users"`
		TotalItems int64         `json:"total_items"`
		TotalPages int           `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(env.Result, &page))
	assert.EqualValues(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestRecommendCaloriesNeedsProfile(t *testing.T) {
	api := newAPI(t)
	code, env := api.call(t, http.MethodPost, "/api/v1/recommends/calories", api.user, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "user does not have enough information", env.Message)
}
