package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

var tokens = utils.NewTokenManager(map[utils.TokenKind]utils.TokenConfig{
	utils.AccessToken:  {Secret: "test-access", TTL: time.Minute},
	utils.RefreshToken: {Secret: "test-refresh", TTL: time.Hour},
})

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CallerFrom(c).ID})
	})
	r.GET("/x", handlers...)
	return r
}

func do(t *testing.T, r http.Handler, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func sign(t *testing.T, kind utils.TokenKind, c utils.Caller) string {
	t.Helper()
	tok, _, err := tokens.Sign(kind, c)
	require.NoError(t, err)
	return tok
}

func TestAuth(t *testing.T) {
	r := newRouter(Auth(tokens))

	w, body := do(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "access token is required", body["message"])

	w, _ = do(t, r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, sign(t, utils.RefreshToken, utils.Caller{ID: 3}))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "refresh token is not an access token")

	w, body = do(t, r, sign(t, utils.AccessToken, utils.Caller{ID: 3}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, body["id"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestAuth_QueryToken(t *testing.T) {
	r := newRouter(Auth(tokens))
	req := httptest.NewRequest(http.MethodGet, "/x?access_token="+sign(t, utils.AccessToken, utils.Caller{ID: 8}), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifiedUser(t *testing.T) {
	r := newRouter(Auth(tokens), VerifiedUser())

	w, body := do(t, r, sign(t, utils.AccessToken, utils.Caller{ID: 1, Verify: models.Unverified}))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "user not verified", body["message"])

	w, _ = do(t, r, sign(t, utils.AccessToken, utils.Caller{ID: 1, Verify: models.Verified}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRole(t *testing.T) {
	r := newRouter(Auth(tokens), AdminRole())

	w, _ := do(t, r, sign(t, utils.AccessToken, utils.Caller{ID: 1, Role: models.RoleUser}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, sign(t, utils.AccessToken, utils.Caller{ID: 1, Role: models.RoleAdmin}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", &utils.ValidationError{Errors: map[string]string{"email": "is required"}}, http.StatusUnprocessableEntity, "Validation error"},
		{"app error", utils.Conflict("dish is used by a meal"), http.StatusConflict, "dish is used by a meal"},
		{"wrapped app error", errors.Join(errors.New("ctx"), utils.NotFound("missing")), http.StatusNotFound, "missing"},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/x", func(c *gin.Context) { c.Error(tc.err) })

			w, body := do(t, r, "")
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.msg, body["message"])
			if tc.status == http.StatusUnprocessableEntity {
				assert.Equal(t, map[string]any{"email": "is required"}, body["errors"])
			}
		})
	}
}
