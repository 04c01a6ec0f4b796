package services

import (
	"context"
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

type sentMail struct{ to, subject string }

type fakeMailer struct{ sent []sentMail }

func (m *fakeMailer) Send(_ context.Context, to, subject, _ string) error {
	m.sent = append(m.sent, sentMail{to, subject})
	return nil
}

func newAuth(t *testing.T) (*AuthService, *fakeMailer, *gorm.DB) {
	db := testutil.NewDB(t)
	tokens := utils.NewTokenManager(map[utils.TokenKind]utils.TokenConfig{
		utils.AccessToken:         {Secret: "a", TTL: time.Minute},
		utils.RefreshToken:        {Secret: "r", TTL: time.Hour},
		utils.EmailVerifyToken:    {Secret: "e", TTL: time.Hour},
		utils.ForgotPasswordToken: {Secret: "f", TTL: time.Hour},
	})
	mailer := &fakeMailer{}
	return NewAuthService(db, tokens, mailer, "http://localhost:3000"), mailer, db
}

func register(t *testing.T, svc *AuthService) *AuthTokens {
	tokens, err := svc.Register(context.Background(), RegisterRequest{
		FullName:        "Jane Doe",
		Email:           "Jane@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	return tokens
}

func TestRegister_SendsVerifyMail(t *testing.T) {
	svc, mailer, db := newAuth(t)
	tokens := register(t, svc)
	assert.NotEmpty(t, tokens.AccessToken)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane@example.com", mailer.sent[0].to)

	var u models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&u).Error)
	assert.Equal(t, models.Unverified, u.Verify)
	assert.NotEmpty(t, u.Username)
	assert.NotEqual(t, "secret1", u.Password)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Again", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
}

func TestVerifyEmail_OnlyOnce(t *testing.T) {
	svc, _, db := newAuth(t)
	register(t, svc)
	var u models.User
	require.NoError(t, db.First(&u).Error)

	_, err := svc.VerifyEmail(u.EmailVerifyToken)
	require.NoError(t, err)
	require.NoError(t, db.First(&u, u.ID).Error)
	assert.Equal(t, models.Verified, u.Verify)
	assert.Empty(t, u.EmailVerifyToken)
}

func TestLoginAndRefreshRotation(t *testing.T) {
	svc, _, db := newAuth(t)
	register(t, svc)

	_, err := svc.Login(LoginRequest{EmailOrUsername: "jane@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnprocessableEntity, utils.StatusOf(err))

	tokens, err := svc.Login(LoginRequest{EmailOrUsername: "JANE@example.com", Password: "secret1"})
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	_, err = svc.RefreshToken(tokens.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))

	var u models.User
	require.NoError(t, db.First(&u).Error)
	require.NoError(t, svc.Logout(callerOf(&u), rotated.RefreshToken))
	err = svc.Logout(callerOf(&u), rotated.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))
}

func TestLogin_BannedUser(t *testing.T) {
	svc, _, db := newAuth(t)
	register(t, svc)
	var u models.User
	require.NoError(t, db.First(&u).Error)
	require.NoError(t, NewUserService(db, nil).Ban(u.ID))

	_, err := svc.Login(LoginRequest{EmailOrUsername: "jane@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
}

func TestForgotPasswordFlow(t *testing.T) {
	svc, mailer, db := newAuth(t)
	register(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "jane@example.com"))
	assert.Len(t, mailer.sent, 2)
	var u models.User
	require.NoError(t, db.First(&u).Error)
	require.Len(t, u.OTP.Code, 6)

	_, err := svc.VerifyOTP(VerifyOTPRequest{Email: "jane@example.com", OTP: "xxxxxx"})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	token, err := svc.VerifyOTP(VerifyOTPRequest{Email: "jane@example.com", OTP: u.OTP.Code})
	require.NoError(t, err)
	require.NoError(t, svc.ResetPassword(ctx, ResetPasswordRequest{
		ForgotPasswordToken: token, Password: "newpass", ConfirmPassword: "newpass",
	}))

	_, err = svc.Login(LoginRequest{EmailOrUsername: "jane@example.com", Password: "newpass"})
	assert.NoError(t, err)
	err = svc.ResetPassword(ctx, ResetPasswordRequest{ForgotPasswordToken: token, Password: "again1", ConfirmPassword: "again1"})
	assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuth(t)
	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}
