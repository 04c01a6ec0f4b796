package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgUserNotFound         = "user not found"
	msgEmailExists          = "email already exists"
	msgUsernameExists       = "username already exists"
	msgLoginFailed          = "email or password is incorrect"
	msgUserBanned           = "user is banned"
	msgRefreshTokenUsed     = "refresh token is used or does not exist"
	msgEmailAlreadyVerified = "email already verified"
	msgInvalidOTP           = "invalid otp code"
	msgOTPExpired           = "otp code expired"
	msgInvalidForgotToken   = "invalid forgot password token"
	msgOldPasswordMismatch  = "old password does not match"
	msgInvalidVerifyToken   = "invalid email verify token"
	otpLength               = 6
	otpTTL                  = 10 * time.Minute
)

// AuthService owns registration, login and the token lifecycles.
type AuthService struct {
	db        *gorm.DB
	tokens    *utils.TokenManager
	mailer    utils.Mailer
	clientURL string
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager, mailer utils.Mailer, clientURL string) *AuthService {
	return &AuthService{db: db, tokens: tokens, mailer: mailer, clientURL: clientURL, now: time.Now}
}

type RegisterRequest struct {
	FullName        string `json:"fullName" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"omitempty,min=3,max=50,alphanum"`
	Password        string `json:"password" binding:"required,min=6,max=50"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	DateOfBirth     string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender          string `json:"gender" binding:"omitempty,oneof=Male Female"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type TokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type VerifyEmailRequest struct {
	EmailVerifyToken string `json:"email_verify_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token" binding:"required"`
	Password            string `json:"password" binding:"required,min=6,max=50"`
	ConfirmPassword     string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	Password        string `json:"password" binding:"required,min=6,max=50"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func callerOf(u *models.User) utils.Caller {
	return utils.Caller{ID: u.ID, Role: u.Role, Verify: u.Verify}
}

// issueTokens signs an access/refresh pair and stores the refresh token.
func (s *AuthService) issueTokens(db *gorm.DB, u *models.User) (*AuthTokens, error) {
	access, _, err := s.tokens.Sign(utils.AccessToken, callerOf(u))
	if err != nil {
		return nil, err
	}
	refresh, exp, err := s.tokens.Sign(utils.RefreshToken, callerOf(u))
	if err != nil {
		return nil, err
	}
	if err := db.Create(&models.RefreshToken{UserID: u.ID, Token: refresh, ExpiresAt: exp}).Error; err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) mail(ctx context.Context, to, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		log.Printf("send mail %q to %s: %v", subject, to, err)
	}
}

// usernameFor derives a handle from the email local part plus a random suffix.
func usernameFor(email string) string {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}
	return base + utils.GenerateOTP(5)
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthTokens, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	n, err := countWhere(s.db, &models.User{}, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.Conflict(msgEmailExists)
	}
	username := req.Username
	if username == "" {
		username = usernameFor(email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FullName:       req.FullName,
		Email:          email,
		Username:       username,
		Password:       hash,
		Gender:         req.Gender,
		Role:           models.RoleUser,
		Verify:         models.Unverified,
		Status:         models.UserStatusNormal,
		NotifySettings: models.DefaultNotifySettings(),
		GoalDetail:     models.GoalDetail{Status: models.GoalUnStart},
	}
	if req.DateOfBirth != "" {
		dob, _ := time.Parse(time.DateOnly, req.DateOfBirth)
		u.DateOfBirth = &dob
	}

	var tokens *AuthTokens
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if isDuplicate(err) {
				return utils.Conflict(msgUsernameExists)
			}
			return err
		}
		verify, _, err := s.tokens.Sign(utils.EmailVerifyToken, callerOf(u))
		if err != nil {
			return err
		}
		u.EmailVerifyToken = verify
		if err := tx.Model(u).Update("email_verify_token", verify).Error; err != nil {
			return err
		}
		tokens, err = s.issueTokens(tx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	subject, body := utils.VerifyEmailMail(s.clientURL, u.EmailVerifyToken)
	s.mail(ctx, u.Email, subject, body)
	return tokens, nil
}

func (s *AuthService) Login(req LoginRequest) (*AuthTokens, error) {
	key := strings.ToLower(strings.TrimSpace(req.EmailOrUsername))
	var u models.User
	err := s.db.Where("email = ? OR LOWER(username) = ?", key, key).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.Unprocessable(msgLoginFailed)
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		return nil, utils.Unprocessable(msgLoginFailed)
	}
	if u.IsBanned() {
		return nil, utils.Forbidden(msgUserBanned)
	}
	if err := s.db.Model(&u).Update("is_online", true).Error; err != nil {
		return nil, err
	}
	return s.issueTokens(s.db, &u)
}

// RefreshToken rotates the refresh token; the new one keeps the original expiry.
func (s *AuthService) RefreshToken(token string) (*AuthTokens, error) {
	claims, err := s.tokens.Parse(utils.RefreshToken, token)
	if err != nil {
		return nil, err
	}
	var out *AuthTokens
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("token = ?", token).Delete(&models.RefreshToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.Unauthorized(msgRefreshTokenUsed)
		}
		u, err := first[models.User](tx, claims.UserID, msgUserNotFound)
		if err != nil {
			return err
		}
		if u.IsBanned() {
			return utils.Forbidden(msgUserBanned)
		}
		access, _, err := s.tokens.Sign(utils.AccessToken, callerOf(u))
		if err != nil {
			return err
		}
		exp := claims.ExpiresAt.Time
		refresh, err := s.tokens.SignUntil(utils.RefreshToken, callerOf(u), exp)
		if err != nil {
			return err
		}
		if err := tx.Create(&models.RefreshToken{UserID: u.ID, Token: refresh, ExpiresAt: exp}).Error; err != nil {
			return err
		}
		out = &AuthTokens{AccessToken: access, RefreshToken: refresh}
		return nil
	})
	return out, err
}

func (s *AuthService) Logout(c utils.Caller, token string) error {
	res := s.db.Where("token = ? AND user_id = ?", token, c.ID).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.Unauthorized(msgRefreshTokenUsed)
	}
	return s.db.Model(&models.User{}).Where("id = ?", c.ID).Update("is_online", false).Error
}

func (s *AuthService) VerifyEmail(token string) (*AuthTokens, error) {
	claims, err := s.tokens.Parse(utils.EmailVerifyToken, token)
	if err != nil {
		return nil, err
	}
	u, err := first[models.User](s.db, claims.UserID, msgUserNotFound)
	if err != nil {
		return nil, err
	}
	if u.Verify == models.Verified && u.EmailVerifyToken == "" {
		return nil, utils.BadRequest(msgEmailAlreadyVerified)
	}
	if u.EmailVerifyToken != token {
		return nil, utils.Unauthorized(msgInvalidVerifyToken)
	}
	u.Verify = models.Verified
	u.EmailVerifyToken = ""
	if err := s.db.Model(u).Updates(map[string]any{"verify": models.Verified, "email_verify_token": ""}).Error; err != nil {
		return nil, err
	}
	return s.issueTokens(s.db, u)
}

func (s *AuthService) ResendVerifyEmail(ctx context.Context, c utils.Caller) error {
	u, err := first[models.User](s.db, c.ID, msgUserNotFound)
	if err != nil {
		return err
	}
	if u.Verify == models.Verified {
		return utils.BadRequest(msgEmailAlreadyVerified)
	}
	token, _, err := s.tokens.Sign(utils.EmailVerifyToken, callerOf(u))
	if err != nil {
		return err
	}
	if err := s.db.Model(u).Update("email_verify_token", token).Error; err != nil {
		return err
	}
	subject, body := utils.VerifyEmailMail(s.clientURL, token)
	s.mail(ctx, u.Email, subject, body)
	return nil
}

func (s *AuthService) byEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error; err != nil {
		return nil, utils.NotFoundOr(err, msgUserNotFound)
	}
	return &u, nil
}

// ForgotPassword mails a short-lived numeric OTP.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.byEmail(email)
	if err != nil {
		return err
	}
	code := utils.GenerateOTP(otpLength)
	exp := s.now().Add(otpTTL)
	if err := s.db.Model(u).Updates(map[string]any{"otp_code": code, "otp_expires_at": exp}).Error; err != nil {
		return err
	}
	subject, body := utils.OTPMail(code)
	s.mail(ctx, u.Email, subject, body)
	return nil
}

// VerifyOTP trades a valid OTP for a forgot-password token.
func (s *AuthService) VerifyOTP(req VerifyOTPRequest) (string, error) {
	u, err := s.byEmail(req.Email)
	if err != nil {
		return "", err
	}
	if u.OTP.Code == "" || u.OTP.Code != req.OTP {
		return "", utils.BadRequest(msgInvalidOTP)
	}
	if u.OTP.ExpiresAt == nil || s.now().After(*u.OTP.ExpiresAt) {
		return "", utils.BadRequest(msgOTPExpired)
	}
	token, _, err := s.tokens.Sign(utils.ForgotPasswordToken, callerOf(u))
	if err != nil {
		return "", err
	}
	err = s.db.Model(u).Updates(map[string]any{
		"forgot_password_token": token,
		"otp_code":              "",
		"otp_expires_at":        nil,
	}).Error
	return token, err
}

// ResetPassword also revokes every refresh token of the user.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	claims, err := s.tokens.Parse(utils.ForgotPasswordToken, req.ForgotPasswordToken)
	if err != nil {
		return err
	}
	u, err := first[models.User](s.db, claims.UserID, msgUserNotFound)
	if err != nil {
		return err
	}
	if u.ForgotPasswordToken != req.ForgotPasswordToken {
		return utils.Unauthorized(msgInvalidForgotToken)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).Updates(map[string]any{"password": hash, "forgot_password_token": ""}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", u.ID).Delete(&models.RefreshToken{}).Error
	})
	if err != nil {
		return err
	}
	subject, body := utils.PasswordChangedMail(u.FullName)
	s.mail(ctx, u.Email, subject, body)
	return nil
}

func (s *AuthService) ChangePassword(c utils.Caller, req ChangePasswordRequest) error {
	u, err := first[models.User](s.db, c.ID, msgUserNotFound)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(u.Password, req.OldPassword) {
		return utils.Unprocessable(msgOldPasswordMismatch)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}
	return s.db.Model(u).Update("password", hash).Error
}
