package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{Auth: s}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	tokens, err := ac.Auth.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Register success", tokens)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	tokens, err := ac.Auth.Login(req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Login success", tokens)
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req services.TokenRequest
	if !bindJSON(c, &req) {
		return
	}
	tokens, err := ac.Auth.RefreshToken(req.RefreshToken)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Refresh token success", tokens)
}

func (ac *AuthController) Logout(c *gin.Context) {
	var req services.TokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ac.Auth.Logout(caller(c), req.RefreshToken); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Logout success", nil)
}

func (ac *AuthController) VerifyEmail(c *gin.Context) {
	var req services.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	tokens, err := ac.Auth.VerifyEmail(req.EmailVerifyToken)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Email verify success", tokens)
}

func (ac *AuthController) ResendVerifyEmail(c *gin.Context) {
	if err := ac.Auth.ResendVerifyEmail(c.Request.Context(), caller(c)); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Resend verify email success", nil)
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ac.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Check email to reset password", nil)
}

func (ac *AuthController) VerifyOTP(c *gin.Context) {
	var req services.VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := ac.Auth.VerifyOTP(req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Verify otp code success", gin.H{"forgot_password_token": token})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ac.Auth.ResetPassword(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Reset password success", nil)
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ac.Auth.ChangePassword(caller(c), req); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Change password success", nil)
}
