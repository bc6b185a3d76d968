package public

import (
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// Register 注册顾客账号
// POST /users
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid register payload")
		return
	}
	user, err := h.c.UserService.Register(req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.Created(c, user)
}

// Login 登录；管理员账号在启用验证码时需要通过图片验证码
// POST /users/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid login payload")
		return
	}

	token, user, err := h.c.UserService.Login(req.Email, req.Password)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	if user.IsAdmin() && h.c.CaptchaService.Enabled() {
		if err := h.c.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
			RespondServiceError(c, err)
			return
		}
	}

	response.OK(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me 当前登录用户信息
// GET /users/me
func (h *Handler) Me(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	user, err := h.c.UserService.GetByID(userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, user)
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// SendOTP 发送找回密码验证码
// POST /users/send-otp
func (h *Handler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid email payload")
		return
	}
	if err := h.c.UserService.SendPasswordResetOTP(req.Email); err != nil {
		RespondServiceError(c, err)
		return
	}
	response.Message(c, "otp sent")
}

// ResetPassword 使用验证码重置密码
// POST /users/reset-password
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid reset payload")
		return
	}
	if err := h.c.UserService.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		RespondServiceError(c, err)
		return
	}
	response.Message(c, "password updated")
}

// CaptchaChallenge 获取图片验证码
// GET /captcha
func (h *Handler) CaptchaChallenge(c *gin.Context) {
	challenge, err := h.c.CaptchaService.GenerateChallenge()
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, challenge)
}
