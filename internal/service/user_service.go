package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/cctvmart/internal/cache"
	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/queue"
	"github.com/cctvmart/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// UserService 用户业务逻辑
type UserService struct {
	users  repository.UserRepository
	otps   repository.OtpRepository
	jwtCfg config.JWTConfig
	policy config.PasswordPolicyConfig
	otpCfg config.OTPConfig
	tasks  *queue.Client
}

// NewUserService 创建用户服务实例
func NewUserService(
	users repository.UserRepository,
	otps repository.OtpRepository,
	jwtCfg config.JWTConfig,
	policy config.PasswordPolicyConfig,
	otpCfg config.OTPConfig,
	tasks *queue.Client,
) *UserService {
	return &UserService{
		users:  users,
		otps:   otps,
		jwtCfg: jwtCfg,
		policy: policy,
		otpCfg: otpCfg,
		tasks:  tasks,
	}
}

func (s *UserService) validatePassword(password string) error {
	minLen := s.policy.MinLength
	if minLen <= 0 {
		minLen = 6
	}
	if len(password) < minLen {
		return ErrWeakPassword
	}
	hasLetter, hasNumber := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if s.policy.RequireLetter && !hasLetter {
		return ErrWeakPassword
	}
	if s.policy.RequireNumber && !hasNumber {
		return ErrWeakPassword
	}
	return nil
}

func (s *UserService) createWithRole(req RegisterRequest, role string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	logger.Infow("user_created", "email", user.Email, "role", role)
	return user, nil
}

// Register 注册顾客账号
func (s *UserService) Register(req RegisterRequest) (*models.User, error) {
	return s.createWithRole(req, constants.RoleCustomer)
}

// CreateAdmin 创建管理员账号（仅管理员可调用）
func (s *UserService) CreateAdmin(req RegisterRequest) (*models.User, error) {
	return s.createWithRole(req, constants.RoleAdmin)
}

// Login 登录，返回 JWT 与用户信息
// 被封禁的账号拒绝登录
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return "", nil, ErrUserBlocked
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(user); err != nil {
		logger.Warnw("login_touch_failed", "email", user.Email, "error", err)
	}

	token, err := GenerateUserJWT(s.jwtCfg.SecretKey, UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	}, s.jwtCfg.ExpireHours)
	if err != nil {
		return "", nil, err
	}

	cache.SetUserAuthState(user.ID, cache.UserAuthState{
		IsBlocked:    user.IsBlocked,
		TokenVersion: user.TokenVersion,
		Role:         user.Role,
		IsSuper:      user.IsSuper,
	})
	return token, user, nil
}

// GetByID 按 ID 查询用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListAdmins 列出所有管理员
func (s *UserService) ListAdmins() ([]models.User, error) {
	return s.users.ListByRole(constants.RoleAdmin)
}

// ListCustomers 列出所有顾客
func (s *UserService) ListCustomers() ([]models.User, error) {
	return s.users.ListByRole(constants.RoleCustomer)
}

// SetBlocked 封禁/解封账号，并失效其在途令牌
func (s *UserService) SetBlocked(id uint, blocked bool) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsSuper {
		return nil, ErrSuperAdminProtected
	}

	user.IsBlocked = blocked
	if blocked {
		user.TokenVersion++
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	cache.DelUserAuthState(user.ID)
	logger.Infow("user_block_updated", "user_id", user.ID, "blocked", blocked)
	return user, nil
}

// UpdateAdminRequest 管理员资料更新请求；Password 为空时不修改密码
type UpdateAdminRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// UpdateAdmin 更新管理员资料
func (s *UserService) UpdateAdmin(id uint, req UpdateAdminRequest) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != constants.RoleAdmin {
		return nil, ErrUserNotFound
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Password != "" {
		if err := s.validatePassword(req.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		// 改密后使在途令牌失效
		user.TokenVersion++
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	cache.DelUserAuthState(user.ID)
	logger.Infow("admin_updated", "user_id", user.ID)
	return user, nil
}

// DeleteAdmin 删除管理员账号，超级管理员不可删除
func (s *UserService) DeleteAdmin(id uint) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Role != constants.RoleAdmin {
		return ErrUserNotFound
	}
	if user.IsSuper {
		return ErrSuperAdminProtected
	}

	if err := s.users.Delete(user.ID); err != nil {
		return err
	}
	cache.DelUserAuthState(user.ID)
	logger.Infow("admin_deleted", "user_id", user.ID, "email", user.Email)
	return nil
}

// AuthState 读取用户认证状态（封禁/令牌版本），带缓存
func (s *UserService) AuthState(userID uint) (cache.UserAuthState, error) {
	if state, ok := cache.GetUserAuthState(userID); ok {
		return state, nil
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return cache.UserAuthState{}, err
	}
	state := cache.UserAuthState{
		IsBlocked:    user.IsBlocked,
		TokenVersion: user.TokenVersion,
		Role:         user.Role,
		IsSuper:      user.IsSuper,
	}
	cache.SetUserAuthState(userID, state)
	return state, nil
}

func (s *UserService) otpLength() int {
	if s.otpCfg.Length > 0 {
		return s.otpCfg.Length
	}
	return 6
}

func (s *UserService) otpExpire() time.Duration {
	minutes := s.otpCfg.ExpireMinutes
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

func (s *UserService) otpSendInterval() time.Duration {
	seconds := s.otpCfg.SendIntervalSeconds
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

func (s *UserService) otpMaxAttempts() int {
	if s.otpCfg.MaxAttempts > 0 {
		return s.otpCfg.MaxAttempts
	}
	return 5
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}

// SendPasswordResetOTP 下发找回密码验证码
// 同一邮箱在发送间隔内重复请求被拒绝
func (s *UserService) SendPasswordResetOTP(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	latest, err := s.otps.GetLatestByEmail(email)
	if err != nil {
		return err
	}
	now := time.Now()
	if latest != nil && !latest.SentAt.IsZero() && now.Sub(latest.SentAt) < s.otpSendInterval() {
		return ErrOTPTooFrequent
	}

	code, err := randomNumericCode(s.otpLength())
	if err != nil {
		return err
	}
	record := &models.OtpCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.otpExpire()),
		SentAt:    now,
	}
	if err := s.otps.Create(record); err != nil {
		return err
	}

	s.tasks.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{
		Email:         email,
		Name:          user.FirstName,
		Code:          code,
		ExpireMinutes: int(s.otpExpire() / time.Minute),
	})
	logger.Infow("password_reset_otp_sent", "email", email)
	return nil
}

// verifyOTP 校验验证码；验证码一次性有效，错误尝试计数达到上限后作废
func (s *UserService) verifyOTP(email, code string) error {
	record, err := s.otps.GetLatestByEmail(email)
	if err != nil {
		return err
	}
	if record == nil || record.VerifiedAt != nil {
		return ErrOTPInvalid
	}

	now := time.Now()
	if record.ExpiresAt.Before(now) {
		return ErrOTPExpired
	}
	if record.AttemptCount >= s.otpMaxAttempts() {
		return ErrOTPAttemptsExceeded
	}
	if strings.TrimSpace(record.Code) != strings.TrimSpace(code) {
		if err := s.otps.IncrementAttempt(record.ID); err != nil {
			logger.Warnw("otp_attempt_increment_failed", "email", email, "error", err)
		}
		return ErrOTPInvalid
	}
	return s.otps.MarkVerified(record.ID, now)
}

// ResetPassword 使用验证码重置密码，并使在途令牌失效
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.verifyOTP(email, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.TokenVersion++
	if err := s.users.Update(user); err != nil {
		return err
	}
	cache.DelUserAuthState(user.ID)
	logger.Infow("password_reset_completed", "user_id", user.ID)
	return nil
}
