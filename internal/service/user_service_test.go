package service

import (
	"errors"
	"testing"
	"time"

	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/queue"
	"github.com/cctvmart/internal/repository"

	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewOtpRepository(db),
		config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		config.PasswordPolicyConfig{MinLength: 6, RequireLetter: true},
		config.OTPConfig{Length: 6, ExpireMinutes: 10, SendIntervalSeconds: 60, MaxAttempts: 5},
		queue.NewClient(config.QueueConfig{Enabled: false}),
	)
}

func TestUserRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user, err := svc.Register(RegisterRequest{
		Email:     "Jane@Example.com",
		Password:  "secret1",
		FirstName: "Jane",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Role != "customer" {
		t.Fatalf("expected customer role, got %s", user.Role)
	}

	token, logged, err := svc.Login("jane@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := ParseUserJWT("test-secret", token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != logged.ID || claims.Role != "customer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	req := RegisterRequest{Email: "dup@example.com", Password: "secret1", FirstName: "A"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserRegisterWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	if _, err := svc.Register(RegisterRequest{
		Email: "weak@example.com", Password: "123", FirstName: "A",
	}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for short password, got %v", err)
	}
	if _, err := svc.Register(RegisterRequest{
		Email: "weak@example.com", Password: "1234567", FirstName: "A",
	}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword without letters, got %v", err)
	}
}

func TestUserBlockedCannotLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user, err := svc.Register(RegisterRequest{
		Email: "blocked@example.com", Password: "secret1", FirstName: "B",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.SetBlocked(user.ID, true); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	if _, _, err := svc.Login("blocked@example.com", "secret1"); !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}

	if _, err := svc.SetBlocked(user.ID, false); err != nil {
		t.Fatalf("unblock failed: %v", err)
	}
	if _, _, err := svc.Login("blocked@example.com", "secret1"); err != nil {
		t.Fatalf("login after unblock failed: %v", err)
	}
}

func TestUserLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	if _, err := svc.Register(RegisterRequest{
		Email: "x@example.com", Password: "secret1", FirstName: "X",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login("x@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestDeleteAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	admin, err := svc.CreateAdmin(RegisterRequest{
		Email: "ops@example.com", Password: "secret1", FirstName: "Ops",
	})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if err := svc.DeleteAdmin(admin.ID); err != nil {
		t.Fatalf("delete admin failed: %v", err)
	}
	if _, err := svc.GetByID(admin.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected deleted admin to be gone, got %v", err)
	}

	// 顾客账号不能通过管理员删除接口删除
	customer, err := svc.Register(RegisterRequest{
		Email: "cust@example.com", Password: "secret1", FirstName: "Cust",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.DeleteAdmin(customer.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for customer id, got %v", err)
	}
}

func TestDeleteAdminProtectsSuperAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	admin, err := svc.CreateAdmin(RegisterRequest{
		Email: "root@example.com", Password: "secret1", FirstName: "Root",
	})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if err := db.Model(admin).Update("is_super", true).Error; err != nil {
		t.Fatalf("mark super failed: %v", err)
	}

	if err := svc.DeleteAdmin(admin.ID); !errors.Is(err, ErrSuperAdminProtected) {
		t.Fatalf("expected ErrSuperAdminProtected, got %v", err)
	}
}

func latestOtp(t *testing.T, db *gorm.DB, email string) *models.OtpCode {
	t.Helper()
	var record models.OtpCode
	if err := db.Where("email = ?", email).Order("id DESC").First(&record).Error; err != nil {
		t.Fatalf("load otp record failed: %v", err)
	}
	return &record
}

func TestSendPasswordResetOTP(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	if _, err := svc.Register(RegisterRequest{
		Email: "otp@example.com", Password: "secret1", FirstName: "Otp",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.SendPasswordResetOTP("OTP@Example.com"); err != nil {
		t.Fatalf("send otp failed: %v", err)
	}
	record := latestOtp(t, db, "otp@example.com")
	if len(record.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", record.Code)
	}
	if !record.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", record.ExpiresAt)
	}

	// 发送间隔内的重复请求被拒绝
	if err := svc.SendPasswordResetOTP("otp@example.com"); !errors.Is(err, ErrOTPTooFrequent) {
		t.Fatalf("expected ErrOTPTooFrequent, got %v", err)
	}
}

func TestSendPasswordResetOTPUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	if err := svc.SendPasswordResetOTP("nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResetPasswordWithOTP(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user, err := svc.Register(RegisterRequest{
		Email: "reset@example.com", Password: "secret1", FirstName: "Reset",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.SendPasswordResetOTP("reset@example.com"); err != nil {
		t.Fatalf("send otp failed: %v", err)
	}
	code := latestOtp(t, db, "reset@example.com").Code

	if err := svc.ResetPassword("reset@example.com", code, "newpass1"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}

	if _, _, err := svc.Login("reset@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, _, err := svc.Login("reset@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// 改密使在途令牌失效
	updated, err := svc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d -> %d", user.TokenVersion, updated.TokenVersion)
	}

	// 验证码一次性有效
	if err := svc.ResetPassword("reset@example.com", code, "another1"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected reused otp to fail, got %v", err)
	}
}

func TestResetPasswordWrongOTPAttempts(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	if _, err := svc.Register(RegisterRequest{
		Email: "attempts@example.com", Password: "secret1", FirstName: "A",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.SendPasswordResetOTP("attempts@example.com"); err != nil {
		t.Fatalf("send otp failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := svc.ResetPassword("attempts@example.com", "000000x", "newpass1"); !errors.Is(err, ErrOTPInvalid) {
			t.Fatalf("attempt %d: expected ErrOTPInvalid, got %v", i, err)
		}
	}
	// 错误尝试达到上限后即便提交正确验证码也拒绝
	code := latestOtp(t, db, "attempts@example.com").Code
	if err := svc.ResetPassword("attempts@example.com", code, "newpass1"); !errors.Is(err, ErrOTPAttemptsExceeded) {
		t.Fatalf("expected ErrOTPAttemptsExceeded, got %v", err)
	}
}

func TestResetPasswordExpiredOTP(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	if _, err := svc.Register(RegisterRequest{
		Email: "expired@example.com", Password: "secret1", FirstName: "E",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	record := &models.OtpCode{
		Email:     "expired@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
		SentAt:    time.Now().Add(-11 * time.Minute),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("seed otp failed: %v", err)
	}

	if err := svc.ResetPassword("expired@example.com", "123456", "newpass1"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
}
