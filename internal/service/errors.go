package service

import "errors"

// 业务错误定义（handler 层据此映射 HTTP 状态码）
var (
	ErrEmailExists         = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserBlocked         = errors.New("account is blocked")
	ErrUserNotFound        = errors.New("user not found")
	ErrWeakPassword        = errors.New("password does not meet policy")
	ErrSuperAdminProtected = errors.New("initial admin cannot be modified")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductExists       = errors.New("product already exists")
	ErrProductUnavailable  = errors.New("product is unavailable")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderEmpty          = errors.New("order has no items")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrReviewNotFound      = errors.New("review not found")
	ErrRepairNotFound      = errors.New("repair not found")
	ErrSerialNoExists      = errors.New("serial number already registered")
	ErrInvalidProgress     = errors.New("invalid repair progress")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrTechnicianNotFound  = errors.New("technician not found")
	ErrTechnicianInactive  = errors.New("technician account is inactive")
	ErrCaptchaRequired     = errors.New("captcha verification required")
	ErrCaptchaInvalid      = errors.New("captcha verification failed")
	ErrOTPInvalid          = errors.New("invalid or already used otp")
	ErrOTPExpired          = errors.New("otp has expired")
	ErrOTPAttemptsExceeded = errors.New("too many otp attempts")
	ErrOTPTooFrequent      = errors.New("otp requested too frequently")

	ErrEmailServiceDisabled      = errors.New("email service is disabled")
	ErrEmailServiceNotConfigured = errors.New("email service is not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
