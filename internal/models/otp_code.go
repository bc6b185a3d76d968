package models

import (
	"time"

	"gorm.io/gorm"
)

// OtpCode 找回密码的一次性验证码记录
type OtpCode struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"index;size:255;not null" json:"email"`
	Code         string         `gorm:"size:16;not null" json:"-"` // 验证码不返回给前端
	ExpiresAt    time.Time      `gorm:"index" json:"expiresAt"`
	VerifiedAt   *time.Time     `json:"verifiedAt,omitempty"`
	AttemptCount int            `gorm:"default:0" json:"attemptCount"`
	SentAt       time.Time      `json:"sentAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (OtpCode) TableName() string {
	return "otp_codes"
}
