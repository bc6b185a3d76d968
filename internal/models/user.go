package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户（顾客与管理员共用，通过 Role 区分）
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash       string         `gorm:"size:255;not null" json:"-"`
	FirstName          string         `gorm:"size:100" json:"firstName"`
	LastName           string         `gorm:"size:100" json:"lastName"`
	Phone              string         `gorm:"size:32" json:"phone"`
	Role               string         `gorm:"size:20;not null;default:customer;index" json:"role"`
	IsBlocked          bool           `gorm:"default:false" json:"isBlocked"`
	IsSuper            bool           `gorm:"default:false" json:"-"` // 初始管理员标记，不允许被封禁或降级
	TokenVersion       int            `gorm:"default:0" json:"-"`
	TokenInvalidBefore *time.Time     `json:"-"`
	LastLoginAt        *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"-"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
