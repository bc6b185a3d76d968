package models

import (
	"time"

	"gorm.io/gorm"
)

// Technician 维修技师（独立登录体系，与 User 不共用）
type Technician struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	FirstName    string         `gorm:"size:100;not null" json:"firstName"`
	LastName     string         `gorm:"size:100" json:"lastName"`
	Phone        string         `gorm:"size:32" json:"phone"`
	Specialty    string         `gorm:"size:200" json:"specialty"`
	IsActive     bool           `gorm:"default:true" json:"isActive"`
	LastLoginAt  *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Technician) TableName() string {
	return "technicians"
}
