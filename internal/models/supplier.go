package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier 供应商档案
type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Company   string         `gorm:"size:255;not null" json:"company"`
	Contact   string         `gorm:"size:200" json:"contact"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string         `gorm:"size:32" json:"phone"`
	Address   string         `gorm:"size:500" json:"address"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Supplier) TableName() string {
	return "suppliers"
}
