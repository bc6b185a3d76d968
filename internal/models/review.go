package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 商品评价
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID string         `gorm:"size:64;not null;index" json:"productId"`
	Email     string         `gorm:"size:255;not null" json:"email"`
	UserName  string         `gorm:"size:200" json:"userName"`
	Rating    int            `gorm:"not null" json:"rating"` // 1-5
	Comment   string         `gorm:"type:text" json:"comment"`
	Hidden    bool           `gorm:"default:false;index" json:"hidden"`
	CreatedAt time.Time      `json:"date"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
