package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品（监控设备）
type Product struct {
	ID            uint           `gorm:"primarykey" json:"-"`
	ProductID     string         `gorm:"uniqueIndex;size:64;not null" json:"productId"` // 业务编号，如 CCTV-0001
	Name          string         `gorm:"size:255;not null" json:"name"`
	AltNames      StringArray    `gorm:"type:text" json:"altNames"`
	Description   string         `gorm:"type:text" json:"description"`
	Images        StringArray    `gorm:"type:text" json:"images"`
	LabelledPrice Money          `gorm:"type:decimal(12,2)" json:"labelledPrice"` // 标价（划线价）
	Price         Money          `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock         int            `gorm:"default:0" json:"stock"`
	IsAvailable   bool           `gorm:"default:true;index" json:"isAvailable"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// FirstImage 返回第一张图片，用于购物车与订单行的快照
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
