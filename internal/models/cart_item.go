package models

import "time"

// CartItem 服务端购物车行（user_id + product_id 唯一）
// 价格与名称为加入时的商品快照，读取时不回填最新商品信息
type CartItem struct {
	ID        uint        `gorm:"primarykey" json:"-"`
	UserID    uint        `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"-"`
	ProductID string      `gorm:"size:64;not null;uniqueIndex:idx_cart_user_product" json:"productId"`
	Name      string      `gorm:"size:255" json:"name"`
	AltNames  StringArray `gorm:"type:text" json:"altNames,omitempty"`
	Image     string      `gorm:"size:512" json:"image"`
	Price     Money       `gorm:"type:decimal(12,2)" json:"price"`
	Quantity  int         `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
