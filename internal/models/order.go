package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单
type Order struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	OrderID   string         `gorm:"uniqueIndex;size:32;not null" json:"orderId"` // 业务单号，如 ORD00001
	UserID    uint           `gorm:"index;not null" json:"-"`
	Email     string         `gorm:"size:255;not null;index" json:"email"`
	Name      string         `gorm:"size:200" json:"name"`
	Address   string         `gorm:"size:500;not null" json:"address"`
	Phone     string         `gorm:"size:32;not null" json:"phone"`
	Status    string         `gorm:"size:20;not null;default:Pending;index" json:"status"`
	Notes     string         `gorm:"size:500" json:"notes,omitempty"`
	Total     Money          `gorm:"type:decimal(12,2);not null" json:"total"`
	Items     []OrderItem    `gorm:"foreignKey:OrderRef" json:"items"`
	CreatedAt time.Time      `json:"date"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单行（下单时的商品快照）
type OrderItem struct {
	ID        uint   `gorm:"primarykey" json:"-"`
	OrderRef  uint   `gorm:"index;not null" json:"-"`
	ProductID string `gorm:"size:64;not null" json:"productId"`
	Name      string `gorm:"size:255" json:"name"`
	Image     string `gorm:"size:512" json:"image"`
	Price     Money  `gorm:"type:decimal(12,2)" json:"price"` // 下单时服务端定价，不信任客户端
	Qty       int    `gorm:"not null" json:"qty"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
