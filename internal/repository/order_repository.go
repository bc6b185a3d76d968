package repository

import (
	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByOrderID(orderID string) (*models.Order, error)
	ListByEmail(email string, page, limit int) ([]models.Order, int64, error)
	ListAll(page, limit int) ([]models.Order, int64, error)
	Update(order *models.Order) error
	Count() (int64, error)
	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByEmail(email string, page, limit int) ([]models.Order, int64, error) {
	var total int64
	query := r.db.Model(&models.Order{}).Where("email = ?", email)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := applyPagination(
		r.db.Preload("Items").Where("email = ?", email).Order("created_at DESC"),
		page, limit,
	).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) ListAll(page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := applyPagination(
		r.db.Preload("Items").Order("created_at DESC"),
		page, limit,
	).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// Count 返回历史订单总数（含软删除，用于生成顺序单号）
func (r *orderRepository) Count() (int64, error) {
	var total int64
	err := r.db.Unscoped().Model(&models.Order{}).Count(&total).Error
	return total, err
}
