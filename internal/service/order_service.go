package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/queue"
	"github.com/cctvmart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderLineRequest 下单请求中的单个商品行（只携带编号与数量）
type OrderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Address string             `json:"address" binding:"required"`
	Phone   string             `json:"phone" binding:"required"`
	Notes   string             `json:"notes"`
	Items   []OrderLineRequest `json:"items" binding:"required"`
}

// UpdateOrderRequest 订单状态更新请求
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// OrderService 订单业务逻辑
type OrderService struct {
	db       *gorm.DB
	orders   repository.OrderRepository
	products repository.ProductRepository
	tasks    *queue.Client
}

// NewOrderService 创建订单服务实例
func NewOrderService(db *gorm.DB, orders repository.OrderRepository, products repository.ProductRepository, tasks *queue.Client) *OrderService {
	return &OrderService{db: db, orders: orders, products: products, tasks: tasks}
}

func validOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled:
		return true
	}
	return false
}

// Create 创建订单
// 单价以下单时服务端商品数据为准，客户端只提交编号与数量
func (s *OrderService) Create(user *models.User, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrOrderEmpty
	}

	var created *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ordersTx := s.orders.WithTx(tx)
		productsTx := s.products.WithTx(tx)

		total := decimal.Zero
		lines := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			if line.Qty < 1 {
				return ErrInvalidQuantity
			}
			product, err := productsTx.GetByProductID(line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			lines = append(lines, models.OrderItem{
				ProductID: product.ProductID,
				Name:      product.Name,
				Image:     product.FirstImage(),
				Price:     product.Price,
				Qty:       line.Qty,
			})
			total = total.Add(product.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Qty))))
		}

		count, err := ordersTx.Count()
		if err != nil {
			return err
		}
		name := strings.TrimSpace(user.FirstName + " " + user.LastName)
		order := &models.Order{
			OrderID: fmt.Sprintf("ORD%05d", count+1),
			UserID:  user.ID,
			Email:   user.Email,
			Name:    name,
			Address: strings.TrimSpace(req.Address),
			Phone:   strings.TrimSpace(req.Phone),
			Notes:   strings.TrimSpace(req.Notes),
			Status:  constants.OrderStatusPending,
			Total:   models.NewMoneyFromDecimal(total),
			Items:   lines,
		}
		if err := ordersTx.Create(order); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", created.OrderID,
		"email", created.Email,
		"total", created.Total.String(),
		"lines", len(created.Items),
	)
	return created, nil
}

// ListMine 按邮箱分页查询本人订单
func (s *OrderService) ListMine(email string, page, limit int) ([]models.Order, int64, error) {
	return s.orders.ListByEmail(email, page, limit)
}

// ListAll 管理员分页查询全部订单
func (s *OrderService) ListAll(page, limit int) ([]models.Order, int64, error) {
	return s.orders.ListAll(page, limit)
}

// Get 按单号查询订单
func (s *OrderService) Get(orderID string) (*models.Order, error) {
	order, err := s.orders.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus 更新订单状态并异步发送邮件通知
func (s *OrderService) UpdateStatus(orderID string, req UpdateOrderRequest) (*models.Order, error) {
	if !validOrderStatus(req.Status) {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	order.Status = req.Status
	if req.Notes != "" {
		order.Notes = req.Notes
	}
	if err := s.orders.Update(order); err != nil {
		return nil, err
	}

	s.tasks.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.OrderID,
		Email:   order.Email,
		Name:    order.Name,
		Status:  order.Status,
		Notes:   order.Notes,
	})
	logger.Infow("order_status_updated", "order_id", order.OrderID, "status", order.Status)
	return order, nil
}
