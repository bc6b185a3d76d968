package service

import (
	"errors"

	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/repository"

	"gorm.io/gorm"
)

// AddCartItemRequest 加购请求；Quantity 为增量，可为负
type AddCartItemRequest struct {
	Item struct {
		ProductID string   `json:"productId" binding:"required"`
		Name      string   `json:"name"`
		Image     string   `json:"image"`
		Price     float64  `json:"price"`
		AltNames  []string `json:"altNames"`
	} `json:"item" binding:"required"`
	Quantity int `json:"quantity" binding:"required"`
}

// CartService 服务端购物车业务逻辑
// 同一商品在购物车中只占一行，加购为数量累加，累加后数量 ≤ 0 时移除该行
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService 创建购物车服务实例
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// List 返回用户购物车所有行
func (s *CartService) List(userID uint) ([]models.CartItem, error) {
	items, err := s.carts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// AddDelta 按增量调整购物车行数量
// 商品信息以服务端为准，不信任客户端快照中的价格
func (s *CartService) AddDelta(userID uint, req AddCartItemRequest) ([]models.CartItem, error) {
	product, err := s.products.GetByProductID(req.Item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.carts.GetByUserAndProduct(userID, product.ProductID)
	if err != nil {
		return nil, err
	}

	newQty := req.Quantity
	if existing != nil {
		newQty += existing.Quantity
	}

	switch {
	case newQty <= 0 && existing != nil:
		if err := s.carts.DeleteByUserAndProduct(userID, product.ProductID); err != nil {
			return nil, err
		}
	case newQty <= 0:
		// 减量落在不存在的行上，视为无操作
	case existing != nil:
		existing.Quantity = newQty
		existing.Name = product.Name
		existing.AltNames = product.AltNames
		existing.Image = product.FirstImage()
		existing.Price = product.Price
		if err := s.carts.Save(existing); err != nil {
			return nil, err
		}
	default:
		if !product.IsAvailable {
			return nil, ErrProductUnavailable
		}
		item := &models.CartItem{
			UserID:    userID,
			ProductID: product.ProductID,
			Name:      product.Name,
			AltNames:  product.AltNames,
			Image:     product.FirstImage(),
			Price:     product.Price,
			Quantity:  newQty,
		}
		if err := s.carts.Save(item); err != nil {
			return nil, err
		}
	}

	logger.Debugw("cart_updated", "user_id", userID, "product_id", product.ProductID, "delta", req.Quantity)
	return s.List(userID)
}

// Clear 清空用户购物车
func (s *CartService) Clear(userID uint) error {
	return s.carts.ClearByUser(userID)
}
