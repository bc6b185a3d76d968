package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cctvmart/internal/cache"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/repository"

	"gorm.io/gorm"
)

const (
	productListCacheKey = "products:available"
	productListCacheTTL = 5 * time.Minute
)

// ProductInput 商品创建/更新入参
type ProductInput struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name" binding:"required"`
	AltNames      []string `json:"altNames"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	LabelledPrice float64  `json:"labelledPrice"`
	Price         float64  `json:"price" binding:"required"`
	Stock         int      `json:"stock"`
	IsAvailable   *bool    `json:"isAvailable"`
}

// ProductService 商品业务逻辑
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService 创建商品服务实例
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List 商品列表；普通访客只看到上架商品，管理员可带 includeUnavailable
func (s *ProductService) List(includeUnavailable bool) ([]models.Product, error) {
	if !includeUnavailable {
		var cached []models.Product
		if cache.GetJSON(context.Background(), productListCacheKey, &cached) {
			return cached, nil
		}
	}
	products, err := s.products.List(includeUnavailable)
	if err != nil {
		return nil, err
	}
	if !includeUnavailable {
		cache.SetJSON(context.Background(), productListCacheKey, products, productListCacheTTL)
	}
	return products, nil
}

// Get 按业务编号查询商品
func (s *ProductService) Get(productID string) (*models.Product, error) {
	product, err := s.products.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create 创建商品；未指定编号时自动生成 CCTV-XXXX
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		seq, err := s.products.MaxProductSeq()
		if err != nil {
			return nil, err
		}
		productID = fmt.Sprintf("CCTV-%04d", seq+1)
	} else if _, err := s.products.GetByProductID(productID); err == nil {
		return nil, ErrProductExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}
	product := &models.Product{
		ProductID:     productID,
		Name:          strings.TrimSpace(input.Name),
		AltNames:      models.StringArray(input.AltNames),
		Description:   input.Description,
		Images:        models.StringArray(input.Images),
		LabelledPrice: models.NewMoneyFromFloat(input.LabelledPrice),
		Price:         models.NewMoneyFromFloat(input.Price),
		Stock:         input.Stock,
		IsAvailable:   available,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	logger.Infow("product_created", "product_id", product.ProductID, "name", product.Name)
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(productID string, input ProductInput) (*models.Product, error) {
	product, err := s.Get(productID)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.AltNames = models.StringArray(input.AltNames)
	product.Description = input.Description
	product.Images = models.StringArray(input.Images)
	product.LabelledPrice = models.NewMoneyFromFloat(input.LabelledPrice)
	product.Price = models.NewMoneyFromFloat(input.Price)
	product.Stock = input.Stock
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	s.invalidateListCache()
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(productID string) error {
	if _, err := s.Get(productID); err != nil {
		return err
	}
	if err := s.products.Delete(productID); err != nil {
		return err
	}
	s.invalidateListCache()
	logger.Infow("product_deleted", "product_id", productID)
	return nil
}

func (s *ProductService) invalidateListCache() {
	cache.Del(context.Background(), productListCacheKey)
}
