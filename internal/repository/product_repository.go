package repository

import (
	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	Create(product *models.Product) error
	GetByProductID(productID string) (*models.Product, error)
	List(includeUnavailable bool) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(productID string) error
	MaxProductSeq() (int, error)
	WithTx(tx *gorm.DB) ProductRepository
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByProductID(productID string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("product_id = ?", productID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(includeUnavailable bool) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Order("created_at DESC")
	if !includeUnavailable {
		query = query.Where("is_available = ?", true)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(productID string) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.Product{}).Error
}

// MaxProductSeq 返回当前最大的商品序号（product_id 形如 CCTV-0001）
func (r *productRepository) MaxProductSeq() (int, error) {
	var last models.Product
	err := r.db.Unscoped().Order("id DESC").First(&last).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return int(last.ID), nil
}
