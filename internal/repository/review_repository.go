package repository

import (
	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	ListByProduct(productID string, includeHidden bool) ([]models.Review, error)
	ListAll() ([]models.Review, error)
	Update(review *models.Review) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) ReviewRepository
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储实例
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	return &reviewRepository{db: tx}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByProduct(productID string, includeHidden bool) ([]models.Review, error) {
	var reviews []models.Review
	query := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}
	err := query.Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListAll() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
