package service

import (
	"errors"
	"strings"

	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/repository"

	"gorm.io/gorm"
)

// CreateReviewRequest 发表评价请求
type CreateReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ReviewService 评价业务逻辑
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

// NewReviewService 创建评价服务实例
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Create 发表评价（登录用户）
func (s *ReviewService) Create(user *models.User, req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.products.GetByProductID(req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := &models.Review{
		ProductID: req.ProductID,
		Email:     user.Email,
		UserName:  strings.TrimSpace(user.FirstName + " " + user.LastName),
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}
	logger.Infow("review_created", "product_id", req.ProductID, "email", user.Email, "rating", req.Rating)
	return review, nil
}

// ListByProduct 商品评价列表；仅管理员可见隐藏评价
func (s *ReviewService) ListByProduct(productID string, includeHidden bool) ([]models.Review, error) {
	return s.reviews.ListByProduct(productID, includeHidden)
}

// ListAll 全部评价（管理员）
func (s *ReviewService) ListAll() ([]models.Review, error) {
	return s.reviews.ListAll()
}

// SetHidden 隐藏/恢复评价（管理员）
func (s *ReviewService) SetHidden(id uint, hidden bool) (*models.Review, error) {
	review, err := s.reviews.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	review.Hidden = hidden
	if err := s.reviews.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete 删除评价（管理员）
func (s *ReviewService) Delete(id uint) error {
	if _, err := s.reviews.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	return s.reviews.Delete(id)
}
