package repository

import (
	"errors"
	"time"

	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// OtpRepository 找回密码验证码数据访问接口
type OtpRepository interface {
	Create(code *models.OtpCode) error
	GetLatestByEmail(email string) (*models.OtpCode, error)
	MarkVerified(id uint, verifiedAt time.Time) error
	IncrementAttempt(id uint) error
}

type otpRepository struct {
	db *gorm.DB
}

// NewOtpRepository 创建验证码仓储实例
func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(code *models.OtpCode) error {
	return r.db.Create(code).Error
}

// GetLatestByEmail 返回该邮箱最近一次下发的验证码；不存在时返回 (nil, nil)
func (r *otpRepository) GetLatestByEmail(email string) (*models.OtpCode, error) {
	var record models.OtpCode
	err := r.db.Where("email = ?", email).
		Order("sent_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *otpRepository) MarkVerified(id uint, verifiedAt time.Time) error {
	return r.db.Model(&models.OtpCode{}).
		Where("id = ?", id).
		Update("verified_at", verifiedAt).Error
}

func (r *otpRepository) IncrementAttempt(id uint) error {
	return r.db.Model(&models.OtpCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}
