package repository

import (
	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// TechnicianRepository 技师数据访问接口
type TechnicianRepository interface {
	Create(technician *models.Technician) error
	GetByID(id uint) (*models.Technician, error)
	GetByEmail(email string) (*models.Technician, error)
	ListAll() ([]models.Technician, error)
	Update(technician *models.Technician) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) TechnicianRepository
}

type technicianRepository struct {
	db *gorm.DB
}

// NewTechnicianRepository 创建技师仓储实例
func NewTechnicianRepository(db *gorm.DB) TechnicianRepository {
	return &technicianRepository{db: db}
}

func (r *technicianRepository) WithTx(tx *gorm.DB) TechnicianRepository {
	return &technicianRepository{db: tx}
}

func (r *technicianRepository) Create(technician *models.Technician) error {
	return r.db.Create(technician).Error
}

func (r *technicianRepository) GetByID(id uint) (*models.Technician, error) {
	var technician models.Technician
	if err := r.db.First(&technician, id).Error; err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *technicianRepository) GetByEmail(email string) (*models.Technician, error) {
	var technician models.Technician
	if err := r.db.Where("email = ?", email).First(&technician).Error; err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *technicianRepository) ListAll() ([]models.Technician, error) {
	var technicians []models.Technician
	err := r.db.Order("created_at DESC").Find(&technicians).Error
	return technicians, err
}

func (r *technicianRepository) Update(technician *models.Technician) error {
	return r.db.Save(technician).Error
}

func (r *technicianRepository) Delete(id uint) error {
	return r.db.Delete(&models.Technician{}, id).Error
}
