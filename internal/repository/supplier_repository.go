package repository

import (
	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository 供应商数据访问接口
type SupplierRepository interface {
	Create(supplier *models.Supplier) error
	GetByID(id uint) (*models.Supplier, error)
	GetByEmail(email string) (*models.Supplier, error)
	ListAll() ([]models.Supplier, error)
	Update(supplier *models.Supplier) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) SupplierRepository
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 创建供应商仓储实例
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) WithTx(tx *gorm.DB) SupplierRepository {
	return &supplierRepository{db: tx}
}

func (r *supplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) GetByEmail(email string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.Where("email = ?", email).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) ListAll() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Order("created_at DESC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *supplierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Supplier{}, id).Error
}
