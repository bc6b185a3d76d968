package repository

import (
	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// RepairRepository 维修工单数据访问接口
type RepairRepository interface {
	Create(repair *models.Repair) error
	GetByID(id uint) (*models.Repair, error)
	GetBySerialNo(serialNo string) (*models.Repair, error)
	ListAll() ([]models.Repair, error)
	ListByTechnician(technicianID uint) ([]models.Repair, error)
	Update(repair *models.Repair) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) RepairRepository
}

type repairRepository struct {
	db *gorm.DB
}

// NewRepairRepository 创建维修工单仓储实例
func NewRepairRepository(db *gorm.DB) RepairRepository {
	return &repairRepository{db: db}
}

func (r *repairRepository) WithTx(tx *gorm.DB) RepairRepository {
	return &repairRepository{db: tx}
}

func (r *repairRepository) Create(repair *models.Repair) error {
	return r.db.Create(repair).Error
}

func (r *repairRepository) GetByID(id uint) (*models.Repair, error) {
	var repair models.Repair
	if err := r.db.Preload("Technician").First(&repair, id).Error; err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *repairRepository) GetBySerialNo(serialNo string) (*models.Repair, error) {
	var repair models.Repair
	err := r.db.Preload("Technician").Where("serial_no = ?", serialNo).First(&repair).Error
	if err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *repairRepository) ListAll() ([]models.Repair, error) {
	var repairs []models.Repair
	err := r.db.Preload("Technician").Order("created_at DESC").Find(&repairs).Error
	return repairs, err
}

func (r *repairRepository) ListByTechnician(technicianID uint) ([]models.Repair, error) {
	var repairs []models.Repair
	err := r.db.Where("technician_id = ?", technicianID).Order("created_at DESC").Find(&repairs).Error
	return repairs, err
}

func (r *repairRepository) Update(repair *models.Repair) error {
	return r.db.Save(repair).Error
}

func (r *repairRepository) Delete(id uint) error {
	return r.db.Delete(&models.Repair{}, id).Error
}
