package repository

import (
	"github.com/cctvmart/internal/models"

	"gorm.io/gorm"
)

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	GetByEmail(email string) (*models.Employee, error)
	ListAll() ([]models.Employee, error)
	Update(employee *models.Employee) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) EmployeeRepository
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository 创建员工仓储实例
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) WithTx(tx *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: tx}
}

func (r *employeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) ListAll() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Order("created_at DESC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Employee{}, id).Error
}
