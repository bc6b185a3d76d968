package service

import (
	"errors"
	"strings"

	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EmployeeInput 员工档案入参
type EmployeeInput struct {
	Email     string  `json:"email" binding:"required,email"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName"`
	Position  string  `json:"position"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Salary    float64 `json:"salary"`
}

// SupplierInput 供应商档案入参
type SupplierInput struct {
	Company string `json:"company" binding:"required"`
	Contact string `json:"contact"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// TechnicianInput 技师档案入参；Password 仅创建与改密时提供
type TechnicianInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	IsActive  *bool  `json:"isActive"`
}

// StaffService 后台人事管理（员工/供应商/技师）
type StaffService struct {
	employees   repository.EmployeeRepository
	suppliers   repository.SupplierRepository
	technicians repository.TechnicianRepository
}

// NewStaffService 创建人事服务实例
func NewStaffService(
	employees repository.EmployeeRepository,
	suppliers repository.SupplierRepository,
	technicians repository.TechnicianRepository,
) *StaffService {
	return &StaffService{employees: employees, suppliers: suppliers, technicians: technicians}
}

// ---- 员工 ----

// CreateEmployee 新增员工档案
func (s *StaffService) CreateEmployee(input EmployeeInput) (*models.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.employees.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	employee := &models.Employee{
		Email:     email,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Position:  strings.TrimSpace(input.Position),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		Salary:    models.NewMoneyFromFloat(input.Salary),
	}
	if err := s.employees.Create(employee); err != nil {
		return nil, err
	}
	logger.Infow("employee_created", "email", employee.Email)
	return employee, nil
}

// ListEmployees 员工列表
func (s *StaffService) ListEmployees() ([]models.Employee, error) {
	return s.employees.ListAll()
}

// UpdateEmployee 更新员工档案
func (s *StaffService) UpdateEmployee(id uint, input EmployeeInput) (*models.Employee, error) {
	employee, err := s.employees.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	employee.Email = strings.ToLower(strings.TrimSpace(input.Email))
	employee.FirstName = strings.TrimSpace(input.FirstName)
	employee.LastName = strings.TrimSpace(input.LastName)
	employee.Position = strings.TrimSpace(input.Position)
	employee.Phone = strings.TrimSpace(input.Phone)
	employee.Address = strings.TrimSpace(input.Address)
	employee.Salary = models.NewMoneyFromFloat(input.Salary)
	if err := s.employees.Update(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee 删除员工档案
func (s *StaffService) DeleteEmployee(id uint) error {
	if _, err := s.employees.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return s.employees.Delete(id)
}

// ---- 供应商 ----

// CreateSupplier 新增供应商
func (s *StaffService) CreateSupplier(input SupplierInput) (*models.Supplier, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.suppliers.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	supplier := &models.Supplier{
		Company: strings.TrimSpace(input.Company),
		Contact: strings.TrimSpace(input.Contact),
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
		Notes:   input.Notes,
	}
	if err := s.suppliers.Create(supplier); err != nil {
		return nil, err
	}
	logger.Infow("supplier_created", "email", supplier.Email, "company", supplier.Company)
	return supplier, nil
}

// ListSuppliers 供应商列表
func (s *StaffService) ListSuppliers() ([]models.Supplier, error) {
	return s.suppliers.ListAll()
}

// UpdateSupplier 更新供应商
func (s *StaffService) UpdateSupplier(id uint, input SupplierInput) (*models.Supplier, error) {
	supplier, err := s.suppliers.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	supplier.Company = strings.TrimSpace(input.Company)
	supplier.Contact = strings.TrimSpace(input.Contact)
	supplier.Email = strings.ToLower(strings.TrimSpace(input.Email))
	supplier.Phone = strings.TrimSpace(input.Phone)
	supplier.Address = strings.TrimSpace(input.Address)
	supplier.Notes = input.Notes
	if err := s.suppliers.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier 删除供应商
func (s *StaffService) DeleteSupplier(id uint) error {
	if _, err := s.suppliers.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}
	return s.suppliers.Delete(id)
}

// ---- 技师 ----

// CreateTechnician 新增技师账号
func (s *StaffService) CreateTechnician(input TechnicianInput) (*models.Technician, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.technicians.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if input.Password == "" {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	technician := &models.Technician{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Specialty:    strings.TrimSpace(input.Specialty),
		IsActive:     active,
	}
	if err := s.technicians.Create(technician); err != nil {
		return nil, err
	}
	logger.Infow("technician_created", "email", technician.Email)
	return technician, nil
}

// ListTechnicians 技师列表
func (s *StaffService) ListTechnicians() ([]models.Technician, error) {
	return s.technicians.ListAll()
}

// UpdateTechnician 更新技师档案；提供 Password 时重置密码
func (s *StaffService) UpdateTechnician(id uint, input TechnicianInput) (*models.Technician, error) {
	technician, err := s.technicians.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}
	technician.Email = strings.ToLower(strings.TrimSpace(input.Email))
	technician.FirstName = strings.TrimSpace(input.FirstName)
	technician.LastName = strings.TrimSpace(input.LastName)
	technician.Phone = strings.TrimSpace(input.Phone)
	technician.Specialty = strings.TrimSpace(input.Specialty)
	if input.IsActive != nil {
		technician.IsActive = *input.IsActive
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		technician.PasswordHash = string(hash)
	}
	if err := s.technicians.Update(technician); err != nil {
		return nil, err
	}
	return technician, nil
}

// DeleteTechnician 删除技师账号
func (s *StaffService) DeleteTechnician(id uint) error {
	if _, err := s.technicians.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTechnicianNotFound
		}
		return err
	}
	return s.technicians.Delete(id)
}
