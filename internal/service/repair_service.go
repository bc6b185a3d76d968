package service

import (
	"errors"
	"strings"
	"time"

	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"
	"github.com/cctvmart/internal/queue"
	"github.com/cctvmart/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateRepairRequest 建立维修工单请求
type CreateRepairRequest struct {
	SerialNo      string     `json:"serialNo" binding:"required"`
	DeviceName    string     `json:"deviceName" binding:"required"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	Notes         string     `json:"notes"`
	EstimatedDate *time.Time `json:"estimatedDate"`
	TechnicianID  *uint      `json:"technicianId"`
}

// UpdateRepairRequest 更新维修工单请求
type UpdateRepairRequest struct {
	Progress      string     `json:"progress"`
	Notes         string     `json:"notes"`
	EstimatedDate *time.Time `json:"estimatedDate"`
	TechnicianID  *uint      `json:"technicianId"`
}

// RepairService 维修工单业务逻辑
type RepairService struct {
	repairs     repository.RepairRepository
	technicians repository.TechnicianRepository
	techJWT     config.JWTConfig
	tasks       *queue.Client
}

// NewRepairService 创建维修服务实例
func NewRepairService(
	repairs repository.RepairRepository,
	technicians repository.TechnicianRepository,
	techJWT config.JWTConfig,
	tasks *queue.Client,
) *RepairService {
	return &RepairService{repairs: repairs, technicians: technicians, techJWT: techJWT, tasks: tasks}
}

func validRepairProgress(progress string) bool {
	for _, p := range constants.RepairProgressOrder {
		if p == progress {
			return true
		}
	}
	return false
}

// Create 建立维修工单
func (s *RepairService) Create(req CreateRepairRequest) (*models.Repair, error) {
	serialNo := strings.TrimSpace(req.SerialNo)
	if _, err := s.repairs.GetBySerialNo(serialNo); err == nil {
		return nil, ErrSerialNoExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	repair := &models.Repair{
		SerialNo:      serialNo,
		DeviceName:    strings.TrimSpace(req.DeviceName),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Progress:      constants.RepairProgressReceived,
		Notes:         req.Notes,
		EstimatedDate: req.EstimatedDate,
		TechnicianID:  req.TechnicianID,
	}
	if err := s.repairs.Create(repair); err != nil {
		return nil, err
	}
	logger.Infow("repair_created", "serial_no", repair.SerialNo, "device", repair.DeviceName)
	return repair, nil
}

// GetBySerialNo 按序列号查询工单（顾客自助查询入口）
func (s *RepairService) GetBySerialNo(serialNo string) (*models.Repair, error) {
	repair, err := s.repairs.GetBySerialNo(strings.TrimSpace(serialNo))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepairNotFound
		}
		return nil, err
	}
	return repair, nil
}

// ListAll 全部工单（管理员）
func (s *RepairService) ListAll() ([]models.Repair, error) {
	return s.repairs.ListAll()
}

// ListByTechnician 技师名下的工单
func (s *RepairService) ListByTechnician(technicianID uint) ([]models.Repair, error) {
	return s.repairs.ListByTechnician(technicianID)
}

// Update 更新工单；进度变化时异步通知顾客
func (s *RepairService) Update(id uint, req UpdateRepairRequest) (*models.Repair, error) {
	repair, err := s.repairs.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepairNotFound
		}
		return nil, err
	}

	progressChanged := false
	if req.Progress != "" && req.Progress != repair.Progress {
		if !validRepairProgress(req.Progress) {
			return nil, ErrInvalidProgress
		}
		repair.Progress = req.Progress
		progressChanged = true
	}
	if req.Notes != "" {
		repair.Notes = req.Notes
	}
	if req.EstimatedDate != nil {
		repair.EstimatedDate = req.EstimatedDate
	}
	if req.TechnicianID != nil {
		repair.TechnicianID = req.TechnicianID
	}
	if err := s.repairs.Update(repair); err != nil {
		return nil, err
	}

	if progressChanged && repair.CustomerEmail != "" {
		s.tasks.EnqueueRepairStatusEmail(queue.RepairStatusEmailPayload{
			SerialNo:   repair.SerialNo,
			Email:      repair.CustomerEmail,
			Name:       repair.CustomerName,
			DeviceName: repair.DeviceName,
			Progress:   repair.Progress,
		})
	}
	logger.Infow("repair_updated", "serial_no", repair.SerialNo, "progress", repair.Progress)
	return repair, nil
}

// Delete 删除工单（管理员）
func (s *RepairService) Delete(id uint) error {
	if _, err := s.repairs.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRepairNotFound
		}
		return err
	}
	return s.repairs.Delete(id)
}

// TechnicianLogin 技师门户登录
func (s *RepairService) TechnicianLogin(email, password string) (string, *models.Technician, error) {
	technician, err := s.technicians.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(technician.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !technician.IsActive {
		return "", nil, ErrTechnicianInactive
	}

	now := time.Now()
	technician.LastLoginAt = &now
	if err := s.technicians.Update(technician); err != nil {
		logger.Warnw("technician_login_touch_failed", "email", technician.Email, "error", err)
	}

	token, err := GenerateTechnicianJWT(s.techJWT.SecretKey, TechnicianClaims{
		TechnicianID: technician.ID,
		Email:        technician.Email,
	}, s.techJWT.ExpireHours)
	if err != nil {
		return "", nil, err
	}
	return token, technician, nil
}
