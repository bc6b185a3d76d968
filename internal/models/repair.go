package models

import (
	"time"

	"gorm.io/gorm"
)

// Repair 维修工单（按设备序列号跟踪）
type Repair struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	SerialNo      string         `gorm:"uniqueIndex;size:64;not null" json:"serialNo"`
	DeviceName    string         `gorm:"size:255;not null" json:"deviceName"`
	CustomerName  string         `gorm:"size:200" json:"customerName"`
	CustomerEmail string         `gorm:"size:255;index" json:"customerEmail"`
	CustomerPhone string         `gorm:"size:32" json:"customerPhone"`
	Progress      string         `gorm:"size:32;not null;default:Received" json:"progress"`
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`
	EstimatedDate *time.Time     `json:"estimatedDate,omitempty"`
	TechnicianID  *uint          `gorm:"index" json:"technicianId,omitempty"`
	Technician    *Technician    `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Repair) TableName() string {
	return "repairs"
}
