package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee 员工档案（后台人事管理）
type Employee struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName string         `gorm:"size:100;not null" json:"firstName"`
	LastName  string         `gorm:"size:100" json:"lastName"`
	Position  string         `gorm:"size:100" json:"position"`
	Phone     string         `gorm:"size:32" json:"phone"`
	Address   string         `gorm:"size:500" json:"address"`
	Salary    Money          `gorm:"type:decimal(12,2)" json:"salary"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Employee) TableName() string {
	return "employees"
}
