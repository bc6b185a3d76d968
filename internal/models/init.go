package models

import (
	"errors"

	"github.com/cctvmart/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitDefaultAdmin 初始化默认管理员账号（仅在不存在时创建）
func InitDefaultAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		Role:         "admin",
		IsSuper:      true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	logger.Infow("default_admin_created", "email", email)
	return nil
}
