package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 用户/管理员 JWT 声明
type UserClaims struct {
	UserID       uint   `json:"uid"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"tv"`
	jwt.RegisteredClaims
}

// TechnicianClaims 技师门户 JWT 声明（独立密钥）
type TechnicianClaims struct {
	TechnicianID uint   `json:"tid"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateUserJWT 签发用户令牌
func GenerateUserJWT(secret string, claims UserClaims, expireHours int) (string, error) {
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseUserJWT 解析并校验用户令牌
func ParseUserJWT(secret, tokenString string) (*UserClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenString, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GenerateTechnicianJWT 签发技师令牌
func GenerateTechnicianJWT(secret string, claims TechnicianClaims, expireHours int) (string, error) {
	if expireHours <= 0 {
		expireHours = 12
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseTechnicianJWT 解析并校验技师令牌
func ParseTechnicianJWT(secret, tokenString string) (*TechnicianClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenString, &TechnicianClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*TechnicianClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
