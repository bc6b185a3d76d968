package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// CartLine 购物车中一件商品的占位行
type CartLine struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	AltNames  []string `json:"altNames,omitempty"`
}

// Product 加购时随行携带的商品快照
type Product struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
	Price     float64  `json:"price"`
	AltNames  []string `json:"altNames,omitempty"`
}

// ErrUnauthorized 凭证缺失或失效（401/403），调用方需要引导重新登录
var ErrUnauthorized = errors.New("authentication required")

// StatusError 携带 HTTP 状态码的请求错误
type StatusError struct {
	Code    int
	Message string
}

// Error 实现 error 接口
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed: %d %s", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed: %d", e.Code)
}

// Unwrap 401/403 展开为 ErrUnauthorized，便于调用方用 errors.Is 区分
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// CartBackend 购物车后端，本地与远端实现同一接口
// 读写分流的判断集中在 CartStore，不散落在各调用点
type CartBackend interface {
	Read(ctx context.Context) ([]CartLine, error)
	Mutate(ctx context.Context, product Product, delta int) ([]CartLine, error)
	Clear(ctx context.Context) error
}
