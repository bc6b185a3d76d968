package client

import (
	"context"
	"errors"

	"github.com/cctvmart/internal/logger"
)

// CartStore 购物车统一门面
// 本地与远端的分流只发生在这里，且每次调用时重新判断登录态
type CartStore struct {
	session *Session
	local   CartBackend
	remote  CartBackend
}

// NewCartStore 创建购物车门面
func NewCartStore(session *Session, local, remote CartBackend) *CartStore {
	return &CartStore{session: session, local: local, remote: remote}
}

// IsAuthenticated 当前是否已登录
func (s *CartStore) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

// ReadCart 读取当前购物车
// 远端读取失败时退回本地数据，展示路径宁可陈旧也不报错
func (s *CartStore) ReadCart(ctx context.Context) ([]CartLine, error) {
	if s.IsAuthenticated() {
		lines, err := s.remote.Read(ctx)
		if err == nil {
			return lines, nil
		}
		logger.Warnw("cart_remote_read_failed", "error", err)
	}
	return s.local.Read(ctx)
}

// MutateQuantity 按增量调整购物车行
// 远端返回 401/403 时向上传播，由调用方引导重新登录；
// 其余远端失败退回本地写入，与读路径的降级策略一致
func (s *CartStore) MutateQuantity(ctx context.Context, product Product, delta int) ([]CartLine, error) {
	if s.IsAuthenticated() {
		lines, err := s.remote.Mutate(ctx, product, delta)
		if err == nil {
			return lines, nil
		}
		if errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
		logger.Warnw("cart_remote_mutate_failed", "product_id", product.ProductID, "error", err)
	}
	return s.local.Mutate(ctx, product, delta)
}

// ClearCart 清空当前生效后端的购物车
func (s *CartStore) ClearCart(ctx context.Context) error {
	if s.IsAuthenticated() {
		return s.remote.Clear(ctx)
	}
	return s.local.Clear(ctx)
}

// Total 当前购物车合计金额，仅用于展示
func (s *CartStore) Total(ctx context.Context) (float64, error) {
	lines, err := s.ReadCart(ctx)
	if err != nil {
		return 0, err
	}
	return ComputeTotal(lines), nil
}
