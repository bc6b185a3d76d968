package client

import (
	"context"
	"encoding/json"
)

// LocalBackend 未登录时的本地持久化购物车
// 首次访问时惰性初始化为空序列
type LocalBackend struct {
	store StateStore
}

// NewLocalBackend 创建本地购物车后端
func NewLocalBackend(store StateStore) *LocalBackend {
	return &LocalBackend{store: store}
}

func (b *LocalBackend) load() ([]CartLine, error) {
	raw, ok := b.store.Get(stateKeyCart)
	if !ok || raw == "" {
		if err := b.store.Set(stateKeyCart, "[]"); err != nil {
			return nil, err
		}
		return []CartLine{}, nil
	}
	var lines []CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		// 本地数据损坏时重置为空，购物车展示不允许因此崩溃
		if err := b.store.Set(stateKeyCart, "[]"); err != nil {
			return nil, err
		}
		return []CartLine{}, nil
	}
	if lines == nil {
		lines = []CartLine{}
	}
	return lines, nil
}

func (b *LocalBackend) save(lines []CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return b.store.Set(stateKeyCart, string(data))
}

// Read 读取本地购物车
func (b *LocalBackend) Read(ctx context.Context) ([]CartLine, error) {
	_ = ctx
	return b.load()
}

// Mutate 按增量调整本地购物车行
// 同一商品只占一行，调整后数量 ≤ 0 时移除该行
func (b *LocalBackend) Mutate(ctx context.Context, product Product, delta int) ([]CartLine, error) {
	_ = ctx
	lines, err := b.load()
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range lines {
		if lines[i].ProductID == product.ProductID {
			index = i
			break
		}
	}

	switch {
	case index >= 0:
		newQty := lines[index].Quantity + delta
		if newQty <= 0 {
			lines = append(lines[:index], lines[index+1:]...)
		} else {
			lines[index].Quantity = newQty
			lines[index].Name = product.Name
			lines[index].Image = product.Image
			lines[index].Price = product.Price
			lines[index].AltNames = product.AltNames
		}
	case delta > 0:
		lines = append(lines, CartLine{
			ProductID: product.ProductID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  delta,
			AltNames:  product.AltNames,
		})
	default:
		// 减量落在不存在的行上，视为无操作
	}

	if err := b.save(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Clear 清空本地购物车
func (b *LocalBackend) Clear(ctx context.Context) error {
	_ = ctx
	return b.store.Set(stateKeyCart, "[]")
}
