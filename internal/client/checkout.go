package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrValidation 下单前的校验失败，尚未发起任何网络请求
var ErrValidation = errors.New("validation failed")

// OrderLine 订单提交行，只携带编号与数量
// 单价与名称一律以服务端下单时的数据为准，客户端不上送
type OrderLine struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderDraft 结算页派生出的订单草稿，仅在结算会话内存在
type OrderDraft struct {
	Address string      `json:"address"`
	Phone   string      `json:"phone"`
	Items   []OrderLine `json:"items"`
}

// RawCartLine 进入结算页的未校验快照行
// 上游传来的数量与价格可能是字符串或畸形值，统一在 NormalizeSnapshot 收口
type RawCartLine struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Image     string      `json:"image"`
	Price     interface{} `json:"price"`
	Quantity  interface{} `json:"quantity"`
	AltNames  []string    `json:"altNames"`
}

// coerceQuantity 把任意类型的数量钳制为 ≥ 1 的整数
func coerceQuantity(value interface{}) int {
	qty := 1
	switch v := value.(type) {
	case int:
		qty = v
	case int64:
		qty = int(v)
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			qty = int(math.Floor(v))
		}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			qty = int(math.Floor(f))
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			qty = int(math.Floor(f))
		}
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

// coercePrice 把任意类型的价格转换为数字，无法解析时取 0
func coercePrice(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return 0
}

// NormalizeSnapshot 把未校验的快照行转换为合法的 CartLine 序列
// 所有外部数据进入结算流程前都必须经过这里
func NormalizeSnapshot(raw []RawCartLine) []CartLine {
	lines := make([]CartLine, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, CartLine{
			ProductID: r.ProductID,
			Name:      r.Name,
			Image:     r.Image,
			Price:     coercePrice(r.Price),
			Quantity:  coerceQuantity(r.Quantity),
			AltNames:  r.AltNames,
		})
	}
	return lines
}

// AdjustQuantity 不可变地调整指定行的数量，下限为 1
// 结算页的减量不会删行，删除由单独的 RemoveLine 完成
func AdjustQuantity(items []CartLine, index, delta int) []CartLine {
	out := make([]CartLine, len(items))
	copy(out, items)
	if index < 0 || index >= len(out) {
		return out
	}
	newQty := out[index].Quantity + delta
	if newQty < 1 {
		newQty = 1
	}
	out[index].Quantity = newQty
	return out
}

// RemoveLine 不可变地删除指定行
func RemoveLine(items []CartLine, index int) []CartLine {
	if index < 0 || index >= len(items) {
		out := make([]CartLine, len(items))
		copy(out, items)
		return out
	}
	out := make([]CartLine, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out
}

// ComputeTotal 合计金额，每次调用重新求和，仅用于展示
func ComputeTotal(items []CartLine) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// BuildOrderPayload 从结算行与收货信息构建订单草稿
// 行投影只保留编号与数量，价格由服务端在下单时裁定
func BuildOrderPayload(items []CartLine, address, phone string) (OrderDraft, error) {
	address = strings.TrimSpace(address)
	phone = strings.TrimSpace(phone)
	if address == "" {
		return OrderDraft{}, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if phone == "" {
		return OrderDraft{}, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if len(items) == 0 {
		return OrderDraft{}, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, OrderLine{ProductID: item.ProductID, Qty: item.Quantity})
	}
	return OrderDraft{Address: address, Phone: phone, Items: lines}, nil
}
