package public

import (
	"github.com/cctvmart/internal/provider"
)

// Handler 前台接口处理器
type Handler struct {
	c *provider.Container
}

// NewHandler 创建前台处理器
func NewHandler(c *provider.Container) *Handler {
	return &Handler{c: c}
}
