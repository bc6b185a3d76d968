package admin

import (
	"github.com/cctvmart/internal/http/handlers/public"
	"github.com/cctvmart/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 后台接口处理器
type Handler struct {
	c *provider.Container
}

// NewHandler 创建后台处理器
func NewHandler(c *provider.Container) *Handler {
	return &Handler{c: c}
}

func respondServiceError(c *gin.Context, err error) {
	public.RespondServiceError(c, err)
}
