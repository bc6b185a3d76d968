package public

import (
	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表
// GET /products?includeUnavailable=true（仅管理员生效）
func (h *Handler) ListProducts(c *gin.Context) {
	includeUnavailable := c.Query("includeUnavailable") == "true" &&
		CurrentUserRole(c) == constants.RoleAdmin

	products, err := h.c.ProductService.List(includeUnavailable)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, products)
}

// GetProduct 商品详情
// GET /products/:productId
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.c.ProductService.Get(c.Param("productId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, product)
}
