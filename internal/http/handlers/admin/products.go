package admin

import (
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProduct 新增商品
// POST /products
func (h *Handler) CreateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid product payload")
		return
	}
	product, err := h.c.ProductService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, product)
}

// UpdateProduct 更新商品
// PUT /products/:productId
func (h *Handler) UpdateProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid product payload")
		return
	}
	product, err := h.c.ProductService.Update(c.Param("productId"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, product)
}

// DeleteProduct 下架删除商品
// DELETE /products/:productId
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.c.ProductService.Delete(c.Param("productId")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "product deleted")
}
