package admin

import (
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrder 更新订单状态
// PUT /orders/:orderId
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid order payload")
		return
	}
	order, err := h.c.OrderService.UpdateStatus(c.Param("orderId"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, order)
}
