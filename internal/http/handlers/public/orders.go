package public

import (
	"strconv"

	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder 下单
// POST /orders
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	user, err := h.c.UserService.GetByID(userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid order payload")
		return
	}
	order, err := h.c.OrderService.Create(user, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.Created(c, order)
}

// ListOrders 分页查询订单；顾客只看到本人订单，管理员看到全部
// GET /orders/:page/:limit
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	page, _ := strconv.Atoi(c.Param("page"))
	limit, _ := strconv.Atoi(c.Param("limit"))

	if CurrentUserRole(c) == constants.RoleAdmin {
		orders, total, err := h.c.OrderService.ListAll(page, limit)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		response.OK(c, gin.H{"orders": orders, "total": total})
		return
	}

	user, err := h.c.UserService.GetByID(userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	orders, total, err := h.c.OrderService.ListMine(user.Email, page, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{
		"orders": orders,
		"total":  total,
	})
}
