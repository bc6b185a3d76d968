package public

import (
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCart 读取服务端购物车
// GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	items, err := h.c.CartService.List(userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"items": items})
}

// AddToCart 按增量调整购物车
// POST /cart
func (h *Handler) AddToCart(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	var req service.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid cart payload")
		return
	}
	items, err := h.c.CartService.AddDelta(userID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"items": items})
}

// ClearCart 清空购物车
// DELETE /cart
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}
	if err := h.c.CartService.Clear(userID); err != nil {
		RespondServiceError(c, err)
		return
	}
	response.Message(c, "cart cleared")
}
