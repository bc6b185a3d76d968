package public

import (
	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListReviews 商品评价列表；隐藏评价仅管理员可见
// GET /reviews?productId=CCTV-0001
func (h *Handler) ListReviews(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		response.BadRequest(c, "productId is required")
		return
	}
	includeHidden := CurrentUserRole(c) == constants.RoleAdmin
	reviews, err := h.c.ReviewService.ListByProduct(productID, includeHidden)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, reviews)
}

// CreateReview 发表评价
// POST /reviews
func (h *Handler) CreateReview(c *gin.Context) {
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

	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid review payload")
		return
	}
	review, err := h.c.ReviewService.Create(user, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.Created(c, review)
}
