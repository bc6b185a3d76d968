package admin

import (
	"strconv"

	"github.com/cctvmart/internal/http/response"

	"github.com/gin-gonic/gin"
)

type hideReviewRequest struct {
	Hidden bool `json:"hidden"`
}

// ListAllReviews 全部评价
// GET /reviews/all
func (h *Handler) ListAllReviews(c *gin.Context) {
	reviews, err := h.c.ReviewService.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, reviews)
}

// SetReviewHidden 隐藏/恢复评价
// PUT /reviews/:id/hidden
func (h *Handler) SetReviewHidden(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}
	var req hideReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	review, err := h.c.ReviewService.SetHidden(uint(id), req.Hidden)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, review)
}

// DeleteReview 删除评价
// DELETE /reviews/:id
func (h *Handler) DeleteReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}
	if err := h.c.ReviewService.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "review deleted")
}
