package admin

import (
	"strconv"

	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRepairs 全部维修工单
// GET /repairs
func (h *Handler) ListRepairs(c *gin.Context) {
	repairs, err := h.c.RepairService.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, repairs)
}

// CreateRepair 建立维修工单
// POST /repairs
func (h *Handler) CreateRepair(c *gin.Context) {
	var req service.CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid repair payload")
		return
	}
	repair, err := h.c.RepairService.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, repair)
}

// UpdateRepair 更新维修工单
// PUT /repairs/:id
func (h *Handler) UpdateRepair(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid repair id")
		return
	}
	var req service.UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid repair payload")
		return
	}
	repair, err := h.c.RepairService.Update(uint(id), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, repair)
}

// DeleteRepair 删除维修工单
// DELETE /repairs/:id
func (h *Handler) DeleteRepair(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid repair id")
		return
	}
	if err := h.c.RepairService.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "repair deleted")
}
