package public

import (
	"strconv"

	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

type technicianLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GetRepairBySerial 顾客按序列号自助查询维修进度
// GET /repairs/serial/:serialNo
func (h *Handler) GetRepairBySerial(c *gin.Context) {
	repair, err := h.c.RepairService.GetBySerialNo(c.Param("serialNo"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, repair)
}

// TechnicianLogin 技师门户登录
// POST /technicians/login
func (h *Handler) TechnicianLogin(c *gin.Context) {
	var req technicianLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid login payload")
		return
	}
	token, technician, err := h.c.RepairService.TechnicianLogin(req.Email, req.Password)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, gin.H{
		"token":      token,
		"technician": technician,
	})
}

// ListAssignedRepairs 技师名下的工单
// GET /technicians/repairs
func (h *Handler) ListAssignedRepairs(c *gin.Context) {
	technicianID, ok := CurrentTechnicianID(c)
	if !ok {
		response.Unauthorized(c, "technician login required")
		return
	}
	repairs, err := h.c.RepairService.ListByTechnician(technicianID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, repairs)
}

// UpdateAssignedRepair 技师更新名下工单进度
// PUT /technicians/repairs/:id
func (h *Handler) UpdateAssignedRepair(c *gin.Context) {
	technicianID, ok := CurrentTechnicianID(c)
	if !ok {
		response.Unauthorized(c, "technician login required")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid repair id")
		return
	}

	repairs, err := h.c.RepairService.ListByTechnician(technicianID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	assigned := false
	for _, r := range repairs {
		if r.ID == uint(id) {
			assigned = true
			break
		}
	}
	if !assigned {
		response.Forbidden(c, "repair is not assigned to you")
		return
	}

	var req service.UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid repair payload")
		return
	}
	req.TechnicianID = nil // 技师不能转派工单
	repair, err := h.c.RepairService.Update(uint(id), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	response.OK(c, repair)
}
