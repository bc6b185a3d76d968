package admin

import (
	"strconv"

	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

type blockUserRequest struct {
	IsBlocked bool `json:"isBlocked"`
}

// ListAdmins 管理员列表
// GET /users/admins
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.c.UserService.ListAdmins()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, admins)
}

// ListCustomers 顾客列表
// GET /users/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.c.UserService.ListCustomers()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, customers)
}

// CreateAdmin 创建管理员账号
// POST /users/create-admin
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	user, err := h.c.UserService.CreateAdmin(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.c.Authz.AssignDefaultAdminRole(user.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, user)
}

// UpdateAdmin 更新管理员资料
// PUT /users/admins/:id
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req service.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	user, err := h.c.UserService.UpdateAdmin(uint(id), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, user)
}

// DeleteAdmin 删除管理员账号
// DELETE /users/admins/:id
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if err := h.c.UserService.DeleteAdmin(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "admin deleted")
}

// SetUserBlocked 封禁/解封账号
// PUT /users/block/:id
func (h *Handler) SetUserBlocked(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req blockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload")
		return
	}
	user, err := h.c.UserService.SetBlocked(uint(id), req.IsBlocked)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, user)
}
