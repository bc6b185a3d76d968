package public

import (
	"github.com/cctvmart/internal/constants"

	"github.com/gin-gonic/gin"
)

// CurrentUserID 从上下文取当前登录用户 ID
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.CtxKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentUserRole 从上下文取当前登录用户角色
func CurrentUserRole(c *gin.Context) string {
	v, ok := c.Get(constants.CtxKeyUserRole)
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}

// CurrentTechnicianID 从上下文取当前登录技师 ID
func CurrentTechnicianID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.CtxKeyTechnicianID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
