package cache

import (
	"context"
	"fmt"
	"time"
)

// UserAuthState 用户认证状态快照
// 登录与封禁操作维护该缓存，中间件据此拒绝被封禁或令牌已失效的请求
type UserAuthState struct {
	IsBlocked    bool   `json:"is_blocked"`
	TokenVersion int    `json:"token_version"`
	Role         string `json:"role"`
	IsSuper      bool   `json:"is_super"`
}

const authStateTTL = 10 * time.Minute

func authStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// GetUserAuthState 读取认证状态缓存
func GetUserAuthState(userID uint) (UserAuthState, bool) {
	var state UserAuthState
	ok := GetJSON(context.Background(), authStateKey(userID), &state)
	return state, ok
}

// SetUserAuthState 写入认证状态缓存
func SetUserAuthState(userID uint, state UserAuthState) {
	SetJSON(context.Background(), authStateKey(userID), state, authStateTTL)
}

// DelUserAuthState 删除认证状态缓存（封禁/解封后调用）
func DelUserAuthState(userID uint) {
	Del(context.Background(), authStateKey(userID))
}
