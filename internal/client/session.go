package client

const (
	stateKeyToken = "token"
	stateKeyCart  = "cart"
)

// Session 登录态快照，凭证存在即视为已登录
// 登录态在每次调用时重新读取，不跨调用缓存
type Session struct {
	store StateStore
}

// NewSession 创建会话
func NewSession(store StateStore) *Session {
	return &Session{store: store}
}

// Token 返回当前凭证，未登录时为空串
func (s *Session) Token() string {
	token, _ := s.store.Get(stateKeyToken)
	return token
}

// SetToken 保存登录凭证
func (s *Session) SetToken(token string) error {
	return s.store.Set(stateKeyToken, token)
}

// Clear 清除登录凭证
func (s *Session) Clear() error {
	return s.store.Delete(stateKeyToken)
}

// IsAuthenticated 是否已登录
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}
