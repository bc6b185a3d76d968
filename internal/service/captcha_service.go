package service

import (
	"strings"
	"sync"

	"github.com/cctvmart/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaChallenge 图片验证码挑战
type CaptchaChallenge struct {
	CaptchaID   string `json:"captchaId"`
	ImageBase64 string `json:"image"`
}

// CaptchaService 图片验证码服务，用于管理员登录防爆破
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled 验证码是否启用
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		maxStore := s.cfg.MaxStore
		if maxStore <= 0 {
			maxStore = base64Captcha.GCLimitNumber
		}
		s.store = base64Captcha.NewMemoryStore(maxStore, base64Captcha.Expiration)
	}
	return s.store
}

// GenerateChallenge 生成图片验证码
func (s *CaptchaService) GenerateChallenge() (*CaptchaChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaRequired
	}
	driver := base64Captcha.NewDriverDigit(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.Length,
		0.7,
		s.cfg.NoiseCount,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{CaptchaID: id, ImageBase64: b64}, nil
}

// Verify 校验验证码；未启用时直接放行
func (s *CaptchaService) Verify(captchaID, code string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	code = strings.TrimSpace(code)
	if captchaID == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureStore().Verify(captchaID, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
