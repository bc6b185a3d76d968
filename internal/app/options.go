package app

import (
	"os"
	"strings"
	"time"

	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：all 在同一进程内跑 API 与邮件队列消费者，
// api / worker 用于把两者拆开独立部署
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// ValidMode 判断启动模式是否可识别
func ValidMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeAll, ModeAPI, ModeWorker:
		return true
	}
	return false
}

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// normalizeOptions 补齐默认参数；不可识别的模式回落到 ModeAll
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	if !ValidMode(opts.Mode) {
		if opts.Mode != "" {
			opts.Logger.Warnw("unknown_run_mode", "mode", opts.Mode)
		}
		opts.Mode = ModeAll
	}
	return opts
}
