package queue

import (
	"fmt"

	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/logger"

	"github.com/hibiken/asynq"
)

// BuildServerConfig 生成队列服务端配置
func BuildServerConfig(cfg config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	queues := cfg.Queues
	if len(queues) == 0 {
		queues = map[string]int{constants.QueueDefault: 1}
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

// Client 异步任务队列客户端；队列未启用时入队调用为无操作
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg config.QueueConfig) *Client {
	if !cfg.Enabled {
		logger.Infow("queue_disabled")
		return &Client{}
	}
	inner := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Client{inner: inner}
}

// Enabled 队列是否可用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭队列连接
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

func (c *Client) enqueue(task *asynq.Task) {
	if !c.Enabled() {
		return
	}
	info, err := c.inner.Enqueue(task, asynq.Queue(constants.QueueDefault), asynq.MaxRetry(3))
	if err != nil {
		logger.Warnw("task_enqueue_failed", "type", task.Type(), "error", err)
		return
	}
	logger.Debugw("task_enqueued", "type", task.Type(), "id", info.ID)
}

// EnqueueOrderStatusEmail 入队订单状态通知（best effort）
func (c *Client) EnqueueOrderStatusEmail(payload OrderStatusEmailPayload) {
	task, err := NewOrderStatusEmailTask(payload)
	if err != nil {
		logger.Warnw("task_build_failed", "type", constants.TaskOrderStatusEmail, "error", err)
		return
	}
	c.enqueue(task)
}

// EnqueueRepairStatusEmail 入队维修进度通知（best effort）
func (c *Client) EnqueueRepairStatusEmail(payload RepairStatusEmailPayload) {
	task, err := NewRepairStatusEmailTask(payload)
	if err != nil {
		logger.Warnw("task_build_failed", "type", constants.TaskRepairStatusEmail, "error", err)
		return
	}
	c.enqueue(task)
}

// EnqueuePasswordResetEmail 入队找回密码验证码邮件（best effort）
func (c *Client) EnqueuePasswordResetEmail(payload PasswordResetEmailPayload) {
	task, err := NewPasswordResetEmailTask(payload)
	if err != nil {
		logger.Warnw("task_build_failed", "type", constants.TaskPasswordResetEmail, "error", err)
		return
	}
	c.enqueue(task)
}
