package queue

import (
	"encoding/json"

	"github.com/cctvmart/internal/constants"

	"github.com/hibiken/asynq"
)

// OrderStatusEmailPayload 订单状态通知任务载荷
type OrderStatusEmailPayload struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Notes   string `json:"notes,omitempty"`
}

// RepairStatusEmailPayload 维修进度通知任务载荷
type RepairStatusEmailPayload struct {
	SerialNo   string `json:"serial_no"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	DeviceName string `json:"device_name"`
	Progress   string `json:"progress"`
}

// PasswordResetEmailPayload 找回密码验证码任务载荷
type PasswordResetEmailPayload struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	ExpireMinutes int    `json:"expire_minutes"`
}

// NewOrderStatusEmailTask 构造订单状态通知任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskOrderStatusEmail, raw), nil
}

// NewRepairStatusEmailTask 构造维修进度通知任务
func NewRepairStatusEmailTask(payload RepairStatusEmailPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskRepairStatusEmail, raw), nil
}

// NewPasswordResetEmailTask 构造找回密码验证码任务
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskPasswordResetEmail, raw), nil
}
