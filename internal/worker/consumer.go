package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cctvmart/internal/constants"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/queue"
	"github.com/cctvmart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	Email *service.EmailService
}

// NewConsumer 创建消费者
func NewConsumer(email *service.EmailService) *Consumer {
	return &Consumer{Email: email}
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		return
	}
	mux.HandleFunc(constants.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(constants.TaskRepairStatusEmail, c.handleRepairStatusEmail)
	mux.HandleFunc(constants.TaskPasswordResetEmail, c.handlePasswordResetEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.OrderID == "" {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	err := c.Email.SendOrderStatusEmail(payload.Email, service.OrderStatusEmailInput{
		OrderID: payload.OrderID,
		Name:    payload.Name,
		Status:  payload.Status,
		Notes:   payload.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_status_email_skip_disabled", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", payload.OrderID,
			"receiver_email", payload.Email,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.Code == "" {
		logger.Debugw("worker_password_reset_email_skip_invalid_payload", "receiver_email", payload.Email)
		return nil
	}
	err := c.Email.SendPasswordResetEmail(payload.Email, service.PasswordResetEmailInput{
		Name:          payload.Name,
		Code:          payload.Code,
		ExpireMinutes: payload.ExpireMinutes,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_password_reset_email_skip_disabled", "receiver_email", payload.Email)
			return nil
		}
		logger.Warnw("worker_password_reset_email_send_failed",
			"receiver_email", payload.Email,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleRepairStatusEmail(_ context.Context, task *asynq.Task) error {
	var payload queue.RepairStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_repair_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" || payload.SerialNo == "" {
		logger.Debugw("worker_repair_status_email_skip_invalid_payload", "serial_no", payload.SerialNo)
		return nil
	}
	err := c.Email.SendRepairStatusEmail(payload.Email, service.RepairStatusEmailInput{
		SerialNo:   payload.SerialNo,
		Name:       payload.Name,
		DeviceName: payload.DeviceName,
		Progress:   payload.Progress,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_repair_status_email_skip_disabled", "serial_no", payload.SerialNo)
			return nil
		}
		logger.Warnw("worker_repair_status_email_send_failed",
			"serial_no", payload.SerialNo,
			"receiver_email", payload.Email,
			"error", err,
		)
		return err
	}
	return nil
}
