package constants

// 用户角色
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// 订单状态
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// 维修进度（按流程顺序）
const (
	RepairProgressReceived   = "Received"
	RepairProgressDiagnosing = "Diagnosing"
	RepairProgressRepairing  = "Repairing"
	RepairProgressReady      = "Ready for Pickup"
	RepairProgressCompleted  = "Completed"
)

// RepairProgressOrder 维修进度的完整流程顺序
var RepairProgressOrder = []string{
	RepairProgressReceived,
	RepairProgressDiagnosing,
	RepairProgressRepairing,
	RepairProgressReady,
	RepairProgressCompleted,
}

// 队列名称
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskOrderStatusEmail   = "order:status_email"
	TaskRepairStatusEmail  = "repair:status_email"
	TaskPasswordResetEmail = "user:password_reset_email"
)

// 验证码场景
const (
	CaptchaSceneAdminLogin = "admin_login"
)

// gin 上下文键
const (
	CtxKeyUserID       = "uid"
	CtxKeyUserEmail    = "user_email"
	CtxKeyUserRole     = "user_role"
	CtxKeyTechnicianID = "technician_id"
	CtxKeyRequestID    = "request_id"
)
