package public

import (
	"errors"
	"net/http"

	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

var serviceErrorStatus = map[error]int{
	service.ErrEmailExists:         http.StatusConflict,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrUserBlocked:         http.StatusForbidden,
	service.ErrUserNotFound:        http.StatusNotFound,
	service.ErrWeakPassword:        http.StatusBadRequest,
	service.ErrSuperAdminProtected: http.StatusForbidden,
	service.ErrProductNotFound:     http.StatusNotFound,
	service.ErrProductExists:       http.StatusConflict,
	service.ErrProductUnavailable:  http.StatusConflict,
	service.ErrInvalidQuantity:     http.StatusBadRequest,
	service.ErrCartEmpty:           http.StatusBadRequest,
	service.ErrOrderNotFound:       http.StatusNotFound,
	service.ErrOrderEmpty:          http.StatusBadRequest,
	service.ErrInvalidOrderStatus:  http.StatusBadRequest,
	service.ErrInvalidRating:       http.StatusBadRequest,
	service.ErrReviewNotFound:      http.StatusNotFound,
	service.ErrRepairNotFound:      http.StatusNotFound,
	service.ErrSerialNoExists:      http.StatusConflict,
	service.ErrInvalidProgress:     http.StatusBadRequest,
	service.ErrEmployeeNotFound:    http.StatusNotFound,
	service.ErrSupplierNotFound:    http.StatusNotFound,
	service.ErrTechnicianNotFound:  http.StatusNotFound,
	service.ErrTechnicianInactive:  http.StatusForbidden,
	service.ErrCaptchaRequired:     http.StatusBadRequest,
	service.ErrCaptchaInvalid:      http.StatusBadRequest,
	service.ErrOTPInvalid:          http.StatusBadRequest,
	service.ErrOTPExpired:          http.StatusBadRequest,
	service.ErrOTPAttemptsExceeded: http.StatusTooManyRequests,
	service.ErrOTPTooFrequent:      http.StatusTooManyRequests,
}

// RespondServiceError 将业务错误映射为 HTTP 响应
func RespondServiceError(c *gin.Context, err error) {
	for sentinel, status := range serviceErrorStatus {
		if errors.Is(err, sentinel) {
			response.Error(c, status, sentinel.Error())
			return
		}
	}
	logger.Errorw("unhandled_service_error", "path", c.FullPath(), "error", err)
	response.InternalError(c, "internal server error")
}
