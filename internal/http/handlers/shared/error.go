package shared

import (
	"errors"

	"github.com/agrimarket-logistics/internal/http/response"
	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 通用错误提示
const (
	MsgBadRequest   = "bad request"
	MsgNotFound     = "resource not found"
	MsgUnauthorized = "unauthorized"
	MsgForbidden    = "forbidden"
	MsgInternal     = "internal server error"
)

// MappedError 业务错误到接口错误码的映射
type MappedError struct {
	Target error
	Code   int
}

// LogisticsErrorRules 配送业务错误映射，提示语直接使用错误文本
var LogisticsErrorRules = []MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound},
	{Target: service.ErrZoneNameRequired, Code: response.CodeBadRequest},
	{Target: service.ErrZoneRadiusInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrZoneFeeInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrZoneTierInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrCoordinateInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrPartnerNameRequired, Code: response.CodeBadRequest},
	{Target: service.ErrCompanyTypeInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrServiceTypeInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrVehicleTypeInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrOfferingInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrVehicleInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrWarehouseLinkInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrDistanceInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrWeightInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrVolumeInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrReviewRatingInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrReviewUserRequired, Code: response.CodeBadRequest},
	{Target: service.ErrDeliveryNoRequired, Code: response.CodeBadRequest},
	{Target: service.ErrDeliveryTimeInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrZoneNameExists, Code: response.CodeConflict},
	{Target: service.ErrDeliveryAlreadyCounted, Code: response.CodeConflict},
	{Target: service.ErrStatsConflict, Code: response.CodeConflict},
	{Target: service.ErrServiceUnavailable, Code: response.CodeUnprocessable},
}

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondMappedError 按映射表返回业务错误，未命中时记录原始错误并返回 fallback。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Target.Error(), nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackMsg, err)
}

// RespondServiceError 使用配送业务错误映射
func RespondServiceError(c *gin.Context, err error) {
	RespondMappedError(c, err, LogisticsErrorRules, response.CodeInternal, MsgInternal)
}
