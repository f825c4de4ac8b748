package constants

// 队列与任务常量
const (
	QueueDefault                 = "default"
	QueueStats                   = "stats"
	TaskPartnerDeliveryCompleted = "partner:delivery_completed"
	TaskPartnerReviewSubmitted   = "partner:review_submitted"
)

// 常见特殊条件标签
const (
	ConditionPeakHours = "peak_hours"
	ConditionRainyDay  = "rainy_day"
	ConditionHoliday   = "holiday"
)

// 区域参数范围
const (
	ZoneMinRadiusKm = 1.0
	ZoneMaxRadiusKm = 50.0
)

// 评分范围
const (
	ReviewMinRating = 1
	ReviewMaxRating = 5
)

// 分页默认值
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// 请求上下文键
const (
	CtxKeyRequestID = "request_id"
	CtxKeyAdminID   = "admin_id"
	CtxKeyAdminRole = "admin_role"
)
