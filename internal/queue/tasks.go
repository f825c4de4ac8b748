package queue

import (
	"encoding/json"

	"github.com/agrimarket-logistics/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPartnerDeliveryCompleted 配送完成，更新配送商履约统计
	TaskPartnerDeliveryCompleted = constants.TaskPartnerDeliveryCompleted
	// TaskPartnerReviewSubmitted 用户提交评价，更新配送商评分
	TaskPartnerReviewSubmitted = constants.TaskPartnerReviewSubmitted
)

// DeliveryCompletedPayload 配送完成任务载荷
type DeliveryCompletedPayload struct {
	DeliveryNo          string  `json:"delivery_no"`
	PartnerID           uint    `json:"partner_id"`
	DeliveryTimeMinutes float64 `json:"delivery_time_minutes"`
	WasSuccessful       bool    `json:"was_successful"`
}

// ReviewSubmittedPayload 评价提交任务载荷
type ReviewSubmittedPayload struct {
	PartnerID uint   `json:"partner_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"` // Unix 秒
}

// NewDeliveryCompletedTask 创建配送完成任务
func NewDeliveryCompletedTask(payload DeliveryCompletedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPartnerDeliveryCompleted, body), nil
}

// NewReviewSubmittedTask 创建评价提交任务
func NewReviewSubmittedTask(payload ReviewSubmittedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPartnerReviewSubmitted, body), nil
}
