package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/provider"
	"github.com/agrimarket-logistics/internal/queue"
	"github.com/agrimarket-logistics/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPartnerDeliveryCompleted, c.handleDeliveryCompleted)
	mux.HandleFunc(queue.TaskPartnerReviewSubmitted, c.handleReviewSubmitted)
}

func (c *Consumer) handleDeliveryCompleted(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_delivery_completed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DeliveryCompletedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_delivery_completed_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.PartnerStatsService == nil {
		logger.Warnw("worker_delivery_completed_skip_service_nil", "delivery_no", payload.DeliveryNo)
		return nil
	}
	_, err := c.PartnerStatsService.RecordDeliveryOutcome(service.DeliveryOutcomeInput{
		DeliveryNo:          payload.DeliveryNo,
		PartnerID:           payload.PartnerID,
		DeliveryTimeMinutes: payload.DeliveryTimeMinutes,
		WasSuccessful:       payload.WasSuccessful,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeliveryAlreadyCounted):
			logger.Debugw("worker_delivery_completed_skip_counted", "delivery_no", payload.DeliveryNo)
			return nil
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_delivery_completed_skip_partner_not_found", "partner_id", payload.PartnerID)
			return nil
		case errors.Is(err, service.ErrDeliveryNoRequired), errors.Is(err, service.ErrDeliveryTimeInvalid):
			logger.Warnw("worker_delivery_completed_invalid_payload", "delivery_no", payload.DeliveryNo, "error", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		default:
			logger.Warnw("worker_delivery_completed_failed", "delivery_no", payload.DeliveryNo, "partner_id", payload.PartnerID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleReviewSubmitted(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_review_submitted_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReviewSubmittedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_review_submitted_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.PartnerStatsService == nil {
		logger.Warnw("worker_review_submitted_skip_service_nil", "partner_id", payload.PartnerID)
		return nil
	}
	input := service.ReviewInput{
		PartnerID: payload.PartnerID,
		UserID:    payload.UserID,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
	}
	if payload.CreatedAt > 0 {
		input.CreatedAt = time.Unix(payload.CreatedAt, 0)
	}
	_, err := c.PartnerStatsService.SubmitReview(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Debugw("worker_review_submitted_skip_partner_not_found", "partner_id", payload.PartnerID)
			return nil
		case errors.Is(err, service.ErrReviewRatingInvalid), errors.Is(err, service.ErrReviewUserRequired):
			logger.Warnw("worker_review_submitted_invalid_payload", "partner_id", payload.PartnerID, "error", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		default:
			logger.Warnw("worker_review_submitted_failed", "partner_id", payload.PartnerID, "error", err)
			return err
		}
	}
	return nil
}
