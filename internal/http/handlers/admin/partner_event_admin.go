package admin

import (
	"time"

	handlershared "github.com/agrimarket-logistics/internal/http/handlers/shared"
	"github.com/agrimarket-logistics/internal/http/response"
	"github.com/agrimarket-logistics/internal/service"

	"github.com/gin-gonic/gin"
)

// DeliveryOutcomeRequest 配送结果回传请求
type DeliveryOutcomeRequest struct {
	DeliveryNo          string  `json:"delivery_no" binding:"required"`
	DeliveryTimeMinutes float64 `json:"delivery_time_minutes"`
	WasSuccessful       bool    `json:"was_successful"`
}

// ReviewRequest 评价提交请求
type ReviewRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// RecordPartnerDelivery 回传配送结果，队列可用时异步计入统计
func (h *Handler) RecordPartnerDelivery(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	var req DeliveryOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	// 入队前确认配送商存在
	if _, err := h.PartnerService.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}
	queued, err := h.PartnerStatsService.SubmitDeliveryOutcome(service.DeliveryOutcomeInput{
		DeliveryNo:          req.DeliveryNo,
		PartnerID:           id,
		DeliveryTimeMinutes: req.DeliveryTimeMinutes,
		WasSuccessful:       req.WasSuccessful,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_partner_delivery_submitted",
		"operator", getOperator(c),
		"partner_id", id,
		"delivery_no", req.DeliveryNo,
		"queued", queued,
	)
	response.Success(c, gin.H{
		"partner_id":  id,
		"delivery_no": req.DeliveryNo,
		"queued":      queued,
	})
}

// SubmitPartnerReview 提交配送商评价
func (h *Handler) SubmitPartnerReview(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	if _, err := h.PartnerService.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}
	queued, err := h.PartnerStatsService.SubmitReviewAsync(service.ReviewInput{
		PartnerID: id,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"partner_id": id,
		"queued":     queued,
	})
}

// GetPartnerDeliveries 已计入统计的配送记录
func (h *Handler) GetPartnerDeliveries(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ReadPagination(c)
	records, total, err := h.PartnerStatsService.ListDeliveryRecords(id, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "delivery record fetch failed", err)
		return
	}
	response.SuccessWithPage(c, records, handlershared.BuildPagination(page, pageSize, total))
}
