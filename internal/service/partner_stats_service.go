package service

import (
	"errors"
	"strings"
	"time"

	"github.com/agrimarket-logistics/internal/constants"
	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/queue"
	"github.com/agrimarket-logistics/internal/repository"

	"gorm.io/gorm"
)

const defaultStatsMaxRetries = 3

var errVersionConflict = errors.New("partner version conflict")

// PartnerStatsService 配送商履约统计与评分服务
type PartnerStatsService struct {
	partnerRepo repository.DeliveryPartnerRepository
	recordRepo  repository.PartnerDeliveryRecordRepository
	queueClient *queue.Client
	maxRetries  int
}

// NewPartnerStatsService 创建统计服务
func NewPartnerStatsService(
	partnerRepo repository.DeliveryPartnerRepository,
	recordRepo repository.PartnerDeliveryRecordRepository,
	queueClient *queue.Client,
	maxRetries int,
) *PartnerStatsService {
	if maxRetries <= 0 {
		maxRetries = defaultStatsMaxRetries
	}
	return &PartnerStatsService{
		partnerRepo: partnerRepo,
		recordRepo:  recordRepo,
		queueClient: queueClient,
		maxRetries:  maxRetries,
	}
}

// DeliveryOutcomeInput 配送结果
type DeliveryOutcomeInput struct {
	DeliveryNo          string
	PartnerID           uint
	DeliveryTimeMinutes float64
	WasSuccessful       bool
}

// ReviewInput 评价输入
type ReviewInput struct {
	PartnerID uint
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// RecordDeliveryOutcome 将配送结果计入统计
// 同一配送单号只计一次，重复提交返回 ErrDeliveryAlreadyCounted
func (s *PartnerStatsService) RecordDeliveryOutcome(input DeliveryOutcomeInput) (*models.PerformanceStats, error) {
	input, err := normalizeDeliveryOutcome(input)
	if err != nil {
		return nil, err
	}

	var result models.PerformanceStats
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		err = s.partnerRepo.Transaction(func(tx *gorm.DB) error {
			partnerRepo := s.partnerRepo.WithTx(tx)
			recordRepo := s.recordRepo.WithTx(tx)

			existing, err := recordRepo.GetByDeliveryNo(input.DeliveryNo)
			if err != nil {
				return err
			}
			if existing != nil {
				return ErrDeliveryAlreadyCounted
			}
			partner, err := partnerRepo.GetByID(input.PartnerID)
			if err != nil {
				return err
			}
			if partner == nil {
				return ErrNotFound
			}

			next := RecordDelivery(partner.Performance, input.DeliveryTimeMinutes, input.WasSuccessful)
			affected, err := partnerRepo.UpdateStatsWithVersion(partner.ID, partner.Version, next)
			if err != nil {
				return err
			}
			if affected == 0 {
				return errVersionConflict
			}
			record := models.PartnerDeliveryRecord{
				DeliveryNo:          input.DeliveryNo,
				PartnerID:           partner.ID,
				DeliveryTimeMinutes: input.DeliveryTimeMinutes,
				WasSuccessful:       input.WasSuccessful,
			}
			if err := recordRepo.Create(&record); err != nil {
				return err
			}
			result = next
			return nil
		})
		if errors.Is(err, errVersionConflict) {
			logger.Debugw("partner_stats_version_conflict", "partner_id", input.PartnerID, "attempt", attempt)
			continue
		}
		if err != nil {
			// 并发写入同一单号时唯一索引拦截，按已计入处理
			if !errors.Is(err, ErrDeliveryAlreadyCounted) && !errors.Is(err, ErrNotFound) {
				if existing, getErr := s.recordRepo.GetByDeliveryNo(input.DeliveryNo); getErr == nil && existing != nil {
					return nil, ErrDeliveryAlreadyCounted
				}
			}
			return nil, err
		}
		logger.Infow("partner_delivery_recorded",
			"partner_id", input.PartnerID,
			"delivery_no", input.DeliveryNo,
			"was_successful", input.WasSuccessful,
			"total_deliveries", result.TotalDeliveries,
		)
		return &result, nil
	}
	logger.Warnw("partner_stats_conflict_exhausted", "partner_id", input.PartnerID, "delivery_no", input.DeliveryNo)
	return nil, ErrStatsConflict
}

// SubmitReview 追加评价并更新平均分
func (s *PartnerStatsService) SubmitReview(input ReviewInput) (*models.PartnerRating, error) {
	review, err := normalizeReview(input)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		partner, err := s.partnerRepo.GetByID(input.PartnerID)
		if err != nil {
			return nil, err
		}
		if partner == nil {
			return nil, ErrNotFound
		}
		next := ApplyReview(partner.Rating, review)
		affected, err := s.partnerRepo.UpdateRatingWithVersion(partner.ID, partner.Version, next)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			logger.Debugw("partner_rating_version_conflict", "partner_id", input.PartnerID, "attempt", attempt)
			continue
		}
		logger.Infow("partner_review_recorded",
			"partner_id", partner.ID,
			"rating", review.Rating,
			"average", next.Average,
			"total_ratings", next.TotalRatings,
		)
		return &next, nil
	}
	return nil, ErrStatsConflict
}

// SubmitDeliveryOutcome 异步计入配送结果，队列未启用时同步处理
// 返回值 queued 表示已投递到队列
func (s *PartnerStatsService) SubmitDeliveryOutcome(input DeliveryOutcomeInput) (bool, error) {
	input, err := normalizeDeliveryOutcome(input)
	if err != nil {
		return false, err
	}
	if !s.queueClient.Enabled() {
		_, err := s.RecordDeliveryOutcome(input)
		if errors.Is(err, ErrDeliveryAlreadyCounted) {
			return false, nil
		}
		return false, err
	}
	payload := queue.DeliveryCompletedPayload{
		DeliveryNo:          input.DeliveryNo,
		PartnerID:           input.PartnerID,
		DeliveryTimeMinutes: input.DeliveryTimeMinutes,
		WasSuccessful:       input.WasSuccessful,
	}
	if err := s.queueClient.EnqueueDeliveryCompleted(payload); err != nil {
		logger.Warnw("partner_delivery_enqueue_failed", "delivery_no", input.DeliveryNo, "error", err)
		return false, err
	}
	return true, nil
}

// SubmitReviewAsync 异步追加评价，队列未启用时同步处理
func (s *PartnerStatsService) SubmitReviewAsync(input ReviewInput) (bool, error) {
	review, err := normalizeReview(input)
	if err != nil {
		return false, err
	}
	if !s.queueClient.Enabled() {
		input.CreatedAt = review.CreatedAt
		_, err := s.SubmitReview(input)
		return false, err
	}
	payload := queue.ReviewSubmittedPayload{
		PartnerID: input.PartnerID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Unix(),
	}
	if err := s.queueClient.EnqueueReviewSubmitted(payload); err != nil {
		logger.Warnw("partner_review_enqueue_failed", "partner_id", input.PartnerID, "error", err)
		return false, err
	}
	return true, nil
}

// ListDeliveryRecords 配送商已计入的配送记录
func (s *PartnerStatsService) ListDeliveryRecords(partnerID uint, page, pageSize int) ([]models.PartnerDeliveryRecord, int64, error) {
	return s.recordRepo.ListByPartner(partnerID, page, pageSize)
}

func normalizeDeliveryOutcome(input DeliveryOutcomeInput) (DeliveryOutcomeInput, error) {
	input.DeliveryNo = strings.TrimSpace(input.DeliveryNo)
	if input.DeliveryNo == "" {
		return input, ErrDeliveryNoRequired
	}
	if input.PartnerID == 0 {
		return input, ErrNotFound
	}
	if input.DeliveryTimeMinutes < 0 {
		return input, ErrDeliveryTimeInvalid
	}
	return input, nil
}

func normalizeReview(input ReviewInput) (models.Review, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return models.Review{}, ErrReviewUserRequired
	}
	if input.Rating < constants.ReviewMinRating || input.Rating > constants.ReviewMaxRating {
		return models.Review{}, ErrReviewRatingInvalid
	}
	if input.PartnerID == 0 {
		return models.Review{}, ErrNotFound
	}
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return models.Review{
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: createdAt,
	}, nil
}
