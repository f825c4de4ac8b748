package repository

import (
	"errors"
	"strings"

	"github.com/agrimarket-logistics/internal/models"

	"gorm.io/gorm"
)

// PartnerDeliveryRecordRepository 配送记录数据访问接口
type PartnerDeliveryRecordRepository interface {
	WithTx(tx *gorm.DB) PartnerDeliveryRecordRepository
	Create(record *models.PartnerDeliveryRecord) error
	GetByDeliveryNo(deliveryNo string) (*models.PartnerDeliveryRecord, error)
	ListByPartner(partnerID uint, page, pageSize int) ([]models.PartnerDeliveryRecord, int64, error)
}

// GormPartnerDeliveryRecordRepository GORM 实现
type GormPartnerDeliveryRecordRepository struct {
	db *gorm.DB
}

// NewPartnerDeliveryRecordRepository 创建配送记录仓库
func NewPartnerDeliveryRecordRepository(db *gorm.DB) *GormPartnerDeliveryRecordRepository {
	return &GormPartnerDeliveryRecordRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPartnerDeliveryRecordRepository) WithTx(tx *gorm.DB) PartnerDeliveryRecordRepository {
	if tx == nil {
		return r
	}
	return &GormPartnerDeliveryRecordRepository{db: tx}
}

// Create 写入配送记录
func (r *GormPartnerDeliveryRecordRepository) Create(record *models.PartnerDeliveryRecord) error {
	return r.db.Create(record).Error
}

// GetByDeliveryNo 根据配送单号获取记录
func (r *GormPartnerDeliveryRecordRepository) GetByDeliveryNo(deliveryNo string) (*models.PartnerDeliveryRecord, error) {
	deliveryNo = strings.TrimSpace(deliveryNo)
	if deliveryNo == "" {
		return nil, nil
	}
	var record models.PartnerDeliveryRecord
	if err := r.db.Where("delivery_no = ?", deliveryNo).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListByPartner 分页获取配送商的配送记录，最新在前
func (r *GormPartnerDeliveryRecordRepository) ListByPartner(partnerID uint, page, pageSize int) ([]models.PartnerDeliveryRecord, int64, error) {
	query := r.db.Model(&models.PartnerDeliveryRecord{}).Where("partner_id = ?", partnerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.PartnerDeliveryRecord
	query = applyPagination(query, page, pageSize)
	if err := query.Order("id DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
