package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/agrimarket-logistics/internal/models"

	"gorm.io/gorm"
)

// partnerProfileColumns 资料更新时允许写入的列，不包含统计与评分
var partnerProfileColumns = []string{
	"name",
	"company_type",
	"services",
	"coverage_cities",
	"coverage_states",
	"coverage_radius_km",
	"vehicles",
	"warehouse_links",
	"updated_at",
}

// DeliveryPartnerRepository 配送商数据访问接口
type DeliveryPartnerRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) DeliveryPartnerRepository

	List(filter PartnerListFilter) ([]models.DeliveryPartner, int64, error)
	ListSearchable() ([]models.DeliveryPartner, error)
	GetByID(id uint) (*models.DeliveryPartner, error)
	Create(partner *models.DeliveryPartner) error
	UpdateProfile(partner *models.DeliveryPartner) error
	UpdateFlags(id uint, fields map[string]interface{}) (int64, error)
	UpdateStatsWithVersion(id uint, version int64, stats models.PerformanceStats) (int64, error)
	UpdateRatingWithVersion(id uint, version int64, rating models.PartnerRating) (int64, error)
	Delete(id uint) error
}

// GormDeliveryPartnerRepository GORM 实现
type GormDeliveryPartnerRepository struct {
	db *gorm.DB
}

// NewDeliveryPartnerRepository 创建配送商仓库
func NewDeliveryPartnerRepository(db *gorm.DB) *GormDeliveryPartnerRepository {
	return &GormDeliveryPartnerRepository{db: db}
}

// Transaction 执行事务
func (r *GormDeliveryPartnerRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// WithTx 绑定事务
func (r *GormDeliveryPartnerRepository) WithTx(tx *gorm.DB) DeliveryPartnerRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryPartnerRepository{db: tx}
}

// List 配送商列表
func (r *GormDeliveryPartnerRepository) List(filter PartnerListFilter) ([]models.DeliveryPartner, int64, error) {
	query := r.db.Model(&models.DeliveryPartner{})
	if filter.CompanyType != "" {
		query = query.Where("company_type = ?", filter.CompanyType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name"}, []string{"coverage_cities", "coverage_states"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var partners []models.DeliveryPartner
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id ASC").Find(&partners).Error; err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}

// ListSearchable 获取启用且已认证的配送商，保持插入顺序
func (r *GormDeliveryPartnerRepository) ListSearchable() ([]models.DeliveryPartner, error) {
	var partners []models.DeliveryPartner
	if err := r.db.Where("is_active = ? AND is_verified = ?", true, true).
		Order("id ASC").
		Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// GetByID 根据 ID 获取配送商
func (r *GormDeliveryPartnerRepository) GetByID(id uint) (*models.DeliveryPartner, error) {
	if id == 0 {
		return nil, nil
	}
	var partner models.DeliveryPartner
	if err := r.db.First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

// Create 创建配送商
func (r *GormDeliveryPartnerRepository) Create(partner *models.DeliveryPartner) error {
	return r.db.Create(partner).Error
}

// UpdateProfile 更新配送商资料，不覆盖统计与评分
func (r *GormDeliveryPartnerRepository) UpdateProfile(partner *models.DeliveryPartner) error {
	if partner == nil || partner.ID == 0 {
		return errors.New("invalid partner")
	}
	partner.UpdatedAt = time.Now()
	return r.db.Model(&models.DeliveryPartner{ID: partner.ID}).
		Select(partnerProfileColumns).
		Updates(partner).Error
}

// UpdateFlags 更新认证/启用等状态列
func (r *GormDeliveryPartnerRepository) UpdateFlags(id uint, fields map[string]interface{}) (int64, error) {
	if id == 0 || len(fields) == 0 {
		return 0, errors.New("invalid partner flag update")
	}
	fields["updated_at"] = time.Now()
	result := r.db.Model(&models.DeliveryPartner{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateStatsWithVersion 按版本号写回履约统计，版本不一致时影响行数为 0
func (r *GormDeliveryPartnerRepository) UpdateStatsWithVersion(id uint, version int64, stats models.PerformanceStats) (int64, error) {
	result := r.db.Model(&models.DeliveryPartner{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"perf_total_deliveries":              stats.TotalDeliveries,
			"perf_successful_deliveries":         stats.SuccessfulDeliveries,
			"perf_average_delivery_time_minutes": stats.AverageDeliveryTimeMinutes,
			"perf_on_time_delivery_rate_percent": stats.OnTimeDeliveryRatePercent,
			"version":                            gorm.Expr("version + 1"),
			"updated_at":                         time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateRatingWithVersion 按版本号写回评分汇总
func (r *GormDeliveryPartnerRepository) UpdateRatingWithVersion(id uint, version int64, rating models.PartnerRating) (int64, error) {
	result := r.db.Model(&models.DeliveryPartner{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"rating_average":       rating.Average,
			"rating_total_ratings": rating.TotalRatings,
			"rating_reviews":       rating.Reviews,
			"version":              gorm.Expr("version + 1"),
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除配送商（软删除）
func (r *GormDeliveryPartnerRepository) Delete(id uint) error {
	return r.db.Delete(&models.DeliveryPartner{}, id).Error
}
