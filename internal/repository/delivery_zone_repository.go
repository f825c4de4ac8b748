package repository

import (
	"errors"
	"strings"

	"github.com/agrimarket-logistics/internal/models"

	"gorm.io/gorm"
)

// DeliveryZoneRepository 配送区域数据访问接口
type DeliveryZoneRepository interface {
	List(filter ZoneListFilter) ([]models.DeliveryZone, int64, error)
	ListActive() ([]models.DeliveryZone, error)
	GetByID(id uint) (*models.DeliveryZone, error)
	Create(zone *models.DeliveryZone) error
	Update(zone *models.DeliveryZone) error
	Delete(id uint) error
	CountByName(name string, excludeID *uint) (int64, error)
}

// GormDeliveryZoneRepository GORM 实现
type GormDeliveryZoneRepository struct {
	db *gorm.DB
}

// NewDeliveryZoneRepository 创建配送区域仓库
func NewDeliveryZoneRepository(db *gorm.DB) *GormDeliveryZoneRepository {
	return &GormDeliveryZoneRepository{db: db}
}

// List 区域列表
func (r *GormDeliveryZoneRepository) List(filter ZoneListFilter) ([]models.DeliveryZone, int64, error) {
	query := r.db.Model(&models.DeliveryZone{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name"}, nil)
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var zones []models.DeliveryZone
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id ASC").Find(&zones).Error; err != nil {
		return nil, 0, err
	}
	return zones, total, nil
}

// ListActive 获取全部启用区域，按创建顺序
func (r *GormDeliveryZoneRepository) ListActive() ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// GetByID 根据 ID 获取区域
func (r *GormDeliveryZoneRepository) GetByID(id uint) (*models.DeliveryZone, error) {
	if id == 0 {
		return nil, nil
	}
	var zone models.DeliveryZone
	if err := r.db.First(&zone, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &zone, nil
}

// Create 创建区域
func (r *GormDeliveryZoneRepository) Create(zone *models.DeliveryZone) error {
	return r.db.Create(zone).Error
}

// Update 更新区域
func (r *GormDeliveryZoneRepository) Update(zone *models.DeliveryZone) error {
	return r.db.Save(zone).Error
}

// Delete 删除区域（软删除）
func (r *GormDeliveryZoneRepository) Delete(id uint) error {
	return r.db.Delete(&models.DeliveryZone{}, id).Error
}

// CountByName 统计同名区域数量
func (r *GormDeliveryZoneRepository) CountByName(name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.DeliveryZone{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
