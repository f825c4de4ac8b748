package service

import (
	"context"
	"strings"
	"time"

	"github.com/agrimarket-logistics/internal/cache"
	"github.com/agrimarket-logistics/internal/config"
	"github.com/agrimarket-logistics/internal/constants"
	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/repository"
)

// ZoneService 配送区域业务服务
type ZoneService struct {
	repo       repository.DeliveryZoneRepository
	membership models.ZoneMembershipMode
	cacheTTL   time.Duration
}

// NewZoneService 创建配送区域服务
func NewZoneService(repo repository.DeliveryZoneRepository, cfg config.LogisticsConfig) *ZoneService {
	ttl := time.Duration(cfg.ZoneCacheTTLSeconds) * time.Second
	return &ZoneService{
		repo:       repo,
		membership: models.ParseZoneMembershipMode(cfg.ZoneMembership),
		cacheTTL:   ttl,
	}
}

// ZoneInput 创建/更新区域输入
type ZoneInput struct {
	Name              string
	BoundaryPoints    []models.Coordinate
	Center            models.Coordinate
	RadiusKm          float64
	BaseFee           models.Money
	DistanceTiers     []models.DistanceTier
	SpecialConditions map[string]models.SpecialCondition
	IsActive          *bool
}

// MembershipMode 当前区域归属判定方式
func (s *ZoneService) MembershipMode() models.ZoneMembershipMode {
	return s.membership
}

// List 区域列表
func (s *ZoneService) List(filter repository.ZoneListFilter) ([]models.DeliveryZone, int64, error) {
	return s.repo.List(filter)
}

// Get 获取区域
func (s *ZoneService) Get(id uint) (*models.DeliveryZone, error) {
	zone, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, ErrNotFound
	}
	return zone, nil
}

// Create 创建区域
func (s *ZoneService) Create(ctx context.Context, input ZoneInput) (*models.DeliveryZone, error) {
	name, err := validateZoneInput(input)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrZoneNameExists
	}

	zone := models.DeliveryZone{IsActive: true}
	applyZoneInput(&zone, name, input)
	if err := s.repo.Create(&zone); err != nil {
		return nil, err
	}
	s.invalidateActiveZones(ctx)
	logger.Infow("zone_created", "zone_id", zone.ID, "name", zone.Name, "radius_km", zone.RadiusKm)
	return &zone, nil
}

// Update 更新区域
func (s *ZoneService) Update(ctx context.Context, id uint, input ZoneInput) (*models.DeliveryZone, error) {
	zone, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, ErrNotFound
	}
	name, err := validateZoneInput(input)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountByName(name, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrZoneNameExists
	}

	applyZoneInput(zone, name, input)
	if err := s.repo.Update(zone); err != nil {
		return nil, err
	}
	s.invalidateActiveZones(ctx)
	logger.Infow("zone_updated", "zone_id", zone.ID, "is_active", zone.IsActive)
	return zone, nil
}

// Delete 删除区域
func (s *ZoneService) Delete(ctx context.Context, id uint) error {
	zone, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if zone == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateActiveZones(ctx)
	logger.Infow("zone_deleted", "zone_id", id)
	return nil
}

// ActiveZones 获取启用区域快照，优先读缓存
func (s *ZoneService) ActiveZones(ctx context.Context) ([]models.DeliveryZone, error) {
	zones, hit, err := cache.GetActiveZones(ctx)
	if err != nil {
		logger.Warnw("zone_cache_read_failed", "error", err)
	}
	if hit {
		return zones, nil
	}

	zones, err = s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	if err := cache.SetActiveZones(ctx, zones, s.cacheTTL); err != nil {
		logger.Warnw("zone_cache_write_failed", "error", err)
	}
	return zones, nil
}

// QuoteFee 按指定区域计算配送费
func (s *ZoneService) QuoteFee(id uint, point models.Coordinate, conditions []string) (*ZoneFeeBreakdown, error) {
	if !validCoordinate(point) {
		return nil, ErrCoordinateInvalid
	}
	zone, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	breakdown := QuoteZoneFeeBreakdown(zone, point, normalizeConditions(conditions))
	return &breakdown, nil
}

// QuoteForPoint 对包含该点的所有启用区域分别计价，顺序同区域创建顺序
func (s *ZoneService) QuoteForPoint(ctx context.Context, point models.Coordinate, conditions []string) ([]ZoneFeeBreakdown, error) {
	if !validCoordinate(point) {
		return nil, ErrCoordinateInvalid
	}
	zones, err := s.ActiveZones(ctx)
	if err != nil {
		return nil, err
	}
	labels := normalizeConditions(conditions)
	matched := ZonesContaining(zones, point, s.membership)
	quotes := make([]ZoneFeeBreakdown, 0, len(matched))
	for i := range matched {
		quotes = append(quotes, QuoteZoneFeeBreakdown(&matched[i], point, labels))
	}
	return quotes, nil
}

func (s *ZoneService) invalidateActiveZones(ctx context.Context) {
	if err := cache.InvalidateActiveZones(ctx); err != nil {
		logger.Warnw("zone_cache_invalidate_failed", "error", err)
	}
}

func validateZoneInput(input ZoneInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", ErrZoneNameRequired
	}
	if input.RadiusKm < constants.ZoneMinRadiusKm || input.RadiusKm > constants.ZoneMaxRadiusKm {
		return "", ErrZoneRadiusInvalid
	}
	if !validCoordinate(input.Center) {
		return "", ErrCoordinateInvalid
	}
	for _, p := range input.BoundaryPoints {
		if !validCoordinate(p) {
			return "", ErrCoordinateInvalid
		}
	}
	if input.BaseFee.IsNegative() {
		return "", ErrZoneFeeInvalid
	}
	for _, tier := range input.DistanceTiers {
		if tier.MinKm < 0 || tier.MinKm > tier.MaxKm {
			return "", ErrZoneTierInvalid
		}
		if tier.AdditionalFee.IsNegative() {
			return "", ErrZoneFeeInvalid
		}
	}
	for label, condition := range input.SpecialConditions {
		if strings.TrimSpace(label) == "" {
			return "", ErrZoneTierInvalid
		}
		if condition.AdditionalFee.IsNegative() {
			return "", ErrZoneFeeInvalid
		}
	}
	return name, nil
}

func applyZoneInput(zone *models.DeliveryZone, name string, input ZoneInput) {
	zone.Name = name
	zone.BoundaryPoints = models.CoordinateList(input.BoundaryPoints)
	zone.Center = input.Center
	zone.RadiusKm = input.RadiusKm
	zone.BaseFee = input.BaseFee
	zone.DistanceTiers = models.DistanceTierList(input.DistanceTiers)
	zone.SpecialConditions = models.SpecialConditionMap(input.SpecialConditions)
	if input.IsActive != nil {
		zone.IsActive = *input.IsActive
	}
}

func validCoordinate(c models.Coordinate) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// normalizeConditions 去除空白与空标签
func normalizeConditions(conditions []string) []string {
	result := make([]string, 0, len(conditions))
	for _, label := range conditions {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
