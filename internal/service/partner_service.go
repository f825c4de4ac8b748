package service

import (
	"math"
	"strings"

	"github.com/agrimarket-logistics/internal/logger"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/repository"

	"gorm.io/gorm"
)

// PartnerService 配送商业务服务
type PartnerService struct {
	repo repository.DeliveryPartnerRepository
}

// NewPartnerService 创建配送商服务
func NewPartnerService(repo repository.DeliveryPartnerRepository) *PartnerService {
	return &PartnerService{repo: repo}
}

// PartnerInput 创建/更新配送商输入
type PartnerInput struct {
	Name           string
	CompanyType    models.CompanyType
	Services       []models.ServiceOffering
	Cities         []string
	States         []string
	RadiusKm       float64
	Vehicles       []models.VehicleClass
	WarehouseLinks []models.WarehouseLink
	IsActive       *bool
	IsVerified     *bool
}

// CandidateQuery 候选配送商查询条件
type CandidateQuery struct {
	City        string
	State       string
	ServiceType models.ServiceType
	DistanceKm  float64
	Shipment    ShipmentSpec
}

// PartnerQuote 单个配送商的报价结果
type PartnerQuote struct {
	PartnerID          uint                  `json:"partner_id"`
	PartnerName        string                `json:"partner_name"`
	ServiceType        models.ServiceType    `json:"service_type"`
	Cost               models.Money          `json:"cost"`
	ExceedsMaxDistance bool                  `json:"exceeds_max_distance"`
	EligibleVehicles   []models.VehicleClass `json:"eligible_vehicles"`
	NearestWarehouse   *models.WarehouseLink `json:"nearest_warehouse,omitempty"`
	RatingAverage      float64               `json:"rating_average"`
	OnTimeRatePercent  float64               `json:"on_time_rate_percent"`
}

// CoverageCheck 覆盖范围判定结果，两种语义同时给出
type CoverageCheck struct {
	CoversLocation               bool `json:"covers_location"`
	CanServe                     bool `json:"can_serve"`
	IsActiveRegardlessOfCoverage bool `json:"is_active_regardless_of_coverage"`
}

// List 配送商列表
func (s *PartnerService) List(filter repository.PartnerListFilter) ([]models.DeliveryPartner, int64, error) {
	return s.repo.List(filter)
}

// Get 获取配送商
func (s *PartnerService) Get(id uint) (*models.DeliveryPartner, error) {
	partner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}
	return partner, nil
}

// Create 创建配送商，默认启用、未认证
func (s *PartnerService) Create(input PartnerInput) (*models.DeliveryPartner, error) {
	normalized, err := normalizePartnerInput(input)
	if err != nil {
		return nil, err
	}
	partner := models.DeliveryPartner{IsActive: true}
	applyPartnerProfile(&partner, normalized)
	if normalized.IsActive != nil {
		partner.IsActive = *normalized.IsActive
	}
	if normalized.IsVerified != nil {
		partner.IsVerified = *normalized.IsVerified
	}
	if err := s.repo.Create(&partner); err != nil {
		return nil, err
	}
	logger.Infow("partner_created", "partner_id", partner.ID, "name", partner.Name, "company_type", partner.CompanyType)
	return &partner, nil
}

// Update 更新配送商资料，统计与评分保持不变
func (s *PartnerService) Update(id uint, input PartnerInput) (*models.DeliveryPartner, error) {
	partner, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizePartnerInput(input)
	if err != nil {
		return nil, err
	}
	applyPartnerProfile(partner, normalized)

	flags := map[string]interface{}{}
	if normalized.IsActive != nil && *normalized.IsActive != partner.IsActive {
		flags["is_active"] = *normalized.IsActive
	}
	if normalized.IsVerified != nil && *normalized.IsVerified != partner.IsVerified {
		flags["is_verified"] = *normalized.IsVerified
	}

	// 资料与状态位同一事务写入
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateProfile(partner); err != nil {
			return err
		}
		if len(flags) == 0 {
			return nil
		}
		affected, err := repo.UpdateFlags(id, flags)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("partner_updated", "partner_id", id, "flags", flags)
	return s.Get(id)
}

// Delete 删除配送商
func (s *PartnerService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("partner_deleted", "partner_id", id)
	return nil
}

// SetVerified 设置认证状态
func (s *PartnerService) SetVerified(id uint, verified bool) error {
	return s.updateFlag(id, "is_verified", verified)
}

// SetActive 设置启用状态
func (s *PartnerService) SetActive(id uint, active bool) error {
	return s.updateFlag(id, "is_active", active)
}

func (s *PartnerService) updateFlag(id uint, column string, value bool) error {
	affected, err := s.repo.UpdateFlags(id, map[string]interface{}{column: value})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	logger.Infow("partner_flag_updated", "partner_id", id, "flag", column, "value", value)
	return nil
}

// CheckCoverage 同时返回严格覆盖判断与宽松可服务判断
func (s *PartnerService) CheckCoverage(id uint, city, state string) (*CoverageCheck, error) {
	partner, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	return &CoverageCheck{
		CoversLocation:               CoversLocation(partner, city, state),
		CanServe:                     CanServe(partner, city, state),
		IsActiveRegardlessOfCoverage: IsActiveRegardlessOfCoverage(partner, city, state),
	}, nil
}

// EligibleVehiclesFor 返回配送商满足货物要求的车辆
func (s *PartnerService) EligibleVehiclesFor(id uint, spec ShipmentSpec) ([]models.VehicleClass, error) {
	if err := validateShipment(spec); err != nil {
		return nil, err
	}
	partner, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return EligibleVehicles(partner, spec), nil
}

// Search 查询可承接的配送商
func (s *PartnerService) Search(query CandidateQuery) ([]models.DeliveryPartner, error) {
	if !query.ServiceType.IsValid() {
		return nil, ErrServiceTypeInvalid
	}
	partners, err := s.repo.ListSearchable()
	if err != nil {
		return nil, err
	}
	return FindCandidates(partners, strings.TrimSpace(query.City), strings.TrimSpace(query.State), query.ServiceType), nil
}

// Quote 对候选配送商逐个报价，顺序与候选顺序一致
func (s *PartnerService) Quote(query CandidateQuery) ([]PartnerQuote, error) {
	if !nonNegativeFinite(query.DistanceKm) {
		return nil, ErrDistanceInvalid
	}
	if err := validateShipment(query.Shipment); err != nil {
		return nil, err
	}
	candidates, err := s.Search(query)
	if err != nil {
		return nil, err
	}

	weight := 0.0
	if query.Shipment.Weight != nil {
		weight = *query.Shipment.Weight
	}
	quotes := make([]PartnerQuote, 0, len(candidates))
	for i := range candidates {
		partner := &candidates[i]
		cost, err := QuotePartnerCost(partner, query.ServiceType, query.DistanceKm, weight)
		if err != nil {
			logger.Debugw("partner_quote_skipped", "partner_id", partner.ID, "error", err)
			continue
		}
		offering, _ := FindActiveOffering(partner, query.ServiceType)
		quote := PartnerQuote{
			PartnerID:          partner.ID,
			PartnerName:        partner.Name,
			ServiceType:        query.ServiceType,
			Cost:               cost,
			ExceedsMaxDistance: ExceedsMaxDistance(offering, query.DistanceKm),
			EligibleVehicles:   EligibleVehicles(partner, query.Shipment),
			RatingAverage:      partner.Rating.Average,
			OnTimeRatePercent:  partner.Performance.OnTimeDeliveryRatePercent,
		}
		if links := ActiveWarehouseLinks(partner); len(links) > 0 {
			nearest := links[0]
			quote.NearestWarehouse = &nearest
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func validateShipment(spec ShipmentSpec) error {
	if spec.Weight != nil && !nonNegativeFinite(*spec.Weight) {
		return ErrWeightInvalid
	}
	if spec.Volume != nil && !nonNegativeFinite(*spec.Volume) {
		return ErrVolumeInvalid
	}
	return nil
}

func nonNegativeFinite(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func normalizePartnerInput(input PartnerInput) (PartnerInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, ErrPartnerNameRequired
	}
	if !input.CompanyType.IsValid() {
		return input, ErrCompanyTypeInvalid
	}
	if input.RadiusKm < 0 {
		return input, ErrDistanceInvalid
	}
	for _, offering := range input.Services {
		if !offering.ServiceType.IsValid() {
			return input, ErrServiceTypeInvalid
		}
		if offering.BasePrice.IsNegative() || offering.PerKmPrice.IsNegative() {
			return input, ErrOfferingInvalid
		}
		if !optionalPositive(offering.MaxWeight) || !optionalPositive(offering.MaxDistance) {
			return input, ErrOfferingInvalid
		}
	}
	for _, vehicle := range input.Vehicles {
		if !vehicle.Type.IsValid() {
			return input, ErrVehicleTypeInvalid
		}
		if vehicle.Count < 0 || !optionalPositive(vehicle.CapacityWeight) || !optionalPositive(vehicle.CapacityVolume) {
			return input, ErrVehicleInvalid
		}
	}
	for _, link := range input.WarehouseLinks {
		if strings.TrimSpace(link.WarehouseID) == "" || link.DistanceKm < 0 || link.EtaMinutes < 0 {
			return input, ErrWarehouseLinkInvalid
		}
	}
	input.Cities = normalizeLocationSet(input.Cities)
	input.States = normalizeLocationSet(input.States)
	return input, nil
}

func applyPartnerProfile(partner *models.DeliveryPartner, input PartnerInput) {
	partner.Name = input.Name
	partner.CompanyType = input.CompanyType
	partner.Services = models.ServiceOfferingList(input.Services)
	partner.Coverage = models.ServiceCoverage{
		Cities:   models.StringArray(input.Cities),
		States:   models.StringArray(input.States),
		RadiusKm: input.RadiusKm,
	}
	partner.Vehicles = models.VehicleClassList(input.Vehicles)
	partner.WarehouseLinks = models.WarehouseLinkList(input.WarehouseLinks)
}

func optionalPositive(v *float64) bool {
	return v == nil || *v > 0
}

// normalizeLocationSet 去空白、去重，保持首次出现的顺序；匹配仍区分大小写
func normalizeLocationSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
