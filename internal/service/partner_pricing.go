package service

import (
	"math"

	"github.com/agrimarket-logistics/internal/models"

	"github.com/shopspring/decimal"
)

// FindActiveOffering 返回首个启用且类型匹配的服务
func FindActiveOffering(partner *models.DeliveryPartner, serviceType models.ServiceType) (*models.ServiceOffering, bool) {
	if partner == nil {
		return nil, false
	}
	for i := range partner.Services {
		offering := &partner.Services[i]
		if offering.IsActive && offering.ServiceType == serviceType {
			return offering, true
		}
	}
	return nil, false
}

// HasActiveOffering 是否存在启用的对应服务
func HasActiveOffering(partner *models.DeliveryPartner, serviceType models.ServiceType) bool {
	_, ok := FindActiveOffering(partner, serviceType)
	return ok
}

// QuotePartnerCost 计算配送商报价
// cost = basePrice + distanceKm * perKmPrice；weight > 0 且设置了 maxWeight 时按 ceil(weight/maxWeight) 倍计费
func QuotePartnerCost(partner *models.DeliveryPartner, serviceType models.ServiceType, distanceKm, weight float64) (models.Money, error) {
	offering, ok := FindActiveOffering(partner, serviceType)
	if !ok {
		return models.Money{}, ErrServiceUnavailable
	}
	return models.NewMoneyFromDecimal(offeringCost(offering, distanceKm, weight)), nil
}

func offeringCost(offering *models.ServiceOffering, distanceKm, weight float64) decimal.Decimal {
	cost := offering.BasePrice.Decimal.Add(decimal.NewFromFloat(distanceKm).Mul(offering.PerKmPrice.Decimal))
	if factor := weightFactor(offering.MaxWeight, weight); factor > 1 {
		cost = cost.Mul(decimal.NewFromInt(factor))
	}
	return cost
}

// weightFactor 需要的满载单位数量，不满足条件时为 1
func weightFactor(maxWeight *float64, weight float64) int64 {
	if weight <= 0 || maxWeight == nil || *maxWeight <= 0 {
		return 1
	}
	return int64(math.Ceil(weight / *maxWeight))
}

// ExceedsMaxDistance 距离是否超过服务的最大距离，未设置上限时恒为 false
func ExceedsMaxDistance(offering *models.ServiceOffering, distanceKm float64) bool {
	if offering == nil || offering.MaxDistance == nil {
		return false
	}
	return distanceKm > *offering.MaxDistance
}
