package service

import (
	"github.com/agrimarket-logistics/internal/geo"
	"github.com/agrimarket-logistics/internal/models"

	"github.com/shopspring/decimal"
)

// ZoneFeeBreakdown 区域配送费明细
type ZoneFeeBreakdown struct {
	ZoneID        uint                    `json:"zone_id"`
	ZoneName      string                  `json:"zone_name"`
	DistanceKm    float64                 `json:"distance_km"`
	BaseFee       models.Money            `json:"base_fee"`
	MatchedTier   *models.DistanceTier    `json:"matched_tier,omitempty"`
	TierFee       models.Money            `json:"tier_fee"`
	ConditionFees map[string]models.Money `json:"condition_fees"`
	Total         models.Money            `json:"total"`
}

// QuoteZoneFee 计算从区域中心到目标点的配送费
func QuoteZoneFee(zone *models.DeliveryZone, point models.Coordinate, activeConditions []string) models.Money {
	return QuoteZoneFeeBreakdown(zone, point, activeConditions).Total
}

// QuoteZoneFeeBreakdown 计算配送费并返回明细
func QuoteZoneFeeBreakdown(zone *models.DeliveryZone, point models.Coordinate, activeConditions []string) ZoneFeeBreakdown {
	if zone == nil {
		return ZoneFeeBreakdown{ConditionFees: map[string]models.Money{}}
	}
	return QuoteZoneFeeForDistance(zone, geo.DistanceKm(zone.Center, point), activeConditions)
}

// QuoteZoneFeeForDistance 按已知距离计算配送费
// 基础费 + 首个命中的距离分档（按存储顺序，闭区间）+ 叠加所有命中的特殊条件
func QuoteZoneFeeForDistance(zone *models.DeliveryZone, distanceKm float64, activeConditions []string) ZoneFeeBreakdown {
	breakdown := ZoneFeeBreakdown{
		ConditionFees: map[string]models.Money{},
	}
	if zone == nil {
		return breakdown
	}
	breakdown.ZoneID = zone.ID
	breakdown.ZoneName = zone.Name
	breakdown.DistanceKm = distanceKm
	breakdown.BaseFee = zone.BaseFee

	total := zone.BaseFee.Decimal
	if tier := matchDistanceTier(zone.DistanceTiers, distanceKm); tier != nil {
		matched := *tier
		breakdown.MatchedTier = &matched
		breakdown.TierFee = tier.AdditionalFee
		total = total.Add(tier.AdditionalFee.Decimal)
	}

	for _, label := range activeConditions {
		if _, applied := breakdown.ConditionFees[label]; applied {
			continue
		}
		condition, ok := zone.SpecialConditions[label]
		if !ok {
			continue
		}
		breakdown.ConditionFees[label] = condition.AdditionalFee
		total = total.Add(condition.AdditionalFee.Decimal)
	}

	breakdown.Total = models.NewMoneyFromDecimal(decimal.Max(total, decimal.Zero))
	return breakdown
}

// matchDistanceTier 返回首个满足 minKm <= d <= maxKm 的分档
func matchDistanceTier(tiers []models.DistanceTier, distanceKm float64) *models.DistanceTier {
	for i := range tiers {
		if tiers[i].MinKm <= distanceKm && distanceKm <= tiers[i].MaxKm {
			return &tiers[i]
		}
	}
	return nil
}
