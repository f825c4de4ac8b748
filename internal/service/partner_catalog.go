package service

import (
	"sort"

	"github.com/agrimarket-logistics/internal/models"
)

// ShipmentSpec 货物描述，为空的字段不参与过滤
type ShipmentSpec struct {
	Weight                *float64 `json:"weight,omitempty"` // kg
	Volume                *float64 `json:"volume,omitempty"` // 立方米
	RequiresRefrigeration bool     `json:"requires_refrigeration"`
}

// CoversLocation 城市或省份命中覆盖范围（精确匹配）
func CoversLocation(partner *models.DeliveryPartner, city, state string) bool {
	if partner == nil {
		return false
	}
	return partner.Coverage.Cities.Contains(city) || partner.Coverage.States.Contains(state)
}

// IsActiveRegardlessOfCoverage 宽松判定：命中覆盖范围，或配送商处于启用状态
// 启用中的配送商无论覆盖范围如何都返回 true
func IsActiveRegardlessOfCoverage(partner *models.DeliveryPartner, city, state string) bool {
	if partner == nil {
		return false
	}
	return CoversLocation(partner, city, state) || partner.IsActive
}

// CanServe 沿用历史的宽松语义，等价于 IsActiveRegardlessOfCoverage
// 需要严格覆盖判断时使用 CoversLocation
func CanServe(partner *models.DeliveryPartner, city, state string) bool {
	return IsActiveRegardlessOfCoverage(partner, city, state)
}

// EligibleVehicles 过滤满足冷藏、载重、容积要求的车辆，保持原顺序
func EligibleVehicles(partner *models.DeliveryPartner, spec ShipmentSpec) []models.VehicleClass {
	result := make([]models.VehicleClass, 0)
	if partner == nil {
		return result
	}
	for _, vehicle := range partner.Vehicles {
		if spec.RequiresRefrigeration && !vehicle.IsRefrigerated {
			continue
		}
		if spec.Weight != nil && vehicle.CapacityWeight != nil && *spec.Weight > *vehicle.CapacityWeight {
			continue
		}
		if spec.Volume != nil && vehicle.CapacityVolume != nil && *spec.Volume > *vehicle.CapacityVolume {
			continue
		}
		result = append(result, vehicle)
	}
	return result
}

// ActiveWarehouseLinks 返回启用的仓库关联，按距离升序，距离相同按 ETA 升序
func ActiveWarehouseLinks(partner *models.DeliveryPartner) []models.WarehouseLink {
	result := make([]models.WarehouseLink, 0)
	if partner == nil {
		return result
	}
	for _, link := range partner.WarehouseLinks {
		if link.IsActive {
			result = append(result, link)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DistanceKm != result[j].DistanceKm {
			return result[i].DistanceKm < result[j].DistanceKm
		}
		return result[i].EtaMinutes < result[j].EtaMinutes
	})
	return result
}
