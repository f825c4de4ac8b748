package service

import (
	"github.com/agrimarket-logistics/internal/geo"
	"github.com/agrimarket-logistics/internal/models"
)

// IsInZone 圆形近似判断：点到中心的距离不超过半径即属于该区域
// 边界点不参与判断；坐标合法性由调用方负责
func IsInZone(zone *models.DeliveryZone, point models.Coordinate) bool {
	if zone == nil {
		return false
	}
	return geo.DistanceKm(zone.Center, point) <= zone.RadiusKm
}

// IsInZonePolygon 按边界多边形判断，边界点不足 3 个时回退为圆形判断
func IsInZonePolygon(zone *models.DeliveryZone, point models.Coordinate) bool {
	if zone == nil {
		return false
	}
	if len(zone.BoundaryPoints) < 3 {
		return IsInZone(zone, point)
	}
	return geo.PointInPolygon(point, zone.BoundaryPoints)
}

// ZoneContains 按配置的判定方式判断归属
func ZoneContains(zone *models.DeliveryZone, point models.Coordinate, mode models.ZoneMembershipMode) bool {
	switch mode {
	case models.ZoneMembershipPolygon:
		return IsInZonePolygon(zone, point)
	default:
		return IsInZone(zone, point)
	}
}

// ZonesContaining 返回包含该点的启用区域，保持输入顺序
func ZonesContaining(zones []models.DeliveryZone, point models.Coordinate, mode models.ZoneMembershipMode) []models.DeliveryZone {
	result := make([]models.DeliveryZone, 0)
	for i := range zones {
		if !zones[i].IsActive {
			continue
		}
		if ZoneContains(&zones[i], point, mode) {
			result = append(result, zones[i])
		}
	}
	return result
}
