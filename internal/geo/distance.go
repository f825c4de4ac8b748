// Package geo 提供纯函数形式的地理计算
package geo

import (
	"math"

	"github.com/agrimarket-logistics/internal/models"
)

// EarthRadiusKm 地球平均半径（公里）
const EarthRadiusKm = 6371.0

// DistanceKm 使用 Haversine 公式计算两点间的大圆距离（公里）
func DistanceKm(a, b models.Coordinate) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLng := degreesToRadians(b.Longitude - a.Longitude)

	rLat1 := degreesToRadians(a.Latitude)
	rLat2 := degreesToRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
