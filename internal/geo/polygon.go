package geo

import "github.com/agrimarket-logistics/internal/models"

// PointInPolygon 射线法判断点是否位于多边形内部（经纬度按平面坐标处理）
// 少于 3 个顶点时返回 false；顶点顺序不限，首尾无需重复
func PointInPolygon(point models.Coordinate, polygon []models.Coordinate) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	x, y := point.Longitude, point.Latitude
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := polygon[i].Longitude, polygon[i].Latitude
		xj, yj := polygon[j].Longitude, polygon[j].Latitude
		if (yi > y) != (yj > y) {
			crossX := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < crossX {
				inside = !inside
			}
		}
	}
	return inside
}
