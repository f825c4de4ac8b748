package models

import (
	"database/sql/driver"
)

// Coordinate 地理坐标（WGS 84，单位：度）
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CoordinateList 坐标序列，按 JSON 存储
type CoordinateList []Coordinate

// Value 实现 driver.Valuer 接口
func (l CoordinateList) Value() (driver.Value, error) {
	return jsonColumnValue(l, "[]")
}

// Scan 实现 sql.Scanner 接口
func (l *CoordinateList) Scan(value interface{}) error {
	if value == nil {
		*l = CoordinateList{}
		return nil
	}
	return scanJSONColumn(value, l)
}
