package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// DistanceTier 距离分档加价，区间两端均为闭区间
type DistanceTier struct {
	MinKm         float64 `json:"min_km"`
	MaxKm         float64 `json:"max_km"`
	AdditionalFee Money   `json:"additional_fee"`
}

// DistanceTierList 按存储顺序匹配的分档列表
type DistanceTierList []DistanceTier

// Value 实现 driver.Valuer 接口
func (l DistanceTierList) Value() (driver.Value, error) {
	return jsonColumnValue(l, "[]")
}

// Scan 实现 sql.Scanner 接口
func (l *DistanceTierList) Scan(value interface{}) error {
	if value == nil {
		*l = DistanceTierList{}
		return nil
	}
	return scanJSONColumn(value, l)
}

// SpecialCondition 特殊条件附加费（如雨天、节假日）
type SpecialCondition struct {
	AdditionalFee Money  `json:"additional_fee"`
	Description   string `json:"description"`
}

// SpecialConditionMap 条件标签 -> 附加费
type SpecialConditionMap map[string]SpecialCondition

// Value 实现 driver.Valuer 接口
func (m SpecialConditionMap) Value() (driver.Value, error) {
	return jsonColumnValue(m, "{}")
}

// Scan 实现 sql.Scanner 接口
func (m *SpecialConditionMap) Scan(value interface{}) error {
	if value == nil {
		*m = SpecialConditionMap{}
		return nil
	}
	return scanJSONColumn(value, m)
}

// DeliveryZone 配送区域表
type DeliveryZone struct {
	ID                uint                `gorm:"primarykey" json:"id"`                                      // 主键
	Name              string              `gorm:"type:varchar(120);index;not null" json:"name"`              // 区域名称
	BoundaryPoints    CoordinateList      `gorm:"type:json" json:"boundary_points"`                          // 边界点（默认仅作参考）
	Center            Coordinate          `gorm:"embedded;embeddedPrefix:center_" json:"center"`             // 中心点
	RadiusKm          float64             `gorm:"not null" json:"radius_km"`                                 // 服务半径（1-50 公里）
	BaseFee           Money               `gorm:"type:decimal(20,2);not null;default:0" json:"base_fee"`     // 基础配送费
	DistanceTiers     DistanceTierList    `gorm:"type:json" json:"distance_tiers"`                           // 距离分档
	SpecialConditions SpecialConditionMap `gorm:"type:json" json:"special_conditions"`                       // 特殊条件附加费
	IsActive          bool                `gorm:"not null;index" json:"is_active"`                           // 是否启用
	CreatedAt         time.Time           `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt         time.Time           `json:"updated_at"`                                                // 更新时间
	DeletedAt         gorm.DeletedAt      `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (DeliveryZone) TableName() string {
	return "delivery_zones"
}
