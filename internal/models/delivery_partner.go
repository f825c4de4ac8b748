package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// ServiceOffering 配送商提供的一项服务
type ServiceOffering struct {
	ServiceType ServiceType `json:"service_type"`
	BasePrice   Money       `json:"base_price"`
	PerKmPrice  Money       `json:"per_km_price"`
	MaxWeight   *float64    `json:"max_weight,omitempty"`   // 单车最大载重（kg），为空表示不限
	MaxDistance *float64    `json:"max_distance,omitempty"` // 最大服务距离（km），为空表示不限
	IsActive    bool        `json:"is_active"`
}

// ServiceOfferingList 有序服务列表
type ServiceOfferingList []ServiceOffering

// Value 实现 driver.Valuer 接口
func (l ServiceOfferingList) Value() (driver.Value, error) {
	return jsonColumnValue(l, "[]")
}

// Scan 实现 sql.Scanner 接口
func (l *ServiceOfferingList) Scan(value interface{}) error {
	if value == nil {
		*l = ServiceOfferingList{}
		return nil
	}
	return scanJSONColumn(value, l)
}

// VehicleClass 车辆类别
type VehicleClass struct {
	Type           VehicleType `json:"type"`
	CapacityWeight *float64    `json:"capacity_weight,omitempty"` // 载重（kg）
	CapacityVolume *float64    `json:"capacity_volume,omitempty"` // 容积（立方米）
	Count          int         `json:"count"`
	IsRefrigerated bool        `json:"is_refrigerated"`
}

// VehicleClassList 车辆列表
type VehicleClassList []VehicleClass

// Value 实现 driver.Valuer 接口
func (l VehicleClassList) Value() (driver.Value, error) {
	return jsonColumnValue(l, "[]")
}

// Scan 实现 sql.Scanner 接口
func (l *VehicleClassList) Scan(value interface{}) error {
	if value == nil {
		*l = VehicleClassList{}
		return nil
	}
	return scanJSONColumn(value, l)
}

// WarehouseLink 配送商与仓库的关联
type WarehouseLink struct {
	WarehouseID string  `json:"warehouse_id"`
	DistanceKm  float64 `json:"distance_km"`
	EtaMinutes  int     `json:"eta_minutes"`
	IsActive    bool    `json:"is_active"`
}

// WarehouseLinkList 仓库关联列表
type WarehouseLinkList []WarehouseLink

// Value 实现 driver.Valuer 接口
func (l WarehouseLinkList) Value() (driver.Value, error) {
	return jsonColumnValue(l, "[]")
}

// Scan 实现 sql.Scanner 接口
func (l *WarehouseLinkList) Scan(value interface{}) error {
	if value == nil {
		*l = WarehouseLinkList{}
		return nil
	}
	return scanJSONColumn(value, l)
}

// Review 用户评价
type Review struct {
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewList 评价列表
type ReviewList []Review

// Value 实现 driver.Valuer 接口
func (l ReviewList) Value() (driver.Value, error) {
	return jsonColumnValue(l, "[]")
}

// Scan 实现 sql.Scanner 接口
func (l *ReviewList) Scan(value interface{}) error {
	if value == nil {
		*l = ReviewList{}
		return nil
	}
	return scanJSONColumn(value, l)
}

// ServiceCoverage 服务覆盖范围
type ServiceCoverage struct {
	Cities   StringArray `gorm:"type:json" json:"cities"`
	States   StringArray `gorm:"type:json" json:"states"`
	RadiusKm float64     `json:"radius_km"`
}

// PartnerRating 评分汇总
type PartnerRating struct {
	Average      float64    `json:"average"` // 0-5
	TotalRatings int        `json:"total_ratings"`
	Reviews      ReviewList `gorm:"type:json" json:"reviews"`
}

// PerformanceStats 履约统计
type PerformanceStats struct {
	TotalDeliveries            int     `gorm:"not null;default:0" json:"total_deliveries"`
	SuccessfulDeliveries       int     `gorm:"not null;default:0" json:"successful_deliveries"`
	AverageDeliveryTimeMinutes float64 `gorm:"not null;default:0" json:"average_delivery_time_minutes"`
	OnTimeDeliveryRatePercent  float64 `gorm:"not null;default:0" json:"on_time_delivery_rate_percent"`
}

// DeliveryPartner 配送商表
type DeliveryPartner struct {
	ID             uint                `gorm:"primarykey" json:"id"`                                     // 主键
	Name           string              `gorm:"type:varchar(120);not null;index" json:"name"`             // 名称
	CompanyType    CompanyType         `gorm:"type:varchar(32);not null" json:"company_type"`            // 企业类型
	Services       ServiceOfferingList `gorm:"type:json" json:"services"`                                // 服务列表（有序）
	Coverage       ServiceCoverage     `gorm:"embedded;embeddedPrefix:coverage_" json:"coverage"`        // 覆盖范围
	Vehicles       VehicleClassList    `gorm:"type:json" json:"vehicles"`                                // 车辆
	WarehouseLinks WarehouseLinkList   `gorm:"type:json" json:"warehouse_links"`                         // 仓库关联
	Rating         PartnerRating       `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`            // 评分
	Performance    PerformanceStats    `gorm:"embedded;embeddedPrefix:perf_" json:"performance"`         // 履约统计
	IsVerified     bool                `gorm:"not null;index" json:"is_verified"`                        // 是否已认证
	IsActive       bool                `gorm:"not null;index" json:"is_active"`                          // 是否启用
	Version        int64               `gorm:"not null;default:0" json:"version"`                        // 乐观锁版本
	CreatedAt      time.Time           `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt      time.Time           `json:"updated_at"`                                               // 更新时间
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (DeliveryPartner) TableName() string {
	return "delivery_partners"
}
