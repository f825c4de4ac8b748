package models

// ServiceType 配送服务类型
type ServiceType string

const (
	ServiceTypeSameDay  ServiceType = "same_day"
	ServiceTypeNextDay  ServiceType = "next_day"
	ServiceTypeExpress  ServiceType = "express"
	ServiceTypeStandard ServiceType = "standard"
	ServiceTypeBulk     ServiceType = "bulk"
)

// AllServiceTypes 返回全部服务类型
func AllServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceTypeSameDay,
		ServiceTypeNextDay,
		ServiceTypeExpress,
		ServiceTypeStandard,
		ServiceTypeBulk,
	}
}

// IsValid 校验服务类型
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypeSameDay, ServiceTypeNextDay, ServiceTypeExpress, ServiceTypeStandard, ServiceTypeBulk:
		return true
	}
	return false
}

// CompanyType 配送商企业类型
type CompanyType string

const (
	CompanyTypeLogistics         CompanyType = "logistics"
	CompanyTypeCourier           CompanyType = "courier"
	CompanyTypeTransport         CompanyType = "transport"
	CompanyTypeWarehouseDelivery CompanyType = "warehouse_delivery"
)

// AllCompanyTypes 返回全部企业类型
func AllCompanyTypes() []CompanyType {
	return []CompanyType{
		CompanyTypeLogistics,
		CompanyTypeCourier,
		CompanyTypeTransport,
		CompanyTypeWarehouseDelivery,
	}
}

// IsValid 校验企业类型
func (t CompanyType) IsValid() bool {
	switch t {
	case CompanyTypeLogistics, CompanyTypeCourier, CompanyTypeTransport, CompanyTypeWarehouseDelivery:
		return true
	}
	return false
}

// VehicleType 车辆类型
type VehicleType string

const (
	VehicleTypeBike              VehicleType = "bike"
	VehicleTypeCar               VehicleType = "car"
	VehicleTypeVan               VehicleType = "van"
	VehicleTypeTruck             VehicleType = "truck"
	VehicleTypeRefrigeratedTruck VehicleType = "refrigerated_truck"
)

// AllVehicleTypes 返回全部车辆类型
func AllVehicleTypes() []VehicleType {
	return []VehicleType{
		VehicleTypeBike,
		VehicleTypeCar,
		VehicleTypeVan,
		VehicleTypeTruck,
		VehicleTypeRefrigeratedTruck,
	}
}

// IsValid 校验车辆类型
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTypeBike, VehicleTypeCar, VehicleTypeVan, VehicleTypeTruck, VehicleTypeRefrigeratedTruck:
		return true
	}
	return false
}

// ZoneMembershipMode 区域归属判定方式
type ZoneMembershipMode string

const (
	// ZoneMembershipCircle 以中心点 + 半径判定
	ZoneMembershipCircle ZoneMembershipMode = "circle"
	// ZoneMembershipPolygon 以边界多边形判定
	ZoneMembershipPolygon ZoneMembershipMode = "polygon"
)

// ParseZoneMembershipMode 解析配置值，未知值回退为 circle
func ParseZoneMembershipMode(raw string) ZoneMembershipMode {
	if ZoneMembershipMode(raw) == ZoneMembershipPolygon {
		return ZoneMembershipPolygon
	}
	return ZoneMembershipCircle
}
