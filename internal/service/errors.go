package service

import "errors"

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
	// ErrServiceUnavailable 配送商没有可用的对应服务，调用方应展示为“暂无报价”，不应重试
	ErrServiceUnavailable = errors.New("service unavailable")
)

// 区域相关错误
var (
	ErrZoneNameRequired  = errors.New("zone name is required")
	ErrZoneNameExists    = errors.New("zone name already exists")
	ErrZoneRadiusInvalid = errors.New("zone radius must be between 1 and 50 km")
	ErrZoneFeeInvalid    = errors.New("zone fee must not be negative")
	ErrZoneTierInvalid   = errors.New("zone distance tier is invalid")
	ErrCoordinateInvalid = errors.New("coordinate is out of range")
)

// 配送商相关错误
var (
	ErrPartnerNameRequired  = errors.New("partner name is required")
	ErrCompanyTypeInvalid   = errors.New("company type is invalid")
	ErrServiceTypeInvalid   = errors.New("service type is invalid")
	ErrVehicleTypeInvalid   = errors.New("vehicle type is invalid")
	ErrOfferingInvalid      = errors.New("service offering is invalid")
	ErrVehicleInvalid       = errors.New("vehicle class is invalid")
	ErrWarehouseLinkInvalid = errors.New("warehouse link is invalid")
	ErrDistanceInvalid      = errors.New("distance must not be negative")
	ErrWeightInvalid        = errors.New("weight must be a non-negative number")
	ErrVolumeInvalid        = errors.New("volume must be a non-negative number")
)

// 统计相关错误
var (
	ErrReviewRatingInvalid    = errors.New("review rating must be between 1 and 5")
	ErrReviewUserRequired     = errors.New("review user is required")
	ErrDeliveryNoRequired     = errors.New("delivery number is required")
	ErrDeliveryTimeInvalid    = errors.New("delivery time must not be negative")
	ErrDeliveryAlreadyCounted = errors.New("delivery already counted")
	ErrStatsConflict          = errors.New("partner stats update conflict")
)
