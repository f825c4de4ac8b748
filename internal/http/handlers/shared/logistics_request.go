package shared

import (
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/service"
)

// ZoneQuoteRequest 区域计价请求
type ZoneQuoteRequest struct {
	Latitude   *float64 `json:"latitude" binding:"required"`
	Longitude  *float64 `json:"longitude" binding:"required"`
	Conditions []string `json:"conditions"`
}

// Point 请求中的坐标
func (r ZoneQuoteRequest) Point() models.Coordinate {
	point := models.Coordinate{}
	if r.Latitude != nil {
		point.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		point.Longitude = *r.Longitude
	}
	return point
}

// PartnerSearchRequest 配送商检索请求
type PartnerSearchRequest struct {
	City        string `json:"city"`
	State       string `json:"state"`
	ServiceType string `json:"service_type" binding:"required"`
}

// ToQuery 转换为 service 层查询条件
func (r PartnerSearchRequest) ToQuery() service.CandidateQuery {
	return service.CandidateQuery{
		City:        r.City,
		State:       r.State,
		ServiceType: models.ServiceType(r.ServiceType),
	}
}

// PartnerQuoteRequest 配送商报价请求
type PartnerQuoteRequest struct {
	PartnerSearchRequest
	DistanceKm            float64  `json:"distance_km"`
	Weight                *float64 `json:"weight"`
	Volume                *float64 `json:"volume"`
	RequiresRefrigeration bool     `json:"requires_refrigeration"`
}

// ToQuery 转换为 service 层查询条件
func (r PartnerQuoteRequest) ToQuery() service.CandidateQuery {
	query := r.PartnerSearchRequest.ToQuery()
	query.DistanceKm = r.DistanceKm
	query.Shipment = service.ShipmentSpec{
		Weight:                r.Weight,
		Volume:                r.Volume,
		RequiresRefrigeration: r.RequiresRefrigeration,
	}
	return query
}
