package admin

import (
	handlershared "github.com/agrimarket-logistics/internal/http/handlers/shared"
	"github.com/agrimarket-logistics/internal/http/response"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/repository"
	"github.com/agrimarket-logistics/internal/service"

	"github.com/gin-gonic/gin"
)

// ZoneUpsertRequest 区域创建/更新请求
type ZoneUpsertRequest struct {
	Name              string                             `json:"name" binding:"required"`
	BoundaryPoints    []models.Coordinate                `json:"boundary_points"`
	Center            models.Coordinate                  `json:"center"`
	RadiusKm          float64                            `json:"radius_km" binding:"required"`
	BaseFee           models.Money                       `json:"base_fee"`
	DistanceTiers     []models.DistanceTier              `json:"distance_tiers"`
	SpecialConditions map[string]models.SpecialCondition `json:"special_conditions"`
	IsActive          *bool                              `json:"is_active"`
}

func (r ZoneUpsertRequest) toInput() service.ZoneInput {
	return service.ZoneInput{
		Name:              r.Name,
		BoundaryPoints:    r.BoundaryPoints,
		Center:            r.Center,
		RadiusKm:          r.RadiusKm,
		BaseFee:           r.BaseFee,
		DistanceTiers:     r.DistanceTiers,
		SpecialConditions: r.SpecialConditions,
		IsActive:          r.IsActive,
	}
}

// GetAdminZones 获取区域列表
func (h *Handler) GetAdminZones(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	isActive, err := handlershared.ParseOptionalBool(c.Query("is_active"))
	if err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, nil)
		return
	}

	zones, total, err := h.ZoneService.List(repository.ZoneListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		IsActive: isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "zone fetch failed", err)
		return
	}
	response.SuccessWithPage(c, zones, handlershared.BuildPagination(page, pageSize, total))
}

// GetAdminZone 获取区域详情
func (h *Handler) GetAdminZone(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	zone, err := h.ZoneService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, zone)
}

// CreateZone 创建区域
func (h *Handler) CreateZone(c *gin.Context) {
	var req ZoneUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	zone, err := h.ZoneService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_zone_created", "operator", getOperator(c), "zone_id", zone.ID)
	response.Success(c, zone)
}

// UpdateZone 更新区域
func (h *Handler) UpdateZone(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	var req ZoneUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	zone, err := h.ZoneService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, zone)
}

// DeleteZone 删除区域
func (h *Handler) DeleteZone(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.ZoneService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_zone_deleted", "operator", getOperator(c), "zone_id", id)
	response.Success(c, gin.H{
		"deleted": true,
	})
}

// QuoteZone 按指定区域试算配送费
func (h *Handler) QuoteZone(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	var req handlershared.ZoneQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	breakdown, err := h.ZoneService.QuoteFee(id, req.Point(), req.Conditions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, breakdown)
}
