package admin

import (
	handlershared "github.com/agrimarket-logistics/internal/http/handlers/shared"
	"github.com/agrimarket-logistics/internal/http/response"
	"github.com/agrimarket-logistics/internal/models"
	"github.com/agrimarket-logistics/internal/repository"
	"github.com/agrimarket-logistics/internal/service"

	"github.com/gin-gonic/gin"
)

// PartnerUpsertRequest 配送商创建/更新请求
type PartnerUpsertRequest struct {
	Name           string                   `json:"name" binding:"required"`
	CompanyType    string                   `json:"company_type" binding:"required"`
	Services       []models.ServiceOffering `json:"services"`
	Cities         []string                 `json:"cities"`
	States         []string                 `json:"states"`
	RadiusKm       float64                  `json:"radius_km"`
	Vehicles       []models.VehicleClass    `json:"vehicles"`
	WarehouseLinks []models.WarehouseLink   `json:"warehouse_links"`
	IsActive       *bool                    `json:"is_active"`
	IsVerified     *bool                    `json:"is_verified"`
}

func (r PartnerUpsertRequest) toInput() service.PartnerInput {
	return service.PartnerInput{
		Name:           r.Name,
		CompanyType:    models.CompanyType(r.CompanyType),
		Services:       r.Services,
		Cities:         r.Cities,
		States:         r.States,
		RadiusKm:       r.RadiusKm,
		Vehicles:       r.Vehicles,
		WarehouseLinks: r.WarehouseLinks,
		IsActive:       r.IsActive,
		IsVerified:     r.IsVerified,
	}
}

// PartnerFlagRequest 认证/启用状态请求
type PartnerFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// GetAdminPartners 获取配送商列表
func (h *Handler) GetAdminPartners(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	isActive, err := handlershared.ParseOptionalBool(c.Query("is_active"))
	if err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, nil)
		return
	}
	isVerified, err := handlershared.ParseOptionalBool(c.Query("is_verified"))
	if err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, nil)
		return
	}

	partners, total, err := h.PartnerService.List(repository.PartnerListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      c.Query("search"),
		CompanyType: models.CompanyType(c.Query("company_type")),
		IsActive:    isActive,
		IsVerified:  isVerified,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "partner fetch failed", err)
		return
	}
	response.SuccessWithPage(c, partners, handlershared.BuildPagination(page, pageSize, total))
}

// GetAdminPartner 获取配送商详情
func (h *Handler) GetAdminPartner(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	partner, err := h.PartnerService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partner)
}

// CreatePartner 创建配送商
func (h *Handler) CreatePartner(c *gin.Context) {
	var req PartnerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	partner, err := h.PartnerService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_partner_created", "operator", getOperator(c), "partner_id", partner.ID)
	response.Success(c, partner)
}

// UpdatePartner 更新配送商资料
func (h *Handler) UpdatePartner(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	var req PartnerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	partner, err := h.PartnerService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partner)
}

// DeletePartner 删除配送商
func (h *Handler) DeletePartner(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.PartnerService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_partner_deleted", "operator", getOperator(c), "partner_id", id)
	response.Success(c, gin.H{
		"deleted": true,
	})
}

// UpdatePartnerVerification 设置认证状态
func (h *Handler) UpdatePartnerVerification(c *gin.Context) {
	h.updatePartnerFlag(c, h.PartnerService.SetVerified, "is_verified")
}

// UpdatePartnerStatus 设置启用状态
func (h *Handler) UpdatePartnerStatus(c *gin.Context) {
	h.updatePartnerFlag(c, h.PartnerService.SetActive, "is_active")
}

func (h *Handler) updatePartnerFlag(c *gin.Context, apply func(uint, bool) error, field string) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	var req PartnerFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	if err := apply(id, *req.Value); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_partner_flag_updated", "operator", getOperator(c), "partner_id", id, field, *req.Value)
	response.Success(c, gin.H{
		"id":  id,
		field: *req.Value,
	})
}

// GetPartnerEligibleVehicles 按货物要求筛选车辆
func (h *Handler) GetPartnerEligibleVehicles(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	weight, err := handlershared.ParseOptionalFloat(c.Query("weight"))
	if err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, nil)
		return
	}
	volume, err := handlershared.ParseOptionalFloat(c.Query("volume"))
	if err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, nil)
		return
	}
	refrigerated, err := handlershared.ParseOptionalBool(c.Query("refrigerated"))
	if err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, nil)
		return
	}
	spec := service.ShipmentSpec{Weight: weight, Volume: volume}
	if refrigerated != nil {
		spec.RequiresRefrigeration = *refrigerated
	}
	vehicles, err := h.PartnerService.EligibleVehiclesFor(id, spec)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, vehicles)
}

// GetPartnerCoverage 覆盖范围判定
func (h *Handler) GetPartnerCoverage(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c)
	if !ok {
		return
	}
	check, err := h.PartnerService.CheckCoverage(id, c.Query("city"), c.Query("state"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, check)
}
