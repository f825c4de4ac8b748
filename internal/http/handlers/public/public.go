package public

import (
	"github.com/agrimarket-logistics/internal/constants"
	handlershared "github.com/agrimarket-logistics/internal/http/handlers/shared"
	"github.com/agrimarket-logistics/internal/http/response"
	"github.com/agrimarket-logistics/internal/models"

	"github.com/gin-gonic/gin"
)

// GetConfig 报价相关的公共配置
func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"zone_membership": h.ZoneService.MembershipMode(),
		"service_types":   models.AllServiceTypes(),
		"company_types":   models.AllCompanyTypes(),
		"vehicle_types":   models.AllVehicleTypes(),
		"condition_labels": []string{
			constants.ConditionPeakHours,
			constants.ConditionRainyDay,
			constants.ConditionHoliday,
		},
	})
}

// GetZones 获取启用区域
func (h *Handler) GetZones(c *gin.Context) {
	zones, err := h.ZoneService.ActiveZones(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "zone fetch failed", err)
		return
	}
	response.Success(c, zones)
}

// QuoteZones 对包含该点的启用区域逐一计价
func (h *Handler) QuoteZones(c *gin.Context) {
	var req handlershared.ZoneQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	quotes, err := h.ZoneService.QuoteForPoint(c.Request.Context(), req.Point(), req.Conditions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, quotes)
}

// SearchPartners 检索可承接的配送商
func (h *Handler) SearchPartners(c *gin.Context) {
	var req handlershared.PartnerSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	partners, err := h.PartnerService.Search(req.ToQuery())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, partners)
}

// QuotePartners 候选配送商报价
func (h *Handler) QuotePartners(c *gin.Context) {
	var req handlershared.PartnerQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, handlershared.MsgBadRequest, err)
		return
	}
	quotes, err := h.PartnerService.Quote(req.ToQuery())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, quotes)
}
