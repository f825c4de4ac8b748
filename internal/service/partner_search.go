package service

import (
	"github.com/agrimarket-logistics/internal/models"
)

// FindCandidates 筛选可承接订单的配送商：启用、已认证、覆盖城市或省份、且有启用的对应服务
// 结果保持输入顺序，不做排序；与 CanServe 不同，这里不放宽覆盖范围
func FindCandidates(partners []models.DeliveryPartner, city, state string, serviceType models.ServiceType) []models.DeliveryPartner {
	result := make([]models.DeliveryPartner, 0)
	for i := range partners {
		partner := &partners[i]
		if !partner.IsActive || !partner.IsVerified {
			continue
		}
		if !CoversLocation(partner, city, state) {
			continue
		}
		if !HasActiveOffering(partner, serviceType) {
			continue
		}
		result = append(result, *partner)
	}
	return result
}
