package cache

import (
	"context"
	"time"

	"github.com/agrimarket-logistics/internal/models"
)

const (
	activeZonesKey        = "zones:active"
	defaultActiveZonesTTL = 5 * time.Minute
)

// GetActiveZones 读取启用区域快照，未命中返回 false
func GetActiveZones(ctx context.Context) ([]models.DeliveryZone, bool, error) {
	var zones []models.DeliveryZone
	hit, err := GetJSON(ctx, activeZonesKey, &zones)
	if err != nil || !hit {
		return nil, false, err
	}
	return zones, true, nil
}

// SetActiveZones 写入启用区域快照
func SetActiveZones(ctx context.Context, zones []models.DeliveryZone, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultActiveZonesTTL
	}
	if zones == nil {
		zones = []models.DeliveryZone{}
	}
	return SetJSON(ctx, activeZonesKey, zones, ttl)
}

// InvalidateActiveZones 区域变更后清除快照
func InvalidateActiveZones(ctx context.Context) error {
	return Del(ctx, activeZonesKey)
}
