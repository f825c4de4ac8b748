package models

import "time"

// PartnerDeliveryRecord 已计入统计的配送记录，用于事件幂等
type PartnerDeliveryRecord struct {
	ID                  uint      `gorm:"primarykey" json:"id"`                                    // 主键
	DeliveryNo          string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"delivery_no"` // 配送单号
	PartnerID           uint      `gorm:"not null;index" json:"partner_id"`                        // 配送商 ID
	DeliveryTimeMinutes float64   `gorm:"not null" json:"delivery_time_minutes"`                   // 实际耗时（分钟）
	WasSuccessful       bool      `gorm:"not null" json:"was_successful"`                          // 是否成功
	CreatedAt           time.Time `gorm:"index" json:"created_at"`                                 // 记录时间
}

// TableName 指定表名
func (PartnerDeliveryRecord) TableName() string {
	return "partner_delivery_records"
}
