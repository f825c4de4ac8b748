package service

import (
	"github.com/agrimarket-logistics/internal/models"
)

// RecordDelivery 记录一次配送，返回新的统计值，不修改入参
// 平均耗时为全部配送（含失败）的滑动平均
func RecordDelivery(stats models.PerformanceStats, deliveryTimeMinutes float64, wasSuccessful bool) models.PerformanceStats {
	next := stats
	next.TotalDeliveries++
	if wasSuccessful {
		next.SuccessfulDeliveries++
	}
	n := float64(next.TotalDeliveries)
	next.AverageDeliveryTimeMinutes = (stats.AverageDeliveryTimeMinutes*(n-1) + deliveryTimeMinutes) / n
	next.OnTimeDeliveryRatePercent = OnTimeDeliveryRate(next)
	return next
}

// OnTimeDeliveryRate 准时率（百分比）
// 目前等同于成功率，没有与时效承诺比较
func OnTimeDeliveryRate(stats models.PerformanceStats) float64 {
	if stats.TotalDeliveries <= 0 {
		return 0
	}
	return float64(stats.SuccessfulDeliveries) / float64(stats.TotalDeliveries) * 100
}

// RecordReview 追加评价并重新计算平均分，返回新切片，不修改入参
func RecordReview(reviews []models.Review, review models.Review) ([]models.Review, float64, int) {
	updated := make([]models.Review, 0, len(reviews)+1)
	updated = append(updated, reviews...)
	updated = append(updated, review)
	return updated, averageRating(updated), len(updated)
}

// ApplyReview 在评分汇总上追加评价
func ApplyReview(rating models.PartnerRating, review models.Review) models.PartnerRating {
	reviews, average, total := RecordReview(rating.Reviews, review)
	return models.PartnerRating{
		Average:      average,
		TotalRatings: total,
		Reviews:      reviews,
	}
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
