package repository

import (
	"context"
	"fmt"
	"time"

	"restaurant-recap/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository interface {
	GetRestaurantCoverage(ctx context.Context, from, to time.Time) ([]model.RestaurantCoverage, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// GetRestaurantCoverage groups the reports dated within [from, to] by restaurant.
func (r *statisticsRepository) GetRestaurantCoverage(ctx context.Context, from, to time.Time) ([]model.RestaurantCoverage, error) {
	var rows []model.RestaurantCoverage
	if err := GetDB(ctx, r.db).Model(&model.DailyReport{}).
		Select("restaurant_code, COUNT(*) as report_count, MIN(report_date) as first_date, MAX(report_date) as last_date, SUM(net_revenue) as net_revenue").
		Where("report_date >= ? AND report_date <= ?", from.Format(dateLayout), to.Format(dateLayout)).
		Group("restaurant_code").
		Order("restaurant_code asc").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query restaurant coverage: %w", translateError(err))
	}
	return rows, nil
}
