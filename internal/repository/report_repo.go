package repository

import (
	"context"
	"time"

	"restaurant-recap/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportFilter narrows a report listing. Zero values do not filter.
type ReportFilter struct {
	RestaurantCode string
	From           *time.Time // inclusive
	To             *time.Time // inclusive
	Limit          int
	Offset         int
}

type ReportRepository interface {
	List(ctx context.Context, filter ReportFilter) ([]model.DailyReport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.DailyReport, error)
	GetMonthly(ctx context.Context, year int, month time.Month, restaurantCode string) ([]model.DailyReport, error)
	FindByKey(ctx context.Context, restaurantCode string, date time.Time) (*model.DailyReport, error)
	Create(ctx context.Context, report *model.DailyReport) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// List returns report headers, newest day first. Children are not loaded.
func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]model.DailyReport, error) {
	var reports []model.DailyReport

	query := GetDB(ctx, r.db).Model(&model.DailyReport{})
	if filter.RestaurantCode != "" {
		query = query.Where("restaurant_code = ?", filter.RestaurantCode)
	}
	if filter.From != nil {
		query = query.Where("report_date >= ?", filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		query = query.Where("report_date <= ?", filter.To.Format(dateLayout))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	if err := query.Order("report_date desc, restaurant_code asc").Find(&reports).Error; err != nil {
		return nil, translateError(err)
	}
	return reports, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DailyReport, error) {
	var report model.DailyReport
	err := GetDB(ctx, r.db).
		Preload(clause.Associations).
		First(&report, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &report, nil
}

// GetMonthly returns the reports dated inside the month with their KPI
// snapshot. An empty restaurantCode selects every restaurant.
func (r *reportRepository) GetMonthly(ctx context.Context, year int, month time.Month, restaurantCode string) ([]model.DailyReport, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	query := GetDB(ctx, r.db).
		Preload("KPI").
		Where("report_date >= ? AND report_date < ?", first.Format(dateLayout), next.Format(dateLayout))
	if restaurantCode != "" {
		query = query.Where("restaurant_code = ?", restaurantCode)
	}

	var reports []model.DailyReport
	if err := query.Order("report_date asc, restaurant_code asc").Find(&reports).Error; err != nil {
		return nil, translateError(err)
	}
	return reports, nil
}

func (r *reportRepository) FindByKey(ctx context.Context, restaurantCode string, date time.Time) (*model.DailyReport, error) {
	var report model.DailyReport
	err := GetDB(ctx, r.db).
		Where("restaurant_code = ? AND report_date = ?", restaurantCode, date.Format(dateLayout)).
		First(&report).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &report, nil
}

// Create inserts the report with its children and KPI snapshot. A second
// report for the same key fails with ErrDuplicate.
func (r *reportRepository) Create(ctx context.Context, report *model.DailyReport) error {
	return translateError(GetDB(ctx, r.db).Create(report).Error)
}

// Delete removes the report and, through the cascading foreign keys, its
// children. Deleting a missing report reports false and no error.
func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := GetDB(ctx, r.db).Delete(&model.DailyReport{}, "id = ?", id)
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

const dateLayout = "2006-01-02"
