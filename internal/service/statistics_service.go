package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-recap/internal/repository"

	"github.com/shopspring/decimal"
)

const maxStatisticsDays = 366

type RestaurantStatistics struct {
	RestaurantCode string              `json:"restaurant_code"`
	ReportCount    int                 `json:"report_count"`
	MissingDays    int                 `json:"missing_days"`
	FirstDate      string              `json:"first_date"`
	LastDate       string              `json:"last_date"`
	NetRevenue     decimal.NullDecimal `json:"net_revenue"`
}

type StatisticsResponse struct {
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	Days        int                    `json:"days"`
	Restaurants []RestaurantStatistics `json:"restaurants"`
}

// StatisticsService reports which restaurant days have been imported.
type StatisticsService interface {
	GetStatistics(ctx context.Context, from, to *time.Time) (*StatisticsResponse, error)
}

type statisticsService struct {
	statsRepo repository.StatisticsRepository
	location  *time.Location
	now       func() time.Time
}

func NewStatisticsService(statsRepo repository.StatisticsRepository, location *time.Location) StatisticsService {
	if location == nil {
		location = time.UTC
	}
	return &statisticsService{statsRepo: statsRepo, location: location, now: time.Now}
}

// GetStatistics defaults to the current month up to today. Days after today
// are never counted as missing.
func (s *statisticsService) GetStatistics(ctx context.Context, from, to *time.Time) (*StatisticsResponse, error) {
	today := dateOnly(s.now().In(s.location))

	end := today
	if to != nil {
		end = dateOnly(*to)
	}
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	if from != nil {
		start = dateOnly(*from)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start_date is after end_date", ErrValidation)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > maxStatisticsDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrValidation, maxStatisticsDays)
	}

	coverage, err := s.statsRepo.GetRestaurantCoverage(ctx, start, end)
	if err != nil {
		return nil, mapError(err)
	}

	// Expected days stop at today
	expected := 0
	if !start.After(today) {
		last := end
		if last.After(today) {
			last = today
		}
		expected = int(last.Sub(start).Hours()/24) + 1
	}

	res := &StatisticsResponse{
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Days:        expected,
		Restaurants: make([]RestaurantStatistics, 0, len(coverage)),
	}
	for _, c := range coverage {
		missing := expected - c.ReportCount
		if missing < 0 {
			missing = 0
		}
		res.Restaurants = append(res.Restaurants, RestaurantStatistics{
			RestaurantCode: c.RestaurantCode,
			ReportCount:    c.ReportCount,
			MissingDays:    missing,
			FirstDate:      c.FirstDate.Format(dateLayout),
			LastDate:       c.LastDate.Format(dateLayout),
			NetRevenue:     c.NetRevenue,
		})
	}
	return res, nil
}
