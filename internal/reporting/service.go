package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service renders landlord reports from snapshots, with a Redis cache in
// front of the reducers.
type Service struct {
	source Source
	cache  *Cache
	logger *slog.Logger
}

// NewService constructs the reporting service. cache may be nil.
func NewService(source Source, cache *Cache, logger *slog.Logger) *Service {
	return &Service{source: source, cache: cache, logger: logger}
}

// MonthlyIncome renders the income report for one calendar month.
func (s *Service) MonthlyIncome(ctx context.Context, landlordID uuid.UUID, year int, month time.Month) (*MonthlyIncomeReport, error) {
	key := fmt.Sprintf("nyumbani:report:income:%s:%04d-%02d", landlordID, year, int(month))
	var report MonthlyIncomeReport
	err := s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (any, error) {
		snap, err := LoadSnapshot(ctx, s.source, landlordID)
		if err != nil {
			return nil, fmt.Errorf("reporting: income snapshot: %w", err)
		}
		return MonthlyIncome(snap, year, month, s.logger), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Vacancy renders the vacancy report as of now.
func (s *Service) Vacancy(ctx context.Context, landlordID uuid.UUID) (*VacancyReport, error) {
	asOf := time.Now().UTC()
	key := fmt.Sprintf("nyumbani:report:vacancy:%s:%s", landlordID, asOf.Format("2006-01-02"))
	var report VacancyReport
	err := s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (any, error) {
		snap, err := LoadSnapshot(ctx, s.source, landlordID)
		if err != nil {
			return nil, fmt.Errorf("reporting: vacancy snapshot: %w", err)
		}
		return Vacancy(snap, asOf, s.logger), nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Dashboard renders the headline portfolio numbers for the current month.
func (s *Service) Dashboard(ctx context.Context, landlordID uuid.UUID) (*Dashboard, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("nyumbani:report:dashboard:%s:%04d-%02d", landlordID, now.Year(), int(now.Month()))
	var dash Dashboard
	err := s.cache.FetchJSON(ctx, key, &dash, func(ctx context.Context) (any, error) {
		snap, err := LoadSnapshot(ctx, s.source, landlordID)
		if err != nil {
			return nil, fmt.Errorf("reporting: dashboard snapshot: %w", err)
		}
		return BuildDashboard(snap, now.Year(), now.Month()), nil
	})
	if err != nil {
		return nil, err
	}
	return &dash, nil
}
