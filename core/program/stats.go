package program

import (
	"context"
	"fmt"
	"time"

	"anganwadi/cache"
	"anganwadi/logger"
	"anganwadi/model"
)

// dateLayouts are the calendar-date forms accepted in the free-text date
// field. A date matching none of them is excluded from the monthly count
// rather than treated as an error.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// DashboardStats aggregates the total program count, the number of
// programs dated in the current calendar month, and the date of the most
// recently created program ("N/A" when the store is empty).
func (s *Service) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	cached, err := cache.GetStats(ctx)
	if err != nil {
		logger.Warn("Stats cache read failed", logger.ErrorField(err))
	} else if cached != nil {
		return cached, nil
	}

	total, err := s.repo.CountPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count programs: %w", err)
	}

	programs, err := s.repo.GetAllPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch programs for stats: %w", err)
	}

	now := time.Now()
	thisMonthCount := 0
	for _, p := range programs {
		if t, ok := parseProgramDate(p.Date); ok && t.Month() == now.Month() && t.Year() == now.Year() {
			thisMonthCount++
		}
	}

	lastAdded := "N/A"
	latest, err := s.repo.GetLatestProgram(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest program: %w", err)
	}
	if latest != nil {
		lastAdded = latest.Date
	}

	stats := &model.DashboardStats{
		TotalPrograms:  total,
		ThisMonthCount: thisMonthCount,
		LastAdded:      lastAdded,
	}

	if err := cache.SetStats(ctx, stats); err != nil {
		logger.Warn("Stats cache write failed", logger.ErrorField(err))
	}

	return stats, nil
}

func parseProgramDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
