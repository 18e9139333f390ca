package service

import (
	"context"
	"fmt"

	"dsatracker/internal/domain/model"
	"dsatracker/internal/domain/repository"
)

type StatsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// UserStats assembles the per-user dashboard from the aggregate statement,
// the 30-day activity series, the current-month calendar and the streak
// heuristic. The queries run sequentially; a single failure fails the
// whole request.
func (s *StatsService) UserStats(ctx context.Context, user string) (*model.UserStats, error) {
	stats, err := s.statsRepo.UserAggregates(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("StatsService.UserStats aggregates: %w", err)
	}

	stats.ActivityLog, err = s.statsRepo.ActivityLog(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("StatsService.UserStats activity: %w", err)
	}

	stats.CalendarActivity, err = s.statsRepo.CalendarActivity(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("StatsService.UserStats calendar: %w", err)
	}

	stats.CurrentStreak, stats.BestStreak, err = s.statsRepo.Streak(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("StatsService.UserStats streak: %w", err)
	}

	if stats.ActivityLog == nil {
		stats.ActivityLog = []model.ActivityPoint{}
	}
	if stats.CalendarActivity == nil {
		stats.CalendarActivity = map[string]int{}
	}
	return stats, nil
}

func (s *StatsService) GlobalLeaderboard(ctx context.Context) ([]model.LeaderboardRow, error) {
	return s.statsRepo.GlobalLeaderboard(ctx)
}
