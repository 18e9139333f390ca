package service

import (
	"context"
	"fmt"
	"time"

	"dsatracker/internal/common"
	"dsatracker/internal/domain/model"
	"dsatracker/internal/domain/repository"
	"dsatracker/internal/platform/cache"
)

// Cache windows for the community aggregates. Each endpoint owns one cache
// keyed by its request parameters.
const (
	statsCacheTTL    = time.Hour
	activityCacheTTL = time.Hour
	feedCacheTTL     = 5 * time.Minute
	goalsCacheTTL    = 15 * time.Minute
	boardsCacheTTL   = 30 * time.Minute

	cacheMaxEntries = 32
)

const (
	BoardTypeAll            = "all"
	BoardTypeTotalSolved    = "totalSolved"
	BoardTypeCurrentStreak  = "currentStreak"
	BoardTypeWeeklyActivity = "weeklyActivity"
)

type CommunityService struct {
	repo repository.CommunityRepository

	statsCache    *cache.Cache
	activityCache *cache.Cache
	feedCache     *cache.Cache
	goalsCache    *cache.Cache
	boardsCache   *cache.Cache

	now func() time.Time
}

func NewCommunityService(repo repository.CommunityRepository) *CommunityService {
	return &CommunityService{
		repo:          repo,
		statsCache:    cache.New(statsCacheTTL, 1),
		activityCache: cache.New(activityCacheTTL, cacheMaxEntries),
		feedCache:     cache.New(feedCacheTTL, cacheMaxEntries),
		goalsCache:    cache.New(goalsCacheTTL, 1),
		boardsCache:   cache.New(boardsCacheTTL, cacheMaxEntries),
		now:           time.Now,
	}
}

func (s *CommunityService) Stats(ctx context.Context) (*model.CommunityStats, error) {
	if cached, ok := s.statsCache.Get("stats"); ok {
		return cached.(*model.CommunityStats), nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	s.statsCache.Set("stats", stats)
	return stats, nil
}

// Activity returns the per-day heatmap for a calendar year, capped at days
// entries. Defaults: the current year, 365 days.
func (s *CommunityService) Activity(ctx context.Context, year, days int) ([]model.ActivityDay, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if days <= 0 {
		days = 365
	}

	key := fmt.Sprintf("%d-%d", year, days)
	if cached, ok := s.activityCache.Get(key); ok {
		return cached.([]model.ActivityDay), nil
	}

	startDate := fmt.Sprintf("%d-01-01", year)
	endDate := fmt.Sprintf("%d-12-31", year)
	activity, err := s.repo.Activity(ctx, startDate, endDate, days)
	if err != nil {
		return nil, err
	}
	s.activityCache.Set(key, activity)
	return activity, nil
}

// Leaderboards returns the requested split, or all three for boardType
// "all". Unknown types yield a 400.
func (s *CommunityService) Leaderboards(ctx context.Context, boardType string, limit int) (interface{}, error) {
	if boardType == "" {
		boardType = BoardTypeAll
	}
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("%s-%d", boardType, limit)
	if cached, ok := s.boardsCache.Get(key); ok {
		return cached, nil
	}

	var payload interface{}
	switch boardType {
	case BoardTypeTotalSolved:
		entries, err := s.repo.TotalSolvedBoard(ctx, limit)
		if err != nil {
			return nil, err
		}
		payload = entries
	case BoardTypeCurrentStreak:
		entries, err := s.repo.CurrentStreakBoard(ctx, limit)
		if err != nil {
			return nil, err
		}
		payload = entries
	case BoardTypeWeeklyActivity:
		entries, err := s.repo.WeeklyActivityBoard(ctx, limit)
		if err != nil {
			return nil, err
		}
		payload = entries
	case BoardTypeAll:
		boards := model.CommunityLeaderboards{}
		var err error
		if boards.TotalSolved, err = s.repo.TotalSolvedBoard(ctx, limit); err != nil {
			return nil, err
		}
		if boards.CurrentStreak, err = s.repo.CurrentStreakBoard(ctx, limit); err != nil {
			return nil, err
		}
		if boards.WeeklyActivity, err = s.repo.WeeklyActivityBoard(ctx, limit); err != nil {
			return nil, err
		}
		payload = boards
	default:
		return nil, common.ErrBadRequest
	}

	s.boardsCache.Set(key, payload)
	return payload, nil
}

// Feed returns recent milestone events, newest first. since defaults to
// seven days ago.
func (s *CommunityService) Feed(ctx context.Context, limit int, since string) ([]model.FeedItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if since == "" {
		since = s.now().AddDate(0, 0, -7).Format("2006-01-02")
	}

	key := fmt.Sprintf("%d-%s", limit, since)
	if cached, ok := s.feedCache.Get(key); ok {
		return cached.([]model.FeedItem), nil
	}

	items, err := s.repo.Feed(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ID = fmt.Sprintf("%s-%d-%s-%d", items[i].Type, items[i].UserID, items[i].Timestamp, i)
	}
	s.feedCache.Set(key, items)
	return items, nil
}

// Goals reports the three fixed community goals with live progress. The
// targets are hardcoded product constants, not stored state.
func (s *CommunityService) Goals(ctx context.Context) ([]model.CommunityGoal, error) {
	if cached, ok := s.goalsCache.Get("goals"); ok {
		return cached.([]model.CommunityGoal), nil
	}

	now := s.now()
	today := now.Format("2006-01-02")
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, -1)

	progress, err := s.repo.GoalsProgress(ctx, startOfMonth.Format("2006-01-02"), endOfMonth.Format("2006-01-02"), today)
	if err != nil {
		return nil, err
	}

	goals := []model.CommunityGoal{
		{
			ID:          "monthly-problems-goal",
			Title:       "Monthly Problem Challenge",
			Description: "Solve 100 problems as a community this month",
			Target:      100,
			Current:     progress.MonthlyProblems,
			StartDate:   startOfMonth.Format("2006-01-02"),
			EndDate:     endOfMonth.Format("2006-01-02"),
			Type:        "problems",
			IsActive:    true,
		},
		{
			ID:          "active-users-goal",
			Title:       "Community Engagement",
			Description: "Get 10 users active this month",
			Target:      10,
			Current:     progress.MonthlyActiveUsers,
			StartDate:   startOfMonth.Format("2006-01-02"),
			EndDate:     endOfMonth.Format("2006-01-02"),
			Type:        "users",
			IsActive:    true,
		},
		{
			ID:          "community-streak-goal",
			Title:       "Community Streak Challenge",
			Description: "Maintain a 30-day community streak",
			Target:      30,
			Current:     progress.StreakDays,
			StartDate:   now.AddDate(0, 0, -30).Format("2006-01-02"),
			EndDate:     now.AddDate(0, 0, 30).Format("2006-01-02"),
			Type:        "streak",
			IsActive:    true,
		},
	}

	s.goalsCache.Set("goals", goals)
	return goals, nil
}
