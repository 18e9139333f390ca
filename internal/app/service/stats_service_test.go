package service

import (
	"context"
	"testing"

	"dsatracker/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	aggregates model.UserStats
	activity   []model.ActivityPoint
	calendar   map[string]int
	current    int
	best       int
}

func (f *fakeStatsRepo) UserAggregates(ctx context.Context, user string) (*model.UserStats, error) {
	stats := f.aggregates
	return &stats, nil
}

func (f *fakeStatsRepo) ActivityLog(ctx context.Context, user string) ([]model.ActivityPoint, error) {
	return f.activity, nil
}

func (f *fakeStatsRepo) CalendarActivity(ctx context.Context, user string) (map[string]int, error) {
	return f.calendar, nil
}

func (f *fakeStatsRepo) Streak(ctx context.Context, user string) (int, int, error) {
	return f.current, f.best, nil
}

func (f *fakeStatsRepo) GlobalLeaderboard(ctx context.Context) ([]model.LeaderboardRow, error) {
	return nil, nil
}

func TestUserStatsAssemblesAllParts(t *testing.T) {
	repo := &fakeStatsRepo{
		aggregates: model.UserStats{Attempted: 20, Solved: 15, CompletionPercent: 75},
		activity:   []model.ActivityPoint{{Date: "2025-06-01", Count: 3}},
		calendar:   map[string]int{"2025-06-01": 3},
		current:    4,
		best:       9,
	}
	svc := NewStatsService(repo)

	stats, err := svc.UserStats(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 15, stats.Solved)
	assert.Equal(t, repo.activity, stats.ActivityLog)
	assert.Equal(t, repo.calendar, stats.CalendarActivity)
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, 9, stats.BestStreak)
}

// A user with no attempts serializes empty collections, not JSON null.
func TestUserStatsDefaultsEmptyCollections(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{})

	stats, err := svc.UserStats(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, stats.ActivityLog)
	assert.Empty(t, stats.ActivityLog)
	assert.NotNil(t, stats.CalendarActivity)
	assert.Empty(t, stats.CalendarActivity)
}
