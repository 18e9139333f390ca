package service

import (
	"context"
	"testing"
	"time"

	"dsatracker/internal/common"
	"dsatracker/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommunityRepo struct {
	statsCalls int
	stats      model.CommunityStats

	activityStart string
	activityEnd   string
	activityDays  int

	boardLimit int
	solved     []model.RankedEntry
	streaks    []model.RankedEntry
	weekly     []model.RankedEntry

	feedSince string
	feedItems []model.FeedItem

	progress model.GoalsProgress
}

func (f *fakeCommunityRepo) Stats(ctx context.Context) (*model.CommunityStats, error) {
	f.statsCalls++
	stats := f.stats
	return &stats, nil
}

func (f *fakeCommunityRepo) Activity(ctx context.Context, startDate, endDate string, days int) ([]model.ActivityDay, error) {
	f.activityStart, f.activityEnd, f.activityDays = startDate, endDate, days
	return []model.ActivityDay{}, nil
}

func (f *fakeCommunityRepo) TotalSolvedBoard(ctx context.Context, limit int) ([]model.RankedEntry, error) {
	f.boardLimit = limit
	return f.solved, nil
}

func (f *fakeCommunityRepo) CurrentStreakBoard(ctx context.Context, limit int) ([]model.RankedEntry, error) {
	f.boardLimit = limit
	return f.streaks, nil
}

func (f *fakeCommunityRepo) WeeklyActivityBoard(ctx context.Context, limit int) ([]model.RankedEntry, error) {
	f.boardLimit = limit
	return f.weekly, nil
}

func (f *fakeCommunityRepo) Feed(ctx context.Context, since string, limit int) ([]model.FeedItem, error) {
	f.feedSince = since
	return f.feedItems, nil
}

func (f *fakeCommunityRepo) GoalsProgress(ctx context.Context, startOfMonth, endOfMonth, today string) (*model.GoalsProgress, error) {
	progress := f.progress
	return &progress, nil
}

func newCommunityService(repo *fakeCommunityRepo) *CommunityService {
	svc := NewCommunityService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCommunityStatsServedFromCache(t *testing.T) {
	repo := &fakeCommunityRepo{stats: model.CommunityStats{TotalProblems: 120}}
	svc := newCommunityService(repo)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, first.TotalProblems)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.statsCalls, "second read should hit the cache")
}

func TestActivityDefaultsToCurrentYear(t *testing.T) {
	repo := &fakeCommunityRepo{}
	svc := newCommunityService(repo)

	_, err := svc.Activity(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", repo.activityStart)
	assert.Equal(t, "2025-12-31", repo.activityEnd)
	assert.Equal(t, 365, repo.activityDays)
}

func TestActivityExplicitYear(t *testing.T) {
	repo := &fakeCommunityRepo{}
	svc := newCommunityService(repo)

	_, err := svc.Activity(context.Background(), 2024, 30)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", repo.activityStart)
	assert.Equal(t, "2024-12-31", repo.activityEnd)
	assert.Equal(t, 30, repo.activityDays)
}

func TestLeaderboardsDefaultsToAllBoards(t *testing.T) {
	repo := &fakeCommunityRepo{
		solved:  []model.RankedEntry{{UserID: 1, Username: "alice", Value: 50, Rank: 1}},
		streaks: []model.RankedEntry{{UserID: 2, Username: "bob", Value: 12, Rank: 1}},
		weekly:  []model.RankedEntry{{UserID: 3, Username: "carol", Value: 9, Rank: 1}},
	}
	svc := newCommunityService(repo)

	payload, err := svc.Leaderboards(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.boardLimit)

	boards, ok := payload.(model.CommunityLeaderboards)
	require.True(t, ok)
	assert.Equal(t, repo.solved, boards.TotalSolved)
	assert.Equal(t, repo.streaks, boards.CurrentStreak)
	assert.Equal(t, repo.weekly, boards.WeeklyActivity)
}

func TestLeaderboardsSingleBoard(t *testing.T) {
	repo := &fakeCommunityRepo{
		solved: []model.RankedEntry{{UserID: 1, Username: "alice", Value: 50, Rank: 1}},
	}
	svc := newCommunityService(repo)

	payload, err := svc.Leaderboards(context.Background(), BoardTypeTotalSolved, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.boardLimit)
	assert.Equal(t, repo.solved, payload)
}

func TestLeaderboardsRejectsUnknownType(t *testing.T) {
	svc := newCommunityService(&fakeCommunityRepo{})

	_, err := svc.Leaderboards(context.Background(), "mostVerboseNotes", 10)
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestFeedDefaultsAndAssignsIDs(t *testing.T) {
	repo := &fakeCommunityRepo{
		feedItems: []model.FeedItem{
			{UserID: 1, Username: "alice", Type: model.FeedTypeProblemSolved, Timestamp: "2025-03-14"},
			{UserID: 2, Username: "bob", Type: model.FeedTypeStreakMilestone, Timestamp: "2025-03-13"},
		},
	}
	svc := newCommunityService(repo)

	items, err := svc.Feed(context.Background(), 0, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-08", repo.feedSince, "since defaults to seven days back")

	require.Len(t, items, 2)
	assert.Equal(t, "problem_solved-1-2025-03-14-0", items[0].ID)
	assert.Equal(t, "streak_milestone-2-2025-03-13-1", items[1].ID)
}

func TestGoalsShaping(t *testing.T) {
	repo := &fakeCommunityRepo{
		progress: model.GoalsProgress{MonthlyProblems: 42, MonthlyActiveUsers: 7, StreakDays: 12},
	}
	svc := newCommunityService(repo)

	goals, err := svc.Goals(context.Background())
	require.NoError(t, err)
	require.Len(t, goals, 3)

	problems, users, streak := goals[0], goals[1], goals[2]

	assert.Equal(t, "monthly-problems-goal", problems.ID)
	assert.Equal(t, 100, problems.Target)
	assert.Equal(t, 42, problems.Current)
	assert.Equal(t, "2025-03-01", problems.StartDate)
	assert.Equal(t, "2025-03-31", problems.EndDate)

	assert.Equal(t, "active-users-goal", users.ID)
	assert.Equal(t, 10, users.Target)
	assert.Equal(t, 7, users.Current)

	assert.Equal(t, "community-streak-goal", streak.ID)
	assert.Equal(t, 30, streak.Target)
	assert.Equal(t, 12, streak.Current)
	assert.True(t, streak.IsActive)
}
