package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"dsatracker/internal/common"
	"dsatracker/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// txStubDriver backs a *sql.DB whose transactions only track Commit and
// Rollback; the repositories are faked, so no statement ever runs.
type txStubDriver struct {
	lastConn *txStubConn
}

func (d *txStubDriver) Open(name string) (driver.Conn, error) {
	d.lastConn = &txStubConn{}
	return d.lastConn, nil
}

type txStubConn struct {
	commits   int
	rollbacks int
}

func (c *txStubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("unexpected statement on stub connection")
}

func (c *txStubConn) Close() error { return nil }

func (c *txStubConn) Begin() (driver.Tx, error) {
	return &txStubTx{conn: c}, nil
}

type txStubTx struct {
	conn *txStubConn
}

func (t *txStubTx) Commit() error {
	t.conn.commits++
	return nil
}

func (t *txStubTx) Rollback() error {
	t.conn.rollbacks++
	return nil
}

var txStub = &txStubDriver{}

func init() {
	sql.Register("txstub", txStub)
}

func newTxStubDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("txstub", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type fakeTopicRepo struct {
	topics     []model.Topic
	resolvedID int64
	lastName   string
}

func (f *fakeTopicRepo) List(ctx context.Context) ([]model.Topic, error) {
	return f.topics, nil
}

func (f *fakeTopicRepo) FindOrCreate(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	f.lastName = name
	return f.resolvedID, nil
}

func TestCreateProblemValidation(t *testing.T) {
	base := CreateProblemRequest{
		Platform: "leetcode", Name: "Two Sum", Link: "https://leetcode.com/two-sum",
		Topic: "Arrays", Difficulty: "Easy",
	}

	for name, mutate := range map[string]func(*CreateProblemRequest){
		"missing name":     func(r *CreateProblemRequest) { r.Name = "" },
		"missing topic":    func(r *CreateProblemRequest) { r.Topic = "" },
		"bogus difficulty": func(r *CreateProblemRequest) { r.Difficulty = "Brutal" },
	} {
		t.Run(name, func(t *testing.T) {
			repo := &fakeProblemRepo{}
			// Validation rejects before any transaction opens, so no DB
			// is needed here.
			svc := NewProblemService(nil, repo, &fakeTopicRepo{})

			req := base
			mutate(&req)
			err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, common.ErrBadRequest)
			assert.Empty(t, repo.inserted)
		})
	}
}

func TestCreateProblemResolvesTopicAndCommits(t *testing.T) {
	repo := &fakeProblemRepo{}
	topics := &fakeTopicRepo{resolvedID: 7}
	svc := NewProblemService(newTxStubDB(t), repo, topics)

	err := svc.Create(context.Background(), CreateProblemRequest{
		Platform: "leetcode", Name: "Two Sum", Link: "https://leetcode.com/two-sum",
		Topic: "Arrays", Difficulty: "Easy",
	})
	require.NoError(t, err)

	assert.Equal(t, "Arrays", topics.lastName)
	require.Len(t, repo.inserted, 1)
	got := repo.inserted[0]
	assert.Equal(t, "leetcode", got.Platform)
	assert.Equal(t, "Two Sum", got.Name)
	assert.Equal(t, int64(7), got.TopicID)
	assert.Equal(t, model.DifficultyEasy, got.Difficulty)

	assert.Equal(t, 1, txStub.lastConn.commits)
	assert.Equal(t, 0, txStub.lastConn.rollbacks)
}

func TestCreateProblemRollsBackOnInsertError(t *testing.T) {
	repo := &fakeProblemRepo{createErr: errors.New("insert failed")}
	svc := NewProblemService(newTxStubDB(t), repo, &fakeTopicRepo{resolvedID: 7})

	err := svc.Create(context.Background(), CreateProblemRequest{
		Name: "Two Sum", Topic: "Arrays", Difficulty: "Easy",
	})
	require.Error(t, err)

	assert.Equal(t, 0, txStub.lastConn.commits)
	assert.Equal(t, 1, txStub.lastConn.rollbacks)
}

func TestTopicsListPassThrough(t *testing.T) {
	topics := &fakeTopicRepo{topics: []model.Topic{{ID: 1, Name: "Arrays"}, {ID: 2, Name: "Graphs"}}}
	svc := NewProblemService(nil, &fakeProblemRepo{}, topics)

	got, err := svc.Topics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, topics.topics, got)
}
