package handler

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dsatracker/internal/app/service"
	"dsatracker/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A minimal driver so ProblemService.Create can open and commit a
// transaction; the stub repositories never execute a statement.
type noopTxDriver struct{}

func (noopTxDriver) Open(name string) (driver.Conn, error) { return noopTxConn{}, nil }

type noopTxConn struct{}

func (noopTxConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("unexpected statement on stub connection")
}
func (noopTxConn) Close() error              { return nil }
func (noopTxConn) Begin() (driver.Tx, error) { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

func init() {
	sql.Register("nooptx", noopTxDriver{})
}

type stubTopicRepo struct {
	topics []model.Topic
}

func (s *stubTopicRepo) List(ctx context.Context) ([]model.Topic, error) {
	return s.topics, nil
}

func (s *stubTopicRepo) FindOrCreate(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	return 1, nil
}

func newProblemRouter(t *testing.T, topics *stubTopicRepo) http.Handler {
	t.Helper()
	db, err := sql.Open("nooptx", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewProblemService(db, &stubProblemRepo{}, topics)
	h := NewProblemHandler(svc)

	r := chi.NewRouter()
	r.Route("/problems", h.RegisterRoutes)
	r.Route("/topics", h.RegisterTopicRoutes)
	return r
}

func TestCreateProblemSuccess(t *testing.T) {
	router := newProblemRouter(t, &stubTopicRepo{})

	body := `{"platform": "leetcode", "name": "Two Sum", "link": "https://leetcode.com/two-sum", "topic": "Arrays", "difficulty": "Easy"}`
	req := httptest.NewRequest(http.MethodPost, "/problems", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
}

func TestCreateProblemInvalidDifficulty(t *testing.T) {
	router := newProblemRouter(t, &stubTopicRepo{})

	body := `{"name": "Two Sum", "topic": "Arrays", "difficulty": "Brutal"}`
	req := httptest.NewRequest(http.MethodPost, "/problems", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "bad request"}`, rec.Body.String())
}

func TestListProblemsReturnsEmptyArray(t *testing.T) {
	router := newProblemRouter(t, &stubTopicRepo{})

	req := httptest.NewRequest(http.MethodGet, "/problems", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListTopics(t *testing.T) {
	router := newProblemRouter(t, &stubTopicRepo{
		topics: []model.Topic{{ID: 1, Name: "Arrays"}, {ID: 2, Name: "Graphs"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id": 1, "name": "Arrays"}, {"id": 2, "name": "Graphs"}]`, rec.Body.String())
}
