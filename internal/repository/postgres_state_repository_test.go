package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-tracker/internal/models"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
)

func newStateMock(t *testing.T) (*PostgresStateRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	repo := NewPostgresStateRepository(sqlx.NewDb(db, "sqlmock"))
	repo.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }
	return repo, mock, func() { db.Close() }
}

func TestPostgresStateRepositoryEnsureSchema(t *testing.T) {
	repo, mock, cleanup := newStateMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS tracker_state")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositoryGet(t *testing.T) {
	repo, mock, cleanup := newStateMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM tracker_state WHERE key = $1")).
		WithArgs(models.KeySections).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":"sec1","name":"Grade 5 - Section A"}]`)))

	var sections []models.Section
	require.NoError(t, repo.Get(context.Background(), models.KeySections, &sections))
	assert.Equal(t, []models.Section{{ID: "sec1", Name: "Grade 5 - Section A"}}, sections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositoryGetMissing(t *testing.T) {
	repo, mock, cleanup := newStateMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM tracker_state WHERE key = $1")).
		WithArgs(models.KeyAttendance).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	var log models.AttendanceLog
	err := repo.Get(context.Background(), models.KeyAttendance, &log)
	assert.True(t, errors.Is(err, appErrors.ErrKeyNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositorySet(t *testing.T) {
	repo, mock, cleanup := newStateMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO tracker_state").
		WithArgs(models.KeyAttendance, []byte(`{"2024-03-01":{"s1":"present"}}`), time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Set(context.Background(), models.KeyAttendance, models.AttendanceLog{"2024-03-01": {"s1": models.AttendanceStatusPresent}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateRepositorySetFailure(t *testing.T) {
	repo, mock, cleanup := newStateMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO tracker_state").WillReturnError(errors.New("disk full"))

	err := repo.Set(context.Background(), models.KeyStudents, []models.Student{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
