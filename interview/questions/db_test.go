package questions

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func TestLoadDBNormalizes(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectQuestionsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"text"}).AddRow("Q1").AddRow("  ").AddRow("Q2").AddRow("Q1"))

	list, err := LoadDB(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2"}, list.Items())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDBEmptyTable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectQuestionsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"text"}))

	_, err := LoadDB(context.Background(), db)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSeedSkipsPopulatedTable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(countQuestionsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := Seed(context.Background(), db, New([]string{"Q1"}))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedInsertsInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(countQuestionsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertQuestionSQL)).WithArgs(0, "Q1").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertQuestionSQL)).WithArgs(1, "Q2").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	n, err := Seed(context.Background(), db, New([]string{"Q1", "Q2"}))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilDatabase(t *testing.T) {
	_, err := LoadDB(context.Background(), nil)
	assert.Error(t, err)
	_, err = Seed(context.Background(), nil, New([]string{"Q1"}))
	assert.Error(t, err)
}
