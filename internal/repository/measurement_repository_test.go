package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diet-tracker-api/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return db, mock
}

func TestMeasurementRepository_ListScopesToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "weight"}).
		AddRow(2, 7, 81).
		AddRow(1, 7, 80)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `measurements` WHERE user_id = ? ORDER BY id DESC")).
		WithArgs(7).
		WillReturnRows(rows)

	got, total, err := repo.List(ListFilter{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeasurementRepository_ListAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db)

	mock.ExpectQuery(`^SELECT \* FROM ` + "`measurements`" + ` ORDER BY id DESC$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(3, 1).AddRow(2, 9))

	got, total, err := repo.List(ListFilter{UserID: 7, All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeasurementRepository_ListPaginated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeasurementRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `measurements` WHERE user_id = ?")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `measurements` WHERE user_id = ? ORDER BY id DESC LIMIT")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(25, 7))

	got, total, err := repo.List(ListFilter{
		UserID:     7,
		Pagination: &utils.PaginationParams{Page: 2, Limit: 20, Offset: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(45), total)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
