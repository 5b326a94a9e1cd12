package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCocktailsUpdateRollsBackWhenInsertFails(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewCocktails(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "cocktails"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "ingredients"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "components"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "quantity", "ingredient_id", "cocktail_id"}).
			AddRow(10, now, now, 50, 1, 1).
			AddRow(11, now, now, 30, 2, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cocktails" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "components"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "components"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, _, err := store.Update(context.Background(), 1, CocktailInput{
		Name:        "Scenario A",
		Description: "Rolled back",
		Components:  Desired{1: 50, 3: 10},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, "insert components", persistenceErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCocktailsUpdateValidationNeverTouchesStore(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewCocktails(db)

	_, _, err := store.Update(context.Background(), 1, CocktailInput{Name: "Ok name", Description: "Fine"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCocktailsCreateRollsBackWhenComponentInsertFails(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewCocktails(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "ingredients"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "cocktails"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "components"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	created, err := store.Create(context.Background(), CocktailInput{
		Name:        "Gimlet",
		Description: "Rolled back",
		Components:  Desired{1: 50, 2: 15},
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, ErrPersistence)

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, "insert components", persistenceErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}
