package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type counter struct {
	ID    uint `gorm:"primarykey"`
	Value int
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&counter{}))
	return db
}

func TestRunInTransaction_CommitAndRollback(t *testing.T) {
	db := setupDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	err := tm.RunInTransaction(ctx, func(ctx context.Context) error {
		assert.True(t, InTransaction(ctx))
		return GetTxFromContext(ctx, db).Create(&counter{Value: 1}).Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := GetTxFromContext(ctx, db).Create(&counter{Value: 2}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&counter{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunInTransaction_NestedJoinsOuter(t *testing.T) {
	db := setupDB(t)
	tm := NewTransactionManager(db)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		outer := GetTxFromContext(ctx, db)
		return tm.RunInTransaction(ctx, func(inner context.Context) error {
			assert.Same(t, outer, GetTxFromContext(inner, db))
			return errors.New("inner failure")
		})
	})
	assert.Error(t, err)
	assert.False(t, InTransaction(context.Background()))
}

func TestPaginate(t *testing.T) {
	db := setupDB(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, db.Create(&counter{Value: i}).Error)
	}

	var rows []counter
	require.NoError(t, db.Scopes(Paginate(1, 2)).Order("value ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Value)
	assert.Equal(t, 3, rows[1].Value)
}
