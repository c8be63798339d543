package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jungle-swimwear/ecommerce-api/models"
)

func testCarts(t *testing.T) *gormCarts {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Cart{}, &models.CartItem{}))
	return &gormCarts{db: db}
}

func cartCount(t *testing.T, carts *gormCarts) int64 {
	t.Helper()
	var n int64
	require.NoError(t, carts.db.Model(&models.Cart{}).Count(&n).Error)
	return n
}

func TestGetOrCreateReturnsOneCartPerUser(t *testing.T) {
	carts := testCarts(t)

	first, err := carts.GetOrCreate(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, first.Items)

	second, err := carts.GetOrCreate(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assert.EqualValues(t, 1, cartCount(t, carts))
}

// Two first accesses can both miss the lookup and insert concurrently; the
// conflict-tolerant insert hands the loser the winner's cart instead of a
// duplicate-key error.
func TestCreateCartLosingInsertRaceReturnsExistingCart(t *testing.T) {
	carts := testCarts(t)

	winner, err := carts.create(context.Background(), "user-1")
	require.NoError(t, err)

	loser, err := carts.create(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, loser.ID)

	assert.EqualValues(t, 1, cartCount(t, carts))
}
