package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
)

// cartTable satisfies CartChecker against the shopcarts table directly, so
// this package's tests do not import the cart domain.
type cartTable struct {
	db *gorm.DB
}

func (c cartTable) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Table("shopcarts").
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	gdb := setupProductTestDB(t)
	svc, err := NewService(ServiceParams{
		ProductRepo: NewRepository(gdb),
		Carts:       cartTable{db: gdb},
	})
	require.NoError(t, err)
	return svc, gdb
}

func sampleInput(userID, sku string) Input {
	return Input{
		UserID:    userID,
		ProductID: sku,
		Quantity:  2,
		Name:      "apples",
		Price:     decimal.NewFromFloat(1.25),
	}
}

func TestServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}

func TestServiceAddAndGet(t *testing.T) {
	svc, gdb := newTestService(t)
	seedCart(t, gdb, "alice")
	ctx := context.Background()

	created, err := svc.Add(ctx, sampleInput("alice", "sku-1"))
	require.NoError(t, err)
	assert.Equal(t, "sku-1", created.ProductID)

	product, err := svc.Get(ctx, "alice", "sku-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, product.ID)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(1.25)))
}

func TestServiceAddToMissingCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(context.Background(), sampleInput("ghost", "sku-1"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Shopcart with id 'ghost' was not found.", typed.Message())
}

func TestServiceGetMissingProduct(t *testing.T) {
	svc, gdb := newTestService(t)
	seedCart(t, gdb, "alice")

	_, err := svc.Get(context.Background(), "alice", "sku-9")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product with id sku-9 was not found in shopcart alice.", typed.Message())
}

func TestServiceListMissingCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), "ghost", nil, nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceListEmptyCart(t *testing.T) {
	svc, gdb := newTestService(t)
	seedCart(t, gdb, "alice")

	rows, err := svc.List(context.Background(), "alice", nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestServiceUpdatePreservesSurrogateID(t *testing.T) {
	svc, gdb := newTestService(t)
	seedCart(t, gdb, "alice")
	ctx := context.Background()

	created, err := svc.Add(ctx, sampleInput("alice", "sku-1"))
	require.NoError(t, err)

	input := sampleInput("alice", "sku-1")
	input.Quantity = 9
	input.Price = decimal.NewFromInt(3)

	updated, err := svc.Update(ctx, "alice", "sku-1", input)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, float64(9), updated.Quantity)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(3)))
}

func TestServiceUpdateMissingProduct(t *testing.T) {
	svc, gdb := newTestService(t)
	seedCart(t, gdb, "alice")

	_, err := svc.Update(context.Background(), "alice", "sku-9", sampleInput("alice", "sku-9"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteIdempotent(t *testing.T) {
	svc, gdb := newTestService(t)
	seedCart(t, gdb, "alice")
	ctx := context.Background()

	_, err := svc.Add(ctx, sampleInput("alice", "sku-1"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", "sku-1"))
	require.NoError(t, svc.Delete(ctx, "alice", "sku-1"))

	_, err = svc.Get(ctx, "alice", "sku-1")
	require.Error(t, err)
}
