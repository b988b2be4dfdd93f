package record

import (
	"context"
	"testing"
	"time"

	"truecraft/internal/domain/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateOrder_PersistsItemsInOneUnitOfWork(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	orderID, ok := s.CreateOrder(ctx, store.OrderInput{
		CustomerName:    "Bo",
		CustomerEmail:   "bo@example.com",
		ShippingAddress: "1 Main St",
		TotalAmount:     50.00,
		Items: []store.OrderItemInput{
			{ProductID: &productID, Quantity: 2, PricePerItem: 25.00, TotalPrice: 50.00},
		},
	})
	require.True(t, ok)
	assert.Positive(t, orderID)

	orders := s.ListOrders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, "pending", orders[0].Status)
	assert.Equal(t, 50.00, orders[0].TotalAmount)
	assert.Equal(t, int64(1), orders[0].ItemCount)
	assert.Equal(t, []string{"Bowl"}, orders[0].ProductNames)
}

func TestStore_ListOrders_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, ok := s.CreateOrder(ctx, store.OrderInput{CustomerName: "First", TotalAmount: 10})
	require.True(t, ok)
	time.Sleep(5 * time.Millisecond)
	_, ok = s.CreateOrder(ctx, store.OrderInput{CustomerName: "Second", TotalAmount: 20})
	require.True(t, ok)

	orders := s.ListOrders(ctx)
	require.Len(t, orders, 2)
	assert.Equal(t, "Second", orders[0].CustomerName)
	assert.Equal(t, "First", orders[1].CustomerName)
	assert.Zero(t, orders[0].ItemCount)
}

func TestStore_ListOrders_SurvivesProductDeletion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	_, ok := s.CreateOrder(ctx, store.OrderInput{
		CustomerName: "Bo",
		TotalAmount:  25.00,
		Items: []store.OrderItemInput{
			{ProductID: &productID, Quantity: 1, PricePerItem: 25.00, TotalPrice: 25.00},
		},
	})
	require.True(t, ok)

	require.True(t, s.DeleteProduct(ctx, productID))

	orders := s.ListOrders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), orders[0].ItemCount)
	assert.Empty(t, orders[0].ProductNames)
}
