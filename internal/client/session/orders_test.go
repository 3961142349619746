package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
	"github.com/dmitrijs2005/bitecart/internal/common"
)

func TestPlaceOrder_RequiresLogin(t *testing.T) {
	s, f, _ := newTestStore(t)

	_, err := s.PlaceOrder(context.Background(), models.OrderDetails{City: "Riga"})
	require.ErrorIs(t, err, ErrNotLoggedIn)
	require.Equal(t, 0, f.totalCalls())
}

func TestPlaceOrder_EmptyCart_NoNetworkCall(t *testing.T) {
	s, f, _ := newTestStore(t)
	loginAs(t, s, f, models.RoleUser)
	before := f.totalCalls()

	_, err := s.PlaceOrder(context.Background(), models.OrderDetails{City: "Riga"})
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Equal(t, before, f.totalCalls(), "precondition failures must not reach the server")
}

func TestPlaceOrder_Success(t *testing.T) {
	s, f, r := newTestStore(t)
	f.CartRet = []models.CartItem{
		{ItemID: "m1", Name: "Pizza", Price: 9.5, Quantity: 2},
		{ItemID: "m2", Name: "Cola", Price: 2, Quantity: 1},
	}
	loginAs(t, s, f, models.RoleUser)

	f.PlaceOrderRet = models.Order{ID: "o1", Status: models.OrderStatusPending, TotalPrice: 21}
	// The server reports the cart as emptied once the order lands.
	f.CartRet = nil
	f.OrdersRet = []models.Order{{ID: "o1", Status: models.OrderStatusPending}}

	order, err := s.PlaceOrder(context.Background(), models.OrderDetails{
		AddressLine1: "Brivibas iela 1",
		City:         "Riga",
		Pincode:      "LV-1010",
	})
	require.NoError(t, err)
	require.Equal(t, "o1", order.ID)

	// Total defaults to the cart subtotal: 2*9.5 + 1*2.
	require.InDelta(t, 21.0, f.LastOrderReq.TotalPrice, 1e-9)
	require.Len(t, f.LastOrderReq.Items, 2)
	require.Equal(t, "Riga", f.LastOrderReq.City)

	require.Empty(t, s.Cart())
	require.Len(t, s.Orders(), 1)

	last := s.LastOrder()
	require.NotNil(t, last)
	require.Equal(t, "30-40 minutes", last.EstimatedDelivery)
	require.Equal(t, "Brivibas iela 1", last.AddressLine1)
	_, perr := time.Parse(time.RFC3339, last.CreatedAt)
	require.NoError(t, perr, "snapshot timestamp must be RFC3339")

	require.True(t, r.has(common.StorageKeyLastOrder))
}

func TestPlaceOrder_ExplicitTotalWins(t *testing.T) {
	s, f, _ := newTestStore(t)
	f.CartRet = []models.CartItem{{ItemID: "m1", Price: 10, Quantity: 1}}
	loginAs(t, s, f, models.RoleUser)
	f.PlaceOrderRet = models.Order{ID: "o1"}

	_, err := s.PlaceOrder(context.Background(), models.OrderDetails{City: "Riga", TotalPrice: 12.5})
	require.NoError(t, err)
	require.InDelta(t, 12.5, f.LastOrderReq.TotalPrice, 1e-9)
}

func TestPlaceOrder_ServerError_KeepsCart(t *testing.T) {
	s, f, _ := newTestStore(t)
	f.CartRet = []models.CartItem{{ItemID: "m1", Price: 10, Quantity: 1}}
	loginAs(t, s, f, models.RoleUser)
	f.PlaceOrderErr = context.DeadlineExceeded

	_, err := s.PlaceOrder(context.Background(), models.OrderDetails{City: "Riga"})
	require.Error(t, err)
	require.Len(t, s.Cart(), 1, "a failed order must leave the cart intact")
	require.Nil(t, s.LastOrder())
}
