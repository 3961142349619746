package session

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

// estimatedDeliveryLabel is the fixed estimate attached to a freshly placed
// order's local snapshot.
const estimatedDeliveryLabel = "30-40 minutes"

// refreshOrders pulls the order history, degrading to empty on failure.
func (s *Store) refreshOrders(ctx context.Context, token string) []models.Order {
	orders, err := s.api.GetOrders(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		s.log.Warn(ctx, "orders refresh failed", "error", err)
		orders = nil
	}

	s.mu.Lock()
	if s.token == token {
		s.orders = orders
	}
	s.mu.Unlock()
	return orders
}

// RefreshOrders re-reads the order history, soft-failing to empty.
func (s *Store) RefreshOrders(ctx context.Context) []models.Order {
	token := s.Token()
	if token == "" {
		return nil
	}
	return s.refreshOrders(ctx, token)
}

// PlaceOrder submits the current cart as a new order. Preconditions, checked
// before any network call: a token is present and the cart is non-empty.
// On success the order is appended to the history, a last-order snapshot is
// built and persisted, the cart is cleared locally, and cart and orders are
// refreshed from the server.
func (s *Store) PlaceOrder(ctx context.Context, details models.OrderDetails) (*models.Order, error) {
	s.mu.Lock()
	token := s.token
	cart := append([]models.CartItem(nil), s.cart...)
	s.mu.Unlock()

	if token == "" {
		return nil, ErrNotLoggedIn
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]models.CartItem, len(cart))
	for i, it := range cart {
		items[i] = models.CartItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}

	total := details.TotalPrice
	if total == 0 {
		total = models.CartSubtotal(cart)
	}

	req := models.OrderRequest{
		AddressLine1: details.AddressLine1,
		AddressLine2: details.AddressLine2,
		City:         details.City,
		Pincode:      details.Pincode,
		Items:        items,
		TotalPrice:   total,
	}

	saved, err := s.api.PlaceOrder(ctx, token, req)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}

	last := models.LastOrder{Order: saved, EstimatedDelivery: estimatedDeliveryLabel}
	last.AddressLine1 = details.AddressLine1
	last.AddressLine2 = details.AddressLine2
	last.City = details.City
	last.Pincode = details.Pincode
	last.TotalPrice = total
	last.Items = items
	last.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.persistLastOrder(ctx, &last); err != nil {
		s.log.Warn(ctx, "failed to persist last order", "error", err)
	}

	s.mu.Lock()
	if s.token == token {
		s.orders = append(s.orders, saved)
		s.lastOrder = &last
		s.cart = nil
	}
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { s.refreshCart(gctx, token); return nil })
	g.Go(func() error { s.refreshOrders(gctx, token); return nil })
	_ = g.Wait()

	s.log.Info(ctx, "order placed", "order_id", saved.ID, "total", total)
	return &saved, nil
}
