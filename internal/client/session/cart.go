package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
	"github.com/dmitrijs2005/bitecart/internal/common"
)

// refreshCart pulls the cart from the server, degrading to empty on failure.
// The result is applied only while the same token is still active.
func (s *Store) refreshCart(ctx context.Context, token string) []models.CartItem {
	items, err := s.api.GetCart(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		s.log.Warn(ctx, "cart refresh failed", "error", err)
		items = nil
	}

	s.mu.Lock()
	if s.token == token {
		s.cart = items
	}
	s.mu.Unlock()
	return items
}

// RefreshCart re-reads the cart, soft-failing to the empty list.
func (s *Store) RefreshCart(ctx context.Context) []models.CartItem {
	token := s.Token()
	if token == "" {
		return nil
	}
	return s.refreshCart(ctx, token)
}

// AddToCart posts the item. The server is the merge authority: when the
// returned item's key matches an existing entry that entry is replaced, never
// duplicated.
func (s *Store) AddToCart(ctx context.Context, item models.CartItem) error {
	token := s.Token()
	if token == "" {
		return ErrNotLoggedIn
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	saved, err := s.api.AddCartItem(ctx, token, item)
	if err != nil {
		s.observeAuthError(ctx, err)
		return err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.cart {
		if s.cart[i].ItemID == saved.ItemID {
			s.cart[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		s.cart = append(s.cart, saved)
	}
	s.mu.Unlock()
	return nil
}

// RemoveFromCart deletes the item on the server, then drops it locally.
func (s *Store) RemoveFromCart(ctx context.Context, itemID string) error {
	token := s.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	if err := s.api.RemoveCartItem(ctx, token, itemID); err != nil {
		s.observeAuthError(ctx, err)
		return err
	}

	s.mu.Lock()
	kept := s.cart[:0]
	for _, it := range s.cart {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	s.cart = kept
	s.mu.Unlock()
	return nil
}

// UpdateCartItem sets the target quantity for an item already in the cart.
// A quantity below 1 delegates to removal instead of issuing an update.
func (s *Store) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	token := s.Token()
	if token == "" {
		return ErrNotLoggedIn
	}
	if quantity < 1 {
		return s.RemoveFromCart(ctx, itemID)
	}

	s.mu.Lock()
	var item models.CartItem
	found := false
	for _, it := range s.cart {
		if it.ItemID == itemID {
			item = it
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("cart item %s: %w", itemID, common.ErrorNotFound)
	}

	item.Quantity = quantity
	saved, err := s.api.UpdateCartItem(ctx, token, item)
	if err != nil {
		s.observeAuthError(ctx, err)
		return err
	}

	s.mu.Lock()
	for i := range s.cart {
		if s.cart[i].ItemID == saved.ItemID {
			s.cart[i] = saved
			break
		}
	}
	s.mu.Unlock()
	return nil
}
