package session

import (
	"context"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

// adminToken is the capability check guarding every administrative
// operation: a token must be present and the resolved user must carry the
// administrative role, otherwise the call is rejected locally without
// reaching the network.
func (s *Store) adminToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || !s.user.IsAdmin() {
		return "", ErrPermissionDenied
	}
	return s.token, nil
}

// FetchAllUsers lists every account.
func (s *Store) FetchAllUsers(ctx context.Context) ([]models.User, error) {
	token, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}
	return users, nil
}

// UpdateUser edits another account and returns the server-echoed result.
func (s *Store) UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	token, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	user, err := s.api.UpdateUser(ctx, token, userID, upd)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}
	return &user, nil
}

// FetchAllOrders lists every order across all users.
func (s *Store) FetchAllOrders(ctx context.Context) ([]models.Order, error) {
	token, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	orders, err := s.api.ListAllOrders(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to the given state and returns the
// server-echoed order.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	token, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	order, err := s.api.UpdateOrderStatus(ctx, token, orderID, status)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}
	return &order, nil
}

// AddMenuItem creates a menu entry and returns the server-echoed item.
func (s *Store) AddMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	token, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	saved, err := s.api.AddMenuItem(ctx, token, item)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}
	return &saved, nil
}

// UpdateMenuItem edits a menu entry and returns the server-echoed item.
func (s *Store) UpdateMenuItem(ctx context.Context, itemID string, item models.MenuItem) (*models.MenuItem, error) {
	token, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	saved, err := s.api.UpdateMenuItem(ctx, token, itemID, item)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}
	return &saved, nil
}

// DeleteMenuItem removes a menu entry.
func (s *Store) DeleteMenuItem(ctx context.Context, itemID string) error {
	token, err := s.adminToken()
	if err != nil {
		return err
	}
	if err := s.api.DeleteMenuItem(ctx, token, itemID); err != nil {
		s.observeAuthError(ctx, err)
		return err
	}
	return nil
}

// FetchContactMessages lists messages left through the public contact form.
func (s *Store) FetchContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	token, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	messages, err := s.api.ListContactMessages(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		return nil, err
	}
	return messages, nil
}
