package session

import (
	"context"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

// refreshFavorites pulls the favorites list, degrading to empty on failure.
func (s *Store) refreshFavorites(ctx context.Context, token string) []models.FavoriteItem {
	items, err := s.api.GetFavorites(ctx, token)
	if err != nil {
		s.observeAuthError(ctx, err)
		s.log.Warn(ctx, "favorites refresh failed", "error", err)
		items = nil
	}

	s.mu.Lock()
	if s.token == token {
		s.favorites = items
	}
	s.mu.Unlock()
	return items
}

// RefreshFavorites re-reads the favorites list, soft-failing to empty.
func (s *Store) RefreshFavorites(ctx context.Context) []models.FavoriteItem {
	token := s.Token()
	if token == "" {
		return nil
	}
	return s.refreshFavorites(ctx, token)
}

// AddToFavorites posts the item and appends the server's echo, deduplicating
// by key: an already-present item leaves the list unchanged.
func (s *Store) AddToFavorites(ctx context.Context, item models.FavoriteItem) error {
	token := s.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	saved, err := s.api.AddFavorite(ctx, token, item)
	if err != nil {
		s.observeAuthError(ctx, err)
		return err
	}

	s.mu.Lock()
	exists := false
	for _, it := range s.favorites {
		if it.ItemID == saved.ItemID {
			exists = true
			break
		}
	}
	if !exists {
		s.favorites = append(s.favorites, saved)
	}
	s.mu.Unlock()
	return nil
}

// RemoveFromFavorites deletes the item on the server, then drops it locally.
func (s *Store) RemoveFromFavorites(ctx context.Context, itemID string) error {
	token := s.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	if err := s.api.RemoveFavorite(ctx, token, itemID); err != nil {
		s.observeAuthError(ctx, err)
		return err
	}

	s.mu.Lock()
	kept := s.favorites[:0]
	for _, it := range s.favorites {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	s.favorites = kept
	s.mu.Unlock()
	return nil
}
