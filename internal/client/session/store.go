package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bitecart/internal/client/api"
	"github.com/dmitrijs2005/bitecart/internal/client/models"
	"github.com/dmitrijs2005/bitecart/internal/client/storage"
	"github.com/dmitrijs2005/bitecart/internal/common"
	"github.com/dmitrijs2005/bitecart/internal/logging"
)

// Store owns the session state. Safe for concurrent use: joined refresh
// branches and user-driven operations may run at the same time.
type Store struct {
	mu sync.Mutex

	api  api.Client
	repo storage.Repository
	log  logging.Logger

	token     string
	user      *models.User
	cart      []models.CartItem
	favorites []models.FavoriteItem
	orders    []models.Order
	lastOrder *models.LastOrder
	loading   bool
}

// New returns an empty Store. The loading flag stays set until Hydrate has
// run, gating the first render.
func New(apiClient api.Client, repo storage.Repository, log logging.Logger) *Store {
	return &Store{api: apiClient, repo: repo, log: log, loading: true}
}

// Loading reports whether initial hydration is still in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the resolved profile, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Addresses = append([]models.Address(nil), s.user.Addresses...)
	return &u
}

// Cart returns a copy of the cart.
func (s *Store) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.cart...)
}

// Favorites returns a copy of the favorites list.
func (s *Store) Favorites() []models.FavoriteItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FavoriteItem(nil), s.favorites...)
}

// Orders returns a copy of the user's order history.
func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

// LastOrder returns a copy of the last placed order snapshot, or nil.
func (s *Store) LastOrder() *models.LastOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastOrder == nil {
		return nil
	}
	lo := *s.lastOrder
	lo.Items = append([]models.CartItem(nil), s.lastOrder.Items...)
	return &lo
}

// IsLoggedIn reports whether a session is active.
func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user.IsAdmin()
}

// FetchMenu is the sole unauthenticated read.
func (s *Store) FetchMenu(ctx context.Context) ([]models.MenuItem, error) {
	return s.api.GetMenu(ctx)
}

// clearLocked wipes all in-memory session fields. Caller holds s.mu.
func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	s.cart = nil
	s.favorites = nil
	s.orders = nil
	s.lastOrder = nil
}

// clearDurable removes the three persisted session keys.
func (s *Store) clearDurable(ctx context.Context) {
	for _, key := range []string{common.StorageKeyToken, common.StorageKeyUser, common.StorageKeyLastOrder} {
		if err := s.repo.Delete(ctx, key); err != nil {
			s.log.Error(ctx, "failed to remove stored session key", "key", key, "error", err)
		}
	}
}

// forceLogout clears the session in response to an observed 401. The token
// guard makes the side effects run exactly once even when several in-flight
// calls report the failure.
func (s *Store) forceLogout(ctx context.Context) {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.clearLocked()
	s.mu.Unlock()

	s.clearDurable(ctx)
	s.log.Warn(ctx, "session expired, logging out")
}

// observeAuthError inspects an operation error and forces a logout when the
// server rejected the token.
func (s *Store) observeAuthError(ctx context.Context, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		s.forceLogout(ctx)
	}
}

// persistSession mirrors the token and the user snapshot to durable storage
// in one transaction: the two keys are co-dependent and must land together.
func (s *Store) persistSession(ctx context.Context, token string, u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.repo.SetMany(ctx, map[string][]byte{
		common.StorageKeyToken: []byte(token),
		common.StorageKeyUser:  b,
	})
}

func (s *Store) persistUser(ctx context.Context, u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.StorageKeyUser, b)
}

func (s *Store) persistLastOrder(ctx context.Context, lo *models.LastOrder) error {
	b, err := json.Marshal(lo)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.StorageKeyLastOrder, b)
}

// refreshCollections pulls cart, favorites and orders together. Branches
// soft-fail individually so one broken endpoint cannot abort its siblings.
func (s *Store) refreshCollections(ctx context.Context, token string) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { s.refreshCart(gctx, token); return nil })
	g.Go(func() error { s.refreshFavorites(gctx, token); return nil })
	g.Go(func() error { s.refreshOrders(gctx, token); return nil })
	_ = g.Wait()
}
