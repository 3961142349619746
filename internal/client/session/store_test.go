package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bitecart/internal/client/api"
	"github.com/dmitrijs2005/bitecart/internal/client/models"
	"github.com/dmitrijs2005/bitecart/internal/common"
	"github.com/dmitrijs2005/bitecart/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

// fakeRepo is an in-memory storage.Repository.
type fakeRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{data: map[string][]byte{}, deletes: map[string]int{}}
}

func (r *fakeRepo) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *fakeRepo) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = append([]byte(nil), value...)
	return nil
}

func (r *fakeRepo) SetMany(ctx context.Context, entries map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range entries {
		r.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	r.deletes[key]++
	return nil
}

func (r *fakeRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = map[string][]byte{}
	return nil
}

func (r *fakeRepo) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.data[key]
	return ok
}

func (r *fakeRepo) deleteCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deletes[key]
}

// fakeAPI implements api.Client for unit tests.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	LoginRet  *api.AuthResult
	LoginErr  error
	VerifyRet *api.AuthResult
	VerifyErr error

	RegisterMsg string
	RegisterErr error

	ProfileRet *models.User
	ProfileErr error

	UpdateProfileMsg string
	UpdateProfileErr error

	ChangePasswordMsg string
	ChangePasswordErr error

	ForgotMsg string
	ForgotErr error
	ResetMsg  string
	ResetErr  error

	CartRet []models.CartItem
	CartErr error

	AddCartRet models.CartItem
	AddCartErr error

	UpdateCartRet models.CartItem
	UpdateCartErr error

	RemoveCartErr error

	FavoritesRet []models.FavoriteItem
	FavoritesErr error
	AddFavRet    models.FavoriteItem
	AddFavErr    error
	RemoveFavErr error

	OrdersRet []models.Order
	OrdersErr error

	PlaceOrderRet models.Order
	PlaceOrderErr error
	LastOrderReq  models.OrderRequest

	MenuRet []models.MenuItem
	MenuErr error

	UsersRet       []models.User
	UsersErr       error
	UpdateUserRet  models.User
	UpdateUserErr  error
	AllOrdersRet   []models.Order
	AllOrdersErr   error
	UpdateOrderRet models.Order
	UpdateOrderErr error
	AddMenuRet     models.MenuItem
	AddMenuErr     error
	UpdateMenuRet  models.MenuItem
	UpdateMenuErr  error
	DeleteMenuErr  error
	ContactRet     []models.ContactMessage
	ContactErr     error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	f.record("Login")
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (string, error) {
	f.record("Register")
	return f.RegisterMsg, f.RegisterErr
}

func (f *fakeAPI) VerifySignupOTP(ctx context.Context, email, otp string) (*api.AuthResult, error) {
	f.record("VerifySignupOTP")
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeAPI) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.record("ForgotPassword")
	return f.ForgotMsg, f.ForgotErr
}

func (f *fakeAPI) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) (string, error) {
	f.record("ResetPassword")
	return f.ResetMsg, f.ResetErr
}

func (f *fakeAPI) ChangePassword(ctx context.Context, token string, change models.PasswordChange) (string, error) {
	f.record("ChangePassword")
	return f.ChangePasswordMsg, f.ChangePasswordErr
}

func (f *fakeAPI) GetProfile(ctx context.Context, token string) (*models.User, error) {
	f.record("GetProfile")
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	if f.ProfileRet == nil {
		return nil, common.ErrorNotFound
	}
	u := *f.ProfileRet
	return &u, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (string, error) {
	f.record("UpdateProfile")
	return f.UpdateProfileMsg, f.UpdateProfileErr
}

func (f *fakeAPI) GetCart(ctx context.Context, token string) ([]models.CartItem, error) {
	f.record("GetCart")
	return append([]models.CartItem(nil), f.CartRet...), f.CartErr
}

func (f *fakeAPI) AddCartItem(ctx context.Context, token string, item models.CartItem) (models.CartItem, error) {
	f.record("AddCartItem")
	if f.AddCartErr != nil {
		return models.CartItem{}, f.AddCartErr
	}
	if f.AddCartRet.ItemID != "" {
		return f.AddCartRet, nil
	}
	return item, nil
}

func (f *fakeAPI) UpdateCartItem(ctx context.Context, token string, item models.CartItem) (models.CartItem, error) {
	f.record("UpdateCartItem")
	if f.UpdateCartErr != nil {
		return models.CartItem{}, f.UpdateCartErr
	}
	if f.UpdateCartRet.ItemID != "" {
		return f.UpdateCartRet, nil
	}
	return item, nil
}

func (f *fakeAPI) RemoveCartItem(ctx context.Context, token, itemID string) error {
	f.record("RemoveCartItem")
	return f.RemoveCartErr
}

func (f *fakeAPI) GetFavorites(ctx context.Context, token string) ([]models.FavoriteItem, error) {
	f.record("GetFavorites")
	return append([]models.FavoriteItem(nil), f.FavoritesRet...), f.FavoritesErr
}

func (f *fakeAPI) AddFavorite(ctx context.Context, token string, item models.FavoriteItem) (models.FavoriteItem, error) {
	f.record("AddFavorite")
	if f.AddFavErr != nil {
		return models.FavoriteItem{}, f.AddFavErr
	}
	if f.AddFavRet.ItemID != "" {
		return f.AddFavRet, nil
	}
	return item, nil
}

func (f *fakeAPI) RemoveFavorite(ctx context.Context, token, itemID string) error {
	f.record("RemoveFavorite")
	return f.RemoveFavErr
}

func (f *fakeAPI) GetOrders(ctx context.Context, token string) ([]models.Order, error) {
	f.record("GetOrders")
	return append([]models.Order(nil), f.OrdersRet...), f.OrdersErr
}

func (f *fakeAPI) PlaceOrder(ctx context.Context, token string, req models.OrderRequest) (models.Order, error) {
	f.record("PlaceOrder")
	f.mu.Lock()
	f.LastOrderReq = req
	f.mu.Unlock()
	return f.PlaceOrderRet, f.PlaceOrderErr
}

func (f *fakeAPI) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	f.record("GetMenu")
	return f.MenuRet, f.MenuErr
}

func (f *fakeAPI) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	f.record("ListUsers")
	return f.UsersRet, f.UsersErr
}

func (f *fakeAPI) UpdateUser(ctx context.Context, token, userID string, upd models.UserUpdate) (models.User, error) {
	f.record("UpdateUser")
	return f.UpdateUserRet, f.UpdateUserErr
}

func (f *fakeAPI) ListAllOrders(ctx context.Context, token string) ([]models.Order, error) {
	f.record("ListAllOrders")
	return f.AllOrdersRet, f.AllOrdersErr
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, token, orderID string, status models.OrderStatus) (models.Order, error) {
	f.record("UpdateOrderStatus")
	return f.UpdateOrderRet, f.UpdateOrderErr
}

func (f *fakeAPI) AddMenuItem(ctx context.Context, token string, item models.MenuItem) (models.MenuItem, error) {
	f.record("AddMenuItem")
	return f.AddMenuRet, f.AddMenuErr
}

func (f *fakeAPI) UpdateMenuItem(ctx context.Context, token, itemID string, item models.MenuItem) (models.MenuItem, error) {
	f.record("UpdateMenuItem")
	return f.UpdateMenuRet, f.UpdateMenuErr
}

func (f *fakeAPI) DeleteMenuItem(ctx context.Context, token, itemID string) error {
	f.record("DeleteMenuItem")
	return f.DeleteMenuErr
}

func (f *fakeAPI) ListContactMessages(ctx context.Context, token string) ([]models.ContactMessage, error) {
	f.record("ListContactMessages")
	return f.ContactRet, f.ContactErr
}

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) (*Store, *fakeAPI, *fakeRepo) {
	t.Helper()
	f := newFakeAPI()
	r := newFakeRepo()
	return New(f, r, testLogger()), f, r
}

// loginAs puts the store into a logged-in state through the regular flow.
func loginAs(t *testing.T, s *Store, f *fakeAPI, role models.Role) {
	t.Helper()
	f.LoginRet = &api.AuthResult{Token: "tok-1", Name: "Alice"}
	f.ProfileRet = &models.User{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: role}
	require.NoError(t, s.Login(context.Background(), "alice@example.com", "pw"))
}

// ---- tests ----

func TestNew_StartsLoadingAndEmpty(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.True(t, s.Loading())
	require.False(t, s.IsLoggedIn())
	require.Nil(t, s.User())
	require.Empty(t, s.Cart())
}

func TestStore_Accessors_ReturnCopies(t *testing.T) {
	s, f, _ := newTestStore(t)
	f.CartRet = []models.CartItem{{ItemID: "m1", Name: "Pizza", Price: 10, Quantity: 1}}
	loginAs(t, s, f, models.RoleUser)

	cart := s.Cart()
	require.Len(t, cart, 1)
	cart[0].Quantity = 99

	require.Equal(t, 1, s.Cart()[0].Quantity, "mutating the returned slice must not leak into state")
}
