package api

import (
	"context"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

// AuthResult is the payload returned by authentication endpoints that issue
// a bearer token.
type AuthResult struct {
	Token   string `json:"token"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Client is the transport contract to the ordering API. Implementations are
// stateless: the bearer token is passed per call and attached only when
// non-empty.
type Client interface {
	Close() error

	// Auth.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	VerifySignupOTP(ctx context.Context, email, otp string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) (string, error)
	ChangePassword(ctx context.Context, token string, change models.PasswordChange) (string, error)
	GetProfile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (string, error)

	// Cart.
	GetCart(ctx context.Context, token string) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, token string, item models.CartItem) (models.CartItem, error)
	UpdateCartItem(ctx context.Context, token string, item models.CartItem) (models.CartItem, error)
	RemoveCartItem(ctx context.Context, token, itemID string) error

	// Favorites.
	GetFavorites(ctx context.Context, token string) ([]models.FavoriteItem, error)
	AddFavorite(ctx context.Context, token string, item models.FavoriteItem) (models.FavoriteItem, error)
	RemoveFavorite(ctx context.Context, token, itemID string) error

	// Orders.
	GetOrders(ctx context.Context, token string) ([]models.Order, error)
	PlaceOrder(ctx context.Context, token string, req models.OrderRequest) (models.Order, error)

	// Menu (unauthenticated).
	GetMenu(ctx context.Context) ([]models.MenuItem, error)

	// Admin.
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	UpdateUser(ctx context.Context, token, userID string, upd models.UserUpdate) (models.User, error)
	ListAllOrders(ctx context.Context, token string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID string, status models.OrderStatus) (models.Order, error)
	AddMenuItem(ctx context.Context, token string, item models.MenuItem) (models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, token, itemID string, item models.MenuItem) (models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, token, itemID string) error
	ListContactMessages(ctx context.Context, token string) ([]models.ContactMessage, error)
}
