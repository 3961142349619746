package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
	"github.com/dmitrijs2005/bitecart/internal/common"
	"github.com/dmitrijs2005/bitecart/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBodySize caps how much of an error body is read for a message.
const maxErrorBodySize = 64 << 10

const menuForbiddenMessage = "Access to menu is forbidden. Please try again later."

// StatusError is a non-success HTTP response translated into a domain error.
// Its text is the server-supplied message when one could be extracted, so it
// can be shown to the user as is. Use errors.Is with ErrUnauthorized or
// ErrForbidden to match the authorization cases.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// HTTPClient implements Client over the REST/JSON API. It issues exactly one
// request per operation: no retries, no internal timeouts. Deadlines are the
// caller's business via ctx.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		log:     log,
	}
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	return req, nil
}

// doJSON performs one request and decodes a JSON response into out (skipped
// when out is nil). fallback is the user-facing message used when the error
// body carries none.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, body, out any, fallback string) error {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(resp, fallback)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// statusError extracts a human-readable message from a non-2xx response:
// a structured {"message": …} payload first, then the raw body text, then
// the fallback, then a generic label with the status code.
func (c *HTTPClient) statusError(resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	msg := ""
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		msg = payload.Message
	} else if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		msg = text
	}
	if msg == "" {
		msg = fallback
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	return &StatusError{Status: resp.StatusCode, Message: msg}
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body, &res, "Invalid email or password"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var res messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", body, &res, "Signup failed"); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *HTTPClient) VerifySignupOTP(ctx context.Context, email, otp string) (*AuthResult, error) {
	body := map[string]string{"email": email, "otp": otp}
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-signup-otp", "", body, &res, "OTP verification failed"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var res messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/forgot-password", "", body, &res, "Failed to send OTP"); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) (string, error) {
	body := map[string]string{
		"email":           email,
		"otp":             otp,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	var res messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/reset-password", "", body, &res, "Password reset failed"); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, token string, change models.PasswordChange) (string, error) {
	var res messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/change-password", token, change, &res, "Failed to change password"); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", token, nil, &user, "Failed to fetch profile"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (string, error) {
	var res messageResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/auth/profile", token, upd, &res, "Failed to update profile"); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *HTTPClient) GetCart(ctx context.Context, token string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/cart", token, nil, &items, "Failed to fetch cart"); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) AddCartItem(ctx context.Context, token string, item models.CartItem) (models.CartItem, error) {
	var saved models.CartItem
	if err := c.doJSON(ctx, http.MethodPost, "/api/cart", token, item, &saved, "Failed to add to cart"); err != nil {
		return models.CartItem{}, err
	}
	return saved, nil
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, token string, item models.CartItem) (models.CartItem, error) {
	var saved models.CartItem
	if err := c.doJSON(ctx, http.MethodPut, "/api/cart", token, item, &saved, "Failed to update cart item"); err != nil {
		return models.CartItem{}, err
	}
	return saved, nil
}

func (c *HTTPClient) RemoveCartItem(ctx context.Context, token, itemID string) error {
	path := "/api/cart/" + url.PathEscape(itemID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil, "Failed to remove from cart")
}

func (c *HTTPClient) GetFavorites(ctx context.Context, token string) ([]models.FavoriteItem, error) {
	var items []models.FavoriteItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/favorites", token, nil, &items, "Failed to fetch favorites"); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, token string, item models.FavoriteItem) (models.FavoriteItem, error) {
	var saved models.FavoriteItem
	if err := c.doJSON(ctx, http.MethodPost, "/api/favorites", token, item, &saved, "Failed to add to favorites"); err != nil {
		return models.FavoriteItem{}, err
	}
	return saved, nil
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, token, itemID string) error {
	path := "/api/favorites/" + url.PathEscape(itemID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil, "Failed to remove from favorites")
}

func (c *HTTPClient) GetOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", token, nil, &orders, "Failed to fetch orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) PlaceOrder(ctx context.Context, token string, req models.OrderRequest) (models.Order, error) {
	var saved models.Order
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", token, req, &saved, "Failed to place order"); err != nil {
		return models.Order{}, err
	}
	return saved, nil
}

// GetMenu is the sole unauthenticated read. It validates the declared content
// kind before parsing and distinguishes forbidden access from generic failure.
func (c *HTTPClient) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/menu", "", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET /api/menu: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusForbidden {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, &StatusError{Status: resp.StatusCode, Message: menuForbiddenMessage}
		}
		if strings.Contains(contentType, "application/json") {
			return nil, c.statusError(resp, "Failed to fetch menu")
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "Failed to fetch menu"
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: msg}
	}

	if !strings.Contains(contentType, "application/json") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("expected JSON but received: %s", strings.TrimSpace(string(body)))
	}

	var items []models.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode menu response: %w", err)
	}
	return items, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/users", token, nil, &users, "Failed to fetch users"); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, token, userID string, upd models.UserUpdate) (models.User, error) {
	path := "/api/admin/users/" + url.PathEscape(userID)
	var user models.User
	if err := c.doJSON(ctx, http.MethodPut, path, token, upd, &user, "Failed to update user"); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) ListAllOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/orders", token, nil, &orders, "Failed to fetch orders"); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) UpdateOrderStatus(ctx context.Context, token, orderID string, status models.OrderStatus) (models.Order, error) {
	path := "/api/admin/orders/" + url.PathEscape(orderID)
	body := map[string]models.OrderStatus{"status": status}
	var order models.Order
	if err := c.doJSON(ctx, http.MethodPut, path, token, body, &order, "Failed to update order status"); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (c *HTTPClient) AddMenuItem(ctx context.Context, token string, item models.MenuItem) (models.MenuItem, error) {
	var saved models.MenuItem
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/menu", token, item, &saved, "Failed to add menu item"); err != nil {
		return models.MenuItem{}, err
	}
	return saved, nil
}

func (c *HTTPClient) UpdateMenuItem(ctx context.Context, token, itemID string, item models.MenuItem) (models.MenuItem, error) {
	path := "/api/admin/menu/" + url.PathEscape(itemID)
	var saved models.MenuItem
	if err := c.doJSON(ctx, http.MethodPut, path, token, item, &saved, "Failed to update menu item"); err != nil {
		return models.MenuItem{}, err
	}
	return saved, nil
}

func (c *HTTPClient) DeleteMenuItem(ctx context.Context, token, itemID string) error {
	path := "/api/admin/menu/" + url.PathEscape(itemID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil, "Failed to delete menu item")
}

func (c *HTTPClient) ListContactMessages(ctx context.Context, token string) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/contact", token, nil, &messages, "Failed to fetch contact messages"); err != nil {
		return nil, err
	}
	return messages, nil
}
