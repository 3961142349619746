package session

import "errors"

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrPermissionDenied = errors.New("permission denied")
)
