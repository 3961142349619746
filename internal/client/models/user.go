// Package models defines the data types exchanged with the ordering API and
// held in client session state.
package models

import (
	"errors"
	"strings"
)

// Role classifies an account's capabilities.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Address is a delivery address owned by a user.
type Address struct {
	ID      string `json:"id"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// User is the profile record resolved from the server. It is replaced
// wholesale on every profile fetch or update.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               Role      `json:"role"`
	ProfilePicture     string    `json:"profilePicture"`
	OrdersCount        int       `json:"ordersCount"`
	CartItemsCount     int       `json:"cartItemsCount"`
	FavoriteItemsCount int       `json:"favoriteItemsCount"`
	Addresses          []Address `json:"addresses"`
}

// IsAdmin reports whether the user carries the administrative role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProfileUpdate is the payload for a profile edit.
type ProfileUpdate struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// UserUpdate is the payload an administrator sends to modify another account.
type UserUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// PasswordChange carries a password-change request.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

const minPasswordLength = 8

var (
	ErrPasswordFieldsRequired = errors.New("all password fields are required")
	ErrPasswordMismatch       = errors.New("new password and confirmation do not match")
	ErrPasswordTooShort       = errors.New("new password must be at least 8 characters long")
)

// Validate checks the request locally before it is sent to the server.
func (p PasswordChange) Validate() error {
	if strings.TrimSpace(p.CurrentPassword) == "" ||
		strings.TrimSpace(p.NewPassword) == "" ||
		strings.TrimSpace(p.ConfirmPassword) == "" {
		return ErrPasswordFieldsRequired
	}
	if p.NewPassword != p.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(p.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
