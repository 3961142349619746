package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for name, email and password and submits the registration.
// On success the server sends a one-time passcode to the given email; the
// user completes the flow with VerifyOTP.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	msg, err := a.store.Signup(ctx, name, email, string(password))
	if err != nil {
		fmt.Println("Signup failed:", err.Error())
		return err
	}
	fmt.Println(msg)
	return nil
}

// VerifyOTP completes registration with the emailed passcode. On success the
// user is logged in with a brand-new, empty session.
func (a *App) VerifyOTP(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	otp, err := getSimpleText(a.reader, "Enter the passcode from your email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.VerifySignupOTP(ctx, email, otp); err != nil {
		fmt.Println("Verification failed:", err.Error())
		return err
	}
	fmt.Println("Welcome to BiteCart!")
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// store resolves the profile and pulls cart, favorites and order history.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	if err := a.store.Login(ctx, email, string(password)); err != nil {
		fmt.Println("Login failed:", err.Error())
		return err
	}

	if u := a.store.User(); u != nil {
		fmt.Printf("Logged in as %s\n", u.Name)
	}
	return nil
}

// ForgotPassword requests a password-reset passcode.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	msg, err := a.store.ForgotPassword(ctx, email)
	if err != nil {
		fmt.Println("Request failed:", err.Error())
		return err
	}
	fmt.Println(msg)
	return nil
}

// ResetPassword completes the forgot-password flow with the emailed passcode.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	otp, err := getSimpleText(a.reader, "Enter the passcode from your email", os.Stdout)
	if err != nil {
		return err
	}
	newPassword, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}

	msg, err := a.store.ResetPassword(ctx, email, otp, string(newPassword), string(confirm))
	if err != nil {
		fmt.Println("Reset failed:", err.Error())
		return err
	}
	fmt.Println(msg)
	return nil
}

// ChangePassword switches the password for the logged-in account.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(os.Stdout, "Enter current password")
	if err != nil {
		return err
	}
	newPassword, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}

	msg, err := a.store.ChangePassword(ctx, models.PasswordChange{
		CurrentPassword: string(current),
		NewPassword:     string(newPassword),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		fmt.Println("Password change failed:", err.Error())
		return err
	}
	fmt.Println(msg)
	return nil
}

// EditProfile prompts for new profile fields. Blank answers keep the current
// values.
func (a *App) EditProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter new name (blank to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter new email (blank to keep)", os.Stdout)
	if err != nil {
		return err
	}

	msg, err := a.store.UpdateProfile(ctx, models.ProfileUpdate{Name: name, Email: email})
	if err != nil {
		fmt.Println("Profile update failed:", err.Error())
		return err
	}
	fmt.Println(msg)
	return nil
}

// Logout clears the session, local state and durable keys included.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	a.tab = TabProfile
	fmt.Println("Logged out")
	return nil
}
