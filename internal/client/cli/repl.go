package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Menu(ctx context.Context) error
	Signup(ctx context.Context) error
	VerifyOTP(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	SwitchTab(ctx context.Context, name string) error
	Cart(ctx context.Context) error
	AddItem(ctx context.Context, id string) error
	RemoveItem(ctx context.Context, id string) error
	SetQuantity(ctx context.Context, id, qty string) error
	Favorite(ctx context.Context, id string) error
	Unfavorite(ctx context.Context, id string) error
	PlaceOrder(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	EditProfile(ctx context.Context) error
	SetOrderStatus(ctx context.Context, id, status string) error
	SetUserRole(ctx context.Context, id, role string) error
	AddMenuItem(ctx context.Context) error
	EditMenuItem(ctx context.Context, id string) error
	DeleteMenuItem(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the BiteCart CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - menu           — browse the menu
//	  - signup         — create an account
//	  - verify         — confirm signup with the emailed passcode
//	  - login          — authenticate
//	  - forgot         — request a password-reset passcode
//	  - reset          — complete the password reset
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help                      — show available commands
//	  - menu                      — browse the menu
//	  - tab <name>                — switch screen (profile, orders, favorites,
//	                                settings, admin, messages)
//	  - cart                      — show the cart
//	  - add <id>                  — add a menu item to the cart
//	  - remove <id>               — remove a cart item
//	  - qty <id> <n>              — set a cart item quantity
//	  - fav <id> | unfav <id>     — manage favorites
//	  - order                     — place an order from the cart
//	  - passwd                    — change the account password
//	  - editprofile               — edit the profile
//	  - logout                    — log out
//	  - exit | quit               — leave the program
//
//	Administrators additionally:
//	  - setstatus <orderID> <status>  — move an order to Pending/Delivered/Cancelled
//	  - setrole <userID> <role>       — grant or revoke the ADMIN role
//	  - additem                       — create a menu item
//	  - edititem <id>                 — edit a menu item
//	  - delitem <id>                  — delete a menu item
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: menu, tab <name>, cart, add, remove, qty, fav, unfav, order, passwd, editprofile, logout, exit")
				if a.isAdmin() {
					printlnFn("Admin commands: setstatus, setrole, additem, edititem, delitem")
				}
			} else {
				printlnFn("Available commands: menu, signup, verify, login, forgot, reset, exit")
			}

		case "menu":
			_ = a.Menu(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "verify":
			_ = a.VerifyOTP(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "tab":
			if len(args) == 0 {
				printlnFn("Usage: tab <profile|orders|favorites|settings|admin|messages>")
				continue
			}
			_ = a.SwitchTab(ctx, args[0])

		case "cart":
			_ = a.Cart(ctx)

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <itemID>")
				continue
			}
			_ = a.AddItem(ctx, args[0])

		case "remove":
			if len(args) == 0 {
				printlnFn("Usage: remove <itemID>")
				continue
			}
			_ = a.RemoveItem(ctx, args[0])

		case "qty":
			if len(args) < 2 {
				printlnFn("Usage: qty <itemID> <quantity>")
				continue
			}
			_ = a.SetQuantity(ctx, args[0], args[1])

		case "fav":
			if len(args) == 0 {
				printlnFn("Usage: fav <itemID>")
				continue
			}
			_ = a.Favorite(ctx, args[0])

		case "unfav":
			if len(args) == 0 {
				printlnFn("Usage: unfav <itemID>")
				continue
			}
			_ = a.Unfavorite(ctx, args[0])

		case "order":
			_ = a.PlaceOrder(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "setstatus":
			if len(args) < 2 {
				printlnFn("Usage: setstatus <orderID> <Pending|Delivered|Cancelled>")
				continue
			}
			_ = a.SetOrderStatus(ctx, args[0], args[1])

		case "setrole":
			if len(args) < 2 {
				printlnFn("Usage: setrole <userID> <USER|ADMIN>")
				continue
			}
			_ = a.SetUserRole(ctx, args[0], args[1])

		case "additem":
			_ = a.AddMenuItem(ctx)

		case "edititem":
			if len(args) == 0 {
				printlnFn("Usage: edititem <itemID>")
				continue
			}
			_ = a.EditMenuItem(ctx, args[0])

		case "delitem":
			if len(args) == 0 {
				printlnFn("Usage: delitem <itemID>")
				continue
			}
			_ = a.DeleteMenuItem(ctx, args[0])

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
