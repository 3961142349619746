package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

// SwitchTab changes the active screen and renders it. The admin and messages
// tabs are gated on the administrative role.
func (a *App) SwitchTab(ctx context.Context, name string) error {
	tab := Tab(strings.ToLower(name))

	switch tab {
	case TabProfile, TabOrders, TabFavorites, TabSettings:
	case TabAdmin, TabMessages:
		if !a.isAdmin() {
			fmt.Println("This tab is for administrators only")
			return nil
		}
	default:
		fmt.Println("Unknown tab:", name)
		return nil
	}

	a.tab = tab
	return a.renderTab(ctx)
}

func (a *App) renderTab(ctx context.Context) error {
	switch a.tab {
	case TabProfile:
		return a.renderProfile(ctx)
	case TabOrders:
		return a.renderOrders(ctx)
	case TabFavorites:
		return a.renderFavorites(ctx)
	case TabSettings:
		return a.renderSettings(ctx)
	case TabAdmin:
		return a.renderAdmin(ctx)
	case TabMessages:
		return a.renderMessages(ctx)
	}
	return nil
}

func (a *App) renderProfile(ctx context.Context) error {
	u := a.store.User()
	if u == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("Name:  %s\n", u.Name)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role:  %s\n", u.Role)
	for _, addr := range u.Addresses {
		fmt.Printf("Address: %s, %s %s\n", addr.Line1, addr.City, addr.Pincode)
	}
	if last := a.store.LastOrder(); last != nil {
		fmt.Printf("Last order: %s (%s), estimated delivery %s\n", last.ID, last.Status, last.EstimatedDelivery)
	}
	return nil
}

// renderOrders lists the order history, optionally narrowed to one status.
func (a *App) renderOrders(ctx context.Context) error {
	orders := a.store.RefreshOrders(ctx)
	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}

	filter, err := getSimpleText(a.reader, "Filter by status (blank for all, Pending/Delivered/Cancelled)", os.Stdout)
	if err != nil {
		return err
	}

	shown := 0
	for _, o := range orders {
		if filter != "" && !strings.EqualFold(string(o.Status), filter) {
			continue
		}
		fmt.Printf("%s  %-10s %8.2f  %s\n", o.ID, o.Status, o.TotalPrice, o.CreatedAt)
		shown++
	}
	if shown == 0 {
		fmt.Println("No orders with status", filter)
	}
	return nil
}

func (a *App) renderFavorites(ctx context.Context) error {
	favs := a.store.RefreshFavorites(ctx)
	if len(favs) == 0 {
		fmt.Println("No favorites yet")
		return nil
	}
	for _, f := range favs {
		fmt.Printf("%s  %-30s %8.2f\n", f.ItemID, f.Name, f.Price)
	}
	return nil
}

func (a *App) renderSettings(ctx context.Context) error {
	u := a.store.User()
	if u == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("Account: %s <%s>\n", u.Name, u.Email)
	if exp, err := a.store.TokenExpiry(); err == nil {
		fmt.Printf("Session valid until %s\n", exp.Local().Format(time.RFC1123))
	}
	fmt.Println("Use 'passwd' to change the password, 'editprofile' to edit the profile")
	return nil
}

// renderAdmin loads users, all orders and the menu concurrently; a failing
// branch reports itself and leaves the others on screen. The summary includes
// the count of orders still pending.
func (a *App) renderAdmin(ctx context.Context) error {
	var (
		users  []models.User
		orders []models.Order
		menu   []models.MenuItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if users, err = a.store.FetchAllUsers(gctx); err != nil {
			fmt.Println("Failed to load users:", err.Error())
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if orders, err = a.store.FetchAllOrders(gctx); err != nil {
			fmt.Println("Failed to load orders:", err.Error())
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if menu, err = a.store.FetchMenu(gctx); err != nil {
			fmt.Println("Failed to load menu:", err.Error())
		}
		return nil
	})
	_ = g.Wait()

	pending := 0
	for _, o := range orders {
		if o.Status == models.OrderStatusPending {
			pending++
		}
	}
	fmt.Printf("Users: %d, orders: %d (%d pending), menu items: %d\n",
		len(users), len(orders), pending, len(menu))

	for _, u := range users {
		fmt.Printf("%s  %-25s %-30s %s\n", u.ID, u.Name, u.Email, u.Role)
	}
	for _, o := range orders {
		fmt.Printf("%s  %-10s %8.2f  %s\n", o.ID, o.Status, o.TotalPrice, o.CreatedAt)
	}
	return nil
}

func (a *App) renderMessages(ctx context.Context) error {
	msgs, err := a.store.FetchContactMessages(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if len(msgs) == 0 {
		fmt.Println("No messages")
		return nil
	}
	for _, m := range msgs {
		fmt.Printf("%s  %s <%s>\n    %s\n", m.CreatedAt, m.Name, m.Email, m.Message)
	}
	return nil
}
