package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

func parseOrderStatus(s string) (models.OrderStatus, error) {
	switch strings.ToLower(s) {
	case "pending":
		return models.OrderStatusPending, nil
	case "delivered":
		return models.OrderStatusDelivered, nil
	case "cancelled":
		return models.OrderStatusCancelled, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func parseRole(s string) (models.Role, error) {
	switch strings.ToUpper(s) {
	case "USER":
		return models.RoleUser, nil
	case "ADMIN":
		return models.RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// SetOrderStatus moves an order to the given state.
func (a *App) SetOrderStatus(ctx context.Context, id, status string) error {
	st, err := parseOrderStatus(status)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	order, err := a.store.UpdateOrderStatus(ctx, id, st)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Printf("Order %s is now %s\n", order.ID, order.Status)
	return nil
}

// SetUserRole grants or revokes the administrative role.
func (a *App) SetUserRole(ctx context.Context, id, role string) error {
	r, err := parseRole(role)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	user, err := a.store.UpdateUser(ctx, id, models.UserUpdate{Role: r})
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Printf("%s is now %s\n", user.Email, user.Role)
	return nil
}

// promptMenuItem collects menu item fields. Existing values may be passed in
// as defaults for edits; blank answers keep them.
func (a *App) promptMenuItem(defaults models.MenuItem) (models.MenuItem, error) {
	var zero models.MenuItem

	name, err := getSimpleText(a.reader, "Item name", os.Stdout)
	if err != nil {
		return zero, err
	}
	if name == "" {
		name = defaults.Name
	}

	priceText, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		return zero, err
	}
	price := defaults.Price
	if priceText != "" {
		price, err = strconv.ParseFloat(priceText, 64)
		if err != nil {
			return zero, fmt.Errorf("price must be a number: %w", err)
		}
	}

	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return zero, err
	}
	if description == "" {
		description = defaults.Description
	}

	return models.MenuItem{Name: name, Price: price, Description: description, Image: defaults.Image}, nil
}

// AddMenuItem creates a menu entry.
func (a *App) AddMenuItem(ctx context.Context) error {
	item, err := a.promptMenuItem(models.MenuItem{})
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	saved, err := a.store.AddMenuItem(ctx, item)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Printf("Added %s (%s)\n", saved.Name, saved.ID)
	return nil
}

// EditMenuItem edits an existing menu entry; blank answers keep the current
// values.
func (a *App) EditMenuItem(ctx context.Context, id string) error {
	current, err := a.menuItemByID(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	item, err := a.promptMenuItem(*current)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	saved, err := a.store.UpdateMenuItem(ctx, id, item)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Printf("Updated %s (%s)\n", saved.Name, saved.ID)
	return nil
}

// DeleteMenuItem removes a menu entry.
func (a *App) DeleteMenuItem(ctx context.Context, id string) error {
	if err := a.store.DeleteMenuItem(ctx, id); err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Println("Menu item deleted")
	return nil
}
