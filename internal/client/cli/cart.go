package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/bitecart/internal/client/models"
)

// Menu renders the restaurant menu. It is the one command that works without
// logging in.
func (a *App) Menu(ctx context.Context) error {
	items, err := a.store.FetchMenu(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	if len(items) == 0 {
		fmt.Println("The menu is empty")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%s  %-30s %8.2f\n", it.ID, it.Name, it.Price)
		if it.Description != "" {
			fmt.Printf("    %s\n", it.Description)
		}
	}
	return nil
}

// Cart renders the cart contents and subtotal.
func (a *App) Cart(ctx context.Context) error {
	cart := a.store.Cart()
	if len(cart) == 0 {
		fmt.Println("Your cart is empty")
		return nil
	}
	for _, it := range cart {
		fmt.Printf("%s  %-30s %8.2f x %d\n", it.ItemID, it.Name, it.Price, it.Quantity)
	}
	fmt.Printf("Subtotal: %.2f\n", models.CartSubtotal(cart))
	return nil
}

// menuItemByID resolves a menu item so commands can accept bare item IDs.
func (a *App) menuItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	items, err := a.store.FetchMenu(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, fmt.Errorf("menu item %s not found", id)
}

// AddItem puts one unit of a menu item into the cart.
func (a *App) AddItem(ctx context.Context, id string) error {
	item, err := a.menuItemByID(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	err = a.store.AddToCart(ctx, models.CartItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
		Image:    item.Image,
	})
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Printf("%s added to cart\n", item.Name)
	return nil
}

// RemoveItem drops a cart entry.
func (a *App) RemoveItem(ctx context.Context, id string) error {
	if err := a.store.RemoveFromCart(ctx, id); err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Println("Removed from cart")
	return nil
}

// SetQuantity sets the quantity of a cart entry. A value below 1 removes it.
func (a *App) SetQuantity(ctx context.Context, id, qty string) error {
	n, err := strconv.Atoi(qty)
	if err != nil {
		fmt.Println("Quantity must be a number")
		return err
	}
	if err := a.store.UpdateCartItem(ctx, id, n); err != nil {
		fmt.Println(err.Error())
		return err
	}
	return a.Cart(ctx)
}

// Favorite marks a menu item as a favorite.
func (a *App) Favorite(ctx context.Context, id string) error {
	item, err := a.menuItemByID(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	err = a.store.AddToFavorites(ctx, models.FavoriteItem{
		ItemID: item.ID,
		Name:   item.Name,
		Price:  item.Price,
		Image:  item.Image,
	})
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Printf("%s added to favorites\n", item.Name)
	return nil
}

// Unfavorite removes a favorite.
func (a *App) Unfavorite(ctx context.Context, id string) error {
	if err := a.store.RemoveFromFavorites(ctx, id); err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Println("Removed from favorites")
	return nil
}

// PlaceOrder collects the delivery address and submits the current cart.
func (a *App) PlaceOrder(ctx context.Context) error {
	if len(a.store.Cart()) == 0 {
		fmt.Println("Your cart is empty")
		return nil
	}

	line1, err := getSimpleText(a.reader, "Address line 1", os.Stdout)
	if err != nil {
		return err
	}
	line2, err := getSimpleText(a.reader, "Address line 2 (optional)", os.Stdout)
	if err != nil {
		return err
	}
	city, err := getSimpleText(a.reader, "City", os.Stdout)
	if err != nil {
		return err
	}
	pincode, err := getSimpleText(a.reader, "Pincode", os.Stdout)
	if err != nil {
		return err
	}

	order, err := a.store.PlaceOrder(ctx, models.OrderDetails{
		AddressLine1: line1,
		AddressLine2: line2,
		City:         city,
		Pincode:      pincode,
	})
	if err != nil {
		fmt.Println("Order failed:", err.Error())
		return err
	}

	fmt.Printf("Order %s placed, total %.2f\n", order.ID, order.TotalPrice)
	if last := a.store.LastOrder(); last != nil {
		fmt.Printf("Estimated delivery: %s\n", last.EstimatedDelivery)
	}
	return nil
}
