package models

import (
	"errors"
	"strings"
	"time"
)

// OrderItem is one cart line frozen into an order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is an accepted cart snapshot. Orders are append-only: once
// stored they are never updated or deleted.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Address       string      `json:"address"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// CreateOrderRequest is the order intake payload. The shipping address
// arrives either pre-assembled in Address or as the four discrete
// components.
type CreateOrderRequest struct {
	CustomerName   string      `json:"customerName"`
	CustomerEmail  string      `json:"customerEmail"`
	Address        string      `json:"address"`
	CustomerStreet string      `json:"customerStreet"`
	CustomerCity   string      `json:"customerCity"`
	CustomerState  string      `json:"customerState"`
	CustomerZip    string      `json:"customerZip"`
	Items          []OrderItem `json:"items"`

	// Total is accepted for compatibility with older storefront builds
	// and ignored; the service always recomputes it from the items.
	Total float64 `json:"total"`
}

// CreateOrderResponse acknowledges an accepted order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// ErrMissingOrderInfo is returned by Validate when a required order
// field is absent.
var ErrMissingOrderInfo = errors.New("missing order information")

// Validate checks field presence. An order needs a customer name and
// email, a usable address, and a non-empty item list.
func (r *CreateOrderRequest) Validate() error {
	if r.CustomerName == "" || r.CustomerEmail == "" {
		return ErrMissingOrderInfo
	}
	if _, ok := r.ShippingAddress(); !ok {
		return ErrMissingOrderInfo
	}
	if len(r.Items) == 0 {
		return ErrMissingOrderInfo
	}
	return nil
}

// ShippingAddress returns the assembled address. A pre-assembled
// Address wins; otherwise all four components must be present and are
// joined street, city, state, zip.
func (r *CreateOrderRequest) ShippingAddress() (string, bool) {
	if r.Address != "" {
		return r.Address, true
	}
	parts := []string{r.CustomerStreet, r.CustomerCity, r.CustomerState, r.CustomerZip}
	for _, p := range parts {
		if p == "" {
			return "", false
		}
	}
	return strings.Join(parts, ", "), true
}

// ComputeTotal sums price × quantity over the items. A missing or zero
// quantity counts as one unit.
func ComputeTotal(items []OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += item.Price * float64(qty)
	}
	return total
}
