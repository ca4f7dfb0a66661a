package domain

import "time"

// CartLine is a per-user, per-product reservation out of shared stock.
// Title, price and image are captured at first add so the line keeps showing
// what the user saw, regardless of later product edits.
type CartLine struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	ProductID  string    `json:"productId"`
	Quantity   int       `json:"quantity"`
	Title      string    `json:"title"`
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Favorite is a pure bookmark; it does not participate in stock accounting.
type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	ProductID  string    `json:"productId"`
	Title      string    `json:"title"`
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
