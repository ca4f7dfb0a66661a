package domain

import "time"

// OrderStatus follows the admin-driven fulfilment flow. Transitions are
// forward-only (pending -> on_the_way -> completed); a pending order may be
// cancelled instead, which restores stock.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderOnTheWay  OrderStatus = "on_the_way"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"-"`
	TotalCents    int64         `json:"totalCents"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Address       string        `json:"address"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	Lines         []OrderLine   `json:"lines,omitempty"`
}

// OrderLine is a frozen copy of the cart line at purchase time. It carries no
// live reference to the product's display data: later price or stock edits
// must not alter a placed order.
type OrderLine struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	ImageURL   string `json:"imageUrl,omitempty"`
}
