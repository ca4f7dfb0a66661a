package domain

import "time"

// ProductStatus is the admin moderation state of a product.
type ProductStatus string

const (
	ProductPending  ProductStatus = "pending"
	ProductApproved ProductStatus = "approved"
	ProductRejected ProductStatus = "rejected"
)

type Product struct {
	ID          string        `json:"id"`
	VendorID    string        `json:"vendorId"`
	CategoryID  string        `json:"categoryId,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	PriceCents  int64         `json:"priceCents"`
	Currency    string        `json:"currency"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
