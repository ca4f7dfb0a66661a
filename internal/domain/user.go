package domain

import "time"

// Role distinguishes the three marketplace actors.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VendorStatus is the admin approval state of a vendor application.
type VendorStatus string

const (
	VendorPending  VendorStatus = "pending"
	VendorApproved VendorStatus = "approved"
	VendorRejected VendorStatus = "rejected"
)

// Vendor is a shop owned by a user. Products reference the vendor, not the
// owning user directly.
type Vendor struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	ShopName  string       `json:"shopName"`
	Bio       string       `json:"bio,omitempty"`
	Status    VendorStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}
