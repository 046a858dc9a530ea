package domain

import "time"

// Roles assignable to a user. CMS access requires RoleAdmin.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// OrderTotals is the denormalized per-user order-count summary kept in sync
// by the order service so the profile page never runs an aggregate query.
type OrderTotals struct {
	TotalOrders int `json:"totalorders"`
	Pending     int `json:"pending"`
	Completed   int `json:"completed"`
}

// ShippingInfo groups the shipping fields editable from the profile page.
type ShippingInfo struct {
	Phone           string `json:"phone,omitempty"`
	ShipmentAddress string `json:"shipment_address,omitempty"`
	Province        string `json:"province,omitempty"`
	City            string `json:"city,omitempty"`
	Address         string `json:"address,omitempty"`
}

// User represents a registered storefront or CMS account.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Username     string       `json:"username,omitempty"`
	PasswordHash string       `json:"-"`
	FirstName    string       `json:"first_name,omitempty"`
	LastName     string       `json:"last_name,omitempty"`
	Role         string       `json:"role"`
	Shipping     ShippingInfo `json:"shipping"`
	Totals       OrderTotals  `json:"totals"`
	CreatedAt    time.Time    `json:"created_at"`
}
