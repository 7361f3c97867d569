package entity

import "time"

// Supplier representa un proveedor de mercancía.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Phone       string
	Email       string
	CreatedAt   time.Time
}
