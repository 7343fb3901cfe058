package dto

import (
	"quarryledger/internal/domain/catalogs/customer"
	"quarryledger/internal/domain/catalogs/product"
	"quarryledger/internal/domain/catalogs/quarry"
)

// --- Products ---

// ProductRequest for creating or updating a product.
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ToEntity converts the request to a new product.
func (r ProductRequest) ToEntity() *product.Product {
	return product.NewProduct(r.Name, r.Description)
}

// --- Quarries ---

// QuarryRequest for creating or updating a quarry.
type QuarryRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	OwnerID  string `json:"ownerId"`
}

// ToEntity converts the request to a new quarry.
func (r QuarryRequest) ToEntity() *quarry.Quarry {
	q := quarry.NewQuarry(r.Name, r.Location)
	q.OwnerID = r.OwnerID
	return q
}

// --- Customers ---

// CustomerRequest for creating or updating a customer.
type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

// ToEntity converts the request to a new customer.
func (r CustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Name, r.Phone)
	c.Email = r.Email
	return c
}
