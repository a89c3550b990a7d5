package customer

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName  = errors.New("customer name cannot be empty")
	ErrEmptyEmail = errors.New("customer email cannot be empty")
)

// Customer is the party an invoice is billed to.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// Validate checks if the Customer has valid data.
// PRE: Customer struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}
