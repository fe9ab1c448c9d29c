package rest

import (
	"github.com/abgdnv/storefront/internal/domain"
)

type customerRequest struct {
	ID        *string           `json:"id,omitempty" validate:"omitempty,min=1"`
	Email     string            `json:"email" validate:"required,email"`
	FirstName *string           `json:"firstName,omitempty"`
	LastName  *string           `json:"lastName,omitempty"`
	Phone     *string           `json:"phone,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (c customerRequest) toInput() *domain.CustomerInput {
	return &domain.CustomerInput{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Metadata:  c.Metadata,
	}
}

type lineItemRequest struct {
	ProductVariantID string `json:"productVariantId" validate:"required"`
	ProductID        string `json:"productId,omitempty"`
	Quantity         int    `json:"quantity" validate:"required,min=1"`
}

type orderRequest struct {
	Email           string               `json:"email,omitempty" validate:"omitempty,email"`
	CustomerID      *string              `json:"customerId,omitempty" validate:"omitempty,min=1"`
	LineItems       []lineItemRequest    `json:"lineItems" validate:"required,min=1,dive"`
	BillingAddress  *domain.AddressInput `json:"billingAddress,omitempty"`
	ShippingAddress *domain.AddressInput `json:"shippingAddress,omitempty"`
}

func (o orderRequest) toInput() *domain.OrderInput {
	items := make([]domain.LineItemInput, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = domain.LineItemInput{
			ProductVariantID: li.ProductVariantID,
			ProductID:        li.ProductID,
			Quantity:         li.Quantity,
		}
	}
	return &domain.OrderInput{
		Email:           o.Email,
		CustomerID:      o.CustomerID,
		LineItems:       items,
		BillingAddress:  o.BillingAddress,
		ShippingAddress: o.ShippingAddress,
	}
}

// PublicConfig is what GET /api/v1/config/public answers with.
type PublicConfig struct {
	Site         string            `json:"site"`
	ImageDomains []string          `json:"imageDomains"`
	Env          map[string]string `json:"env"`
}
