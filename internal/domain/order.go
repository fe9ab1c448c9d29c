package domain

// Address is a normalized postal address. Required fields default to "", optional ones to nil.
type Address struct {
	Line1     string  `json:"line1"`
	Line2     string  `json:"line2"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Province  string  `json:"province"`
	Postal    string  `json:"postal"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// AddressInput is an address as supplied by a caller; every field may be absent.
type AddressInput struct {
	Line1     *string `json:"line1,omitempty"`
	Line2     *string `json:"line2,omitempty"`
	City      *string `json:"city,omitempty"`
	Country   *string `json:"country,omitempty"`
	Province  *string `json:"province,omitempty"`
	Postal    *string `json:"postal,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// Normalize applies the address defaulting rule. A nil input yields an empty address.
func (a *AddressInput) Normalize() Address {
	if a == nil {
		return Address{}
	}
	return Address{
		Line1:     orEmpty(a.Line1),
		Line2:     orEmpty(a.Line2),
		City:      orEmpty(a.City),
		Country:   orEmpty(a.Country),
		Province:  orEmpty(a.Province),
		Postal:    orEmpty(a.Postal),
		Phone:     copyPtr(a.Phone),
		Company:   copyPtr(a.Company),
		FirstName: copyPtr(a.FirstName),
		LastName:  copyPtr(a.LastName),
	}
}

// ResolvedVariant is a variant together with the product that owned it when the order was placed.
type ResolvedVariant struct {
	ProductVariant
	Product Product `json:"product"`
}

// LineItem is one entry of an order.
type LineItem struct {
	ID               string          `json:"id"`
	ProductVariantID string          `json:"productVariantId"`
	Quantity         int             `json:"quantity"`
	ProductVariant   ResolvedVariant `json:"productVariant"`
}

// LineItemInput references a variant by id. ProductID, when set, scopes the lookup to that product.
type LineItemInput struct {
	ProductVariantID string `json:"productVariantId"`
	ProductID        string `json:"productId,omitempty"`
	Quantity         int    `json:"quantity"`
}

// OrderInput is the body of a create order call.
type OrderInput struct {
	Email           string          `json:"email,omitempty"`
	CustomerID      *string         `json:"customerId,omitempty"`
	LineItems       []LineItemInput `json:"lineItems"`
	BillingAddress  *AddressInput   `json:"billingAddress,omitempty"`
	ShippingAddress *AddressInput   `json:"shippingAddress,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID              string     `json:"id"`
	Number          int64      `json:"number"`
	Email           string     `json:"email"`
	CustomerID      *string    `json:"customerId"`
	LineItems       []LineItem `json:"lineItems"`
	BillingAddress  Address    `json:"billingAddress"`
	ShippingAddress Address    `json:"shippingAddress"`
	Timestamps
}

// CustomerInput is the body of a create customer call. A nil ID lets the client assign one.
type CustomerInput struct {
	ID        *string           `json:"id,omitempty"`
	Email     string            `json:"email"`
	FirstName *string           `json:"firstName,omitempty"`
	LastName  *string           `json:"lastName,omitempty"`
	Phone     *string           `json:"phone,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Customer is a customer record as returned by the client.
type Customer struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	FirstName *string           `json:"firstName"`
	LastName  *string           `json:"lastName"`
	Phone     *string           `json:"phone"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamps
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	c := o
	c.CustomerID = copyPtr(o.CustomerID)
	c.LineItems = make([]LineItem, len(o.LineItems))
	for i, li := range o.LineItems {
		li.ProductVariant.ProductVariant = li.ProductVariant.ProductVariant.Clone()
		li.ProductVariant.Product = li.ProductVariant.Product.Clone()
		c.LineItems[i] = li
	}
	c.BillingAddress = o.BillingAddress.clone()
	c.ShippingAddress = o.ShippingAddress.clone()
	c.DeletedAt = cloneTime(o.DeletedAt)
	return c
}

func (a Address) clone() Address {
	c := a
	c.Phone = copyPtr(a.Phone)
	c.Company = copyPtr(a.Company)
	c.FirstName = copyPtr(a.FirstName)
	c.LastName = copyPtr(a.LastName)
	return c
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
