// Package errors provides custom error types for storefront operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrCollectionNotFound = errors.New("collection not found")
var ErrOrderNotFound = errors.New("order not found")

// ErrVariantNotFound is returned when an order line item references a variant no product owns.
var ErrVariantNotFound = errors.New("product variant not found")

// ErrMissingBody is returned by create operations called without a request body.
var ErrMissingBody = errors.New("no body provided")

var ErrDuplicateID = errors.New("duplicate id")
var ErrUnknownCollection = errors.New("unknown collection")

var ErrSaveOrder = errors.New("failed to save order")
var ErrFailedToFindOrder = errors.New("failed to find order")
