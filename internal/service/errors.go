package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found or is not visible
	// to the current customer
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when the request conflicts with current state
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when credentials are missing or rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the user is authenticated but may not use the portal
	ErrForbidden = errors.New("forbidden")

	// ErrNoCustomer is returned when a portal user has no linked ERP customer
	ErrNoCustomer = errors.New("no customer linked to user")

	// ErrDraftEmpty is returned when submitting a draft without items
	ErrDraftEmpty = errors.New("draft order has no items")

	// ErrNoWarehouse is returned when submitting a draft without a warehouse
	ErrNoWarehouse = errors.New("draft order has no warehouse")

	// ErrUpstream is returned when the ERP fails in a way the portal cannot recover from
	ErrUpstream = errors.New("erp request failed")

	// ErrDocumentUnavailable is returned when no print format produced a PDF
	ErrDocumentUnavailable = errors.New("document is not available")
)
