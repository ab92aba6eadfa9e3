package payment

import (
	"context"
	"errors"
	"time"
)

// StatusApproved is the provider status of a settled payment.
const StatusApproved = "approved"

var ErrNotConfigured = errors.New("payment gateway not configured")

type CheckoutRequest struct {
	ExternalReference string
	Title             string
	Amount            float64
	Currency          string

	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string

	// ExpiresIn bounds how long the checkout accepts payments.
	ExpiresIn time.Duration
}

type Checkout struct {
	PreferenceID string
	URL          string
}

type Detail struct {
	ID                string
	Status            string
	ExternalReference string
}

type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetPayment(ctx context.Context, id string) (*Detail, error)
}

// Disabled is used when no provider credentials are configured; every call
// fails so holds are rolled back.
type Disabled struct{}

func (Disabled) CreateCheckout(context.Context, CheckoutRequest) (*Checkout, error) {
	return nil, ErrNotConfigured
}

func (Disabled) GetPayment(context.Context, string) (*Detail, error) {
	return nil, ErrNotConfigured
}
