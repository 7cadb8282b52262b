// Package payments wraps the external checkout collaborator. The API
// only ever asks for a redirect target; confirmation arrives later as a
// client-posted payment record bearing the same trackingId.
package payments

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

type CheckoutSession struct {
	TrackingID  string  `json:"trackingId"`
	RedirectURL string  `json:"redirectUrl"`
	PackageName string  `json:"packageName"`
	Amount      float64 `json:"amount"`
}

// CheckoutProvider produces a redirect target for a plan purchase.
type CheckoutProvider interface {
	CreateSession(packageName string, price float64, employeeLimit int) (*CheckoutSession, error)
}

// HostedCheckout points the client at a hosted payment page, carrying
// the trackingId that later deduplicates the confirmation call.
type HostedCheckout struct {
	BaseURL string
}

func NewHostedCheckout(baseURL string) *HostedCheckout {
	return &HostedCheckout{BaseURL: baseURL}
}

func (h *HostedCheckout) CreateSession(packageName string, price float64, employeeLimit int) (*CheckoutSession, error) {
	trackingID := uuid.NewString()

	q := url.Values{}
	q.Set("plan", packageName)
	q.Set("amount", fmt.Sprintf("%.2f", price))
	q.Set("limit", fmt.Sprintf("%d", employeeLimit))
	q.Set("tracking_id", trackingID)

	return &CheckoutSession{
		TrackingID:  trackingID,
		RedirectURL: h.BaseURL + "?" + q.Encode(),
		PackageName: packageName,
		Amount:      price,
	}, nil
}
