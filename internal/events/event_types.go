package events

import (
	"time"

	"github.com/spec-kit/sponsorship-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuoteSubmitted     EventType = "quote_submitted"
	EventQuoteStatusChanged EventType = "quote_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role      domain.Role `json:"role"`
	AccountID string      `json:"account_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	QuoteID   string      `json:"quote_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// QuoteSubmittedPayload payload.
type QuoteSubmittedPayload struct {
	InstitutionID          string           `json:"institution_id"`
	TierPhase              domain.TierPhase `json:"tier_phase"`
	VendorAmount           float64          `json:"vendor_amount"`
	InstitutionExpectation float64          `json:"institution_expectation"`
}

// QuoteStatusChangedPayload payload.
type QuoteStatusChangedPayload struct {
	VendorID  string             `json:"vendor_id"`
	NewStatus domain.QuoteStatus `json:"new_status"`
}
