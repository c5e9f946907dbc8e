package domain

import "time"

// QuoteStatus represents the negotiation state of a quote.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// Valid reports whether the status is one of the enumerated states.
func (s QuoteStatus) Valid() bool {
	return s == QuoteStatusPending || s == QuoteStatusAccepted || s == QuoteStatusRejected
}

// Quote is a vendor's offer against one institution's tier. Everything but
// Status is immutable after creation; InstitutionExpectation snapshots the
// tier's asking price at submission time and is never re-read.
type Quote struct {
	ID                     string
	VendorID               string
	InstitutionID          string
	TierPhase              TierPhase
	VendorAmount           float64
	InstitutionExpectation float64
	Status                 QuoteStatus
	Notes                  *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Counterpart carries the display fields of the account on the other side
// of a quote, joined in when listing.
type Counterpart struct {
	ID          string
	DisplayName string
	ContactName string
	Email       string
}

// QuoteWithCounterpart is a quote paired with the opposite party's display
// fields (the institution for vendor listings, the vendor for institution
// listings).
type QuoteWithCounterpart struct {
	Quote
	Counterpart Counterpart
}
