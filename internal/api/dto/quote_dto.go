package dto

import "time"

// SubmitQuoteRequest payload for quote submission.
type SubmitQuoteRequest struct {
	InstitutionID string   `json:"institutionId"`
	TierPhase     string   `json:"tierPhase"`
	VendorAmount  *float64 `json:"vendorAmount"`
	Notes         string   `json:"notes"`
}

// SetQuoteStatusRequest payload for status updates.
type SetQuoteStatusRequest struct {
	Status string `json:"status"`
}

// QuoteResponse renders one quote. Exactly one of Institution or Vendor is
// set, depending on which side is listing.
type QuoteResponse struct {
	ID                     string              `json:"id"`
	TierPhase              string              `json:"tierPhase"`
	VendorAmount           float64             `json:"vendorAmount"`
	InstitutionExpectation float64             `json:"institutionExpectation"`
	Status                 string              `json:"status"`
	Notes                  *string             `json:"notes,omitempty"`
	Institution            *InstitutionProfile `json:"institution,omitempty"`
	Vendor                 *VendorProfile      `json:"vendor,omitempty"`
	CreatedAt              time.Time           `json:"createdAt"`
	UpdatedAt              time.Time           `json:"updatedAt"`
}
