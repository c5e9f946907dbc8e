package dto

import "time"

// PublishTierRequest payload for tier publication. AskingPrice and Capacity
// are pointers so absent fields are distinguishable from zero.
type PublishTierRequest struct {
	Phase       string     `json:"phase"`
	AskingPrice *float64   `json:"askingPrice"`
	Capacity    *int       `json:"capacity"`
	Perks       string     `json:"perks"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// TierResponse renders one tier.
type TierResponse struct {
	Phase       string     `json:"phase"`
	AskingPrice float64    `json:"askingPrice"`
	Capacity    int        `json:"capacity"`
	Perks       *string    `json:"perks,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// InstitutionTiersResponse is one institution's entry in the browse listing.
type InstitutionTiersResponse struct {
	ID              string         `json:"id"`
	InstitutionName string         `json:"institutionName"`
	ContactName     string         `json:"contactName"`
	Tiers           []TierResponse `json:"tiers"`
}

// OwnTiersResponse renders an institution's own catalog.
type OwnTiersResponse struct {
	InstitutionName string         `json:"institutionName"`
	Tiers           []TierResponse `json:"tiers"`
}

// PhaseDescription is one entry of the static phase catalog.
type PhaseDescription struct {
	Phase       string `json:"phase"`
	Description string `json:"description"`
}
