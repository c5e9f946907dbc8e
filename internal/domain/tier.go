package domain

import "time"

// TierPhase enumerates the sponsorship levels an institution can offer.
type TierPhase string

const (
	PhaseGold     TierPhase = "gold"
	PhaseSilver   TierPhase = "silver"
	PhasePlatinum TierPhase = "platinum"
)

// Valid reports whether the phase is one of the published levels.
func (p TierPhase) Valid() bool {
	return p == PhaseGold || p == PhaseSilver || p == PhasePlatinum
}

// Tier is a sponsorship offer owned by exactly one institution. An
// institution holds at most one tier per phase; publishing a phase again
// replaces the prior tier for that phase.
type Tier struct {
	InstitutionID string
	Phase         TierPhase
	AskingPrice   float64
	Capacity      int
	Perks         *string
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InstitutionTiers groups an institution's published tier set with the
// display fields vendors browse by.
type InstitutionTiers struct {
	InstitutionID   string
	InstitutionName string
	ContactName     string
	Tiers           []Tier
}
