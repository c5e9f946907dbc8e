package domain

import "time"

// Role discriminates the two account kinds on the marketplace.
type Role string

const (
	RoleVendor      Role = "vendor"
	RoleInstitution Role = "institution"
)

// Valid reports whether the role is one of the known kinds.
func (r Role) Valid() bool {
	return r == RoleVendor || r == RoleInstitution
}

// Account is the domain model shared by vendors and institutions. The two
// kinds differ only in display fields: DisplayName carries the vendor's
// businessName or the institution's institutionName, and CompanyURL is set
// for vendors only.
type Account struct {
	ID           string
	Role         Role
	DisplayName  string
	ContactName  string
	Email        string
	PasswordHash string
	Phone        *string
	CompanyURL   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
