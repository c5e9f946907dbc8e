package dto

// SignupRequest accepts both account kinds' signup payloads; vendors send
// businessName and institutions send institutionName.
type SignupRequest struct {
	BusinessName    string `json:"businessName"`
	InstitutionName string `json:"institutionName"`
	ContactName     string `json:"contactName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Phone           string `json:"phone"`
	CompanyURL      string `json:"companyUrl"`
}

// SigninRequest payload for signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VendorProfile is a vendor's public display fields.
type VendorProfile struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email,omitempty"`
}

// InstitutionProfile is an institution's public display fields.
type InstitutionProfile struct {
	ID              string `json:"id"`
	InstitutionName string `json:"institutionName"`
	ContactName     string `json:"contactName"`
	Email           string `json:"email,omitempty"`
}
