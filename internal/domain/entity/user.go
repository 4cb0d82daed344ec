package entity

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleAdmin           Role = "admin"
	RoleServiceProvider Role = "service_provider"
	RoleEventProvider   Role = "event_provider"
	RoleVenueProvider   Role = "venue_provider"
	RoleCustomer        Role = "customer"
)

// RegistrableRoles are the roles a user may pick at registration.
// Admin accounts are only created through cmd/seed.
var RegistrableRoles = []Role{RoleCustomer, RoleServiceProvider, RoleEventProvider, RoleVenueProvider}

func (r Role) IsProvider() bool {
	switch r {
	case RoleServiceProvider, RoleEventProvider, RoleVenueProvider:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never plaintext.
type User struct {
	ID                string              `json:"id"`
	FullName          string              `json:"full_name"`
	Email             string              `json:"email"` // stored lowercase, unique
	Password          string              `json:"-"`
	Role              Role                `json:"role"`
	ServiceCategories []string            `json:"service_categories"`
	IsEmailVerified   bool                `json:"is_email_verified"`
	Onboarding        *ProviderOnboarding `json:"onboarding,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type BusinessType string

const (
	BusinessIndividual BusinessType = "individual"
	BusinessCompany    BusinessType = "company"
)

type ServiceProviderType string

const (
	ProviderGeneralService  ServiceProviderType = "general_service"
	ProviderEventManagement ServiceProviderType = "event_management"
)

// VerificationInfo is the identity block every provider submits.
type VerificationInfo struct {
	BusinessType                BusinessType `json:"business_type"`
	CompanyName                 string       `json:"company_name,omitempty"`
	NationalIDOrTradeLicenseURL string       `json:"national_id_or_trade_license_url"`
}

type ServiceProviderProfile struct {
	ProviderType      ServiceProviderType `json:"provider_type"`
	ServiceAreas      []string            `json:"service_areas"`
	YearsOfExperience *int                `json:"years_of_experience,omitempty"`
	TeamSize          *int                `json:"team_size,omitempty"`
	Specialties       []string            `json:"specialties"`
	PortfolioURLs     []string            `json:"portfolio_urls"`
}

type EventProviderProfile struct {
	OrganizationName string   `json:"organization_name"`
	EventTypes       []string `json:"event_types"`
	TeamSize         *int     `json:"team_size,omitempty"`
	PastEventsCount  *int     `json:"past_events_count,omitempty"`
	PortfolioURLs    []string `json:"portfolio_urls"`
}

type VenueProviderProfile struct {
	VenueName string   `json:"venue_name"`
	VenueType string   `json:"venue_type"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
}

// ProviderOnboarding embeds exactly one role-specific profile variant.
// Go has no union types, so Variant() and MatchesRole() enforce the
// one-of invariant at runtime.
type ProviderOnboarding struct {
	Verification    VerificationInfo        `json:"verification"`
	StripeAccountID string                  `json:"stripe_account_id"`
	BusinessAddress string                  `json:"business_address,omitempty"`
	ServiceProvider *ServiceProviderProfile `json:"service_provider,omitempty"`
	EventProvider   *EventProviderProfile   `json:"event_provider,omitempty"`
	VenueProvider   *VenueProviderProfile   `json:"venue_provider,omitempty"`
	SubmittedAt     time.Time               `json:"submitted_at"`
}

// Variant returns the role the populated profile belongs to, and whether
// exactly one profile variant is populated.
func (o *ProviderOnboarding) Variant() (Role, bool) {
	var (
		role  Role
		count int
	)
	if o.ServiceProvider != nil {
		role = RoleServiceProvider
		count++
	}
	if o.EventProvider != nil {
		role = RoleEventProvider
		count++
	}
	if o.VenueProvider != nil {
		role = RoleVenueProvider
		count++
	}
	return role, count == 1
}

// MatchesRole reports whether the populated variant is the one the given
// provider role is required to submit.
func (o *ProviderOnboarding) MatchesRole(r Role) bool {
	v, ok := o.Variant()
	return ok && v == r
}
