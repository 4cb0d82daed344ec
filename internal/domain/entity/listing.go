package entity

import (
	"errors"
	"time"
)

// PublishStatus is the moderation state controlling customer visibility.
type PublishStatus string

const (
	PublishPending   PublishStatus = "pending"
	PublishPublished PublishStatus = "published"
	PublishRejected  PublishStatus = "rejected"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityPending   AvailabilityStatus = "pending"
	AvailabilityBooked    AvailabilityStatus = "booked"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PricingType string

const (
	PricingFixed   PricingType = "fixed"
	PricingHourly  PricingType = "hourly"
	PricingDaily   PricingType = "daily"
	PricingPackage PricingType = "package"
)

const MaxGalleryImages = 10

var ErrDuplicateOverrideDate = errors.New("availability override dates must be unique")

// AvailabilityOverride pins a single date to an explicit status.
type AvailabilityOverride struct {
	Date   string             `json:"date"` // YYYY-MM-DD
	Status AvailabilityStatus `json:"status"`
}

// UniqueOverrideDates reports whether no date appears twice.
func UniqueOverrideDates(overrides []AvailabilityOverride) bool {
	seen := make(map[string]struct{}, len(overrides))
	for _, o := range overrides {
		if _, dup := seen[o.Date]; dup {
			return false
		}
		seen[o.Date] = struct{}{}
	}
	return true
}

type Discount struct {
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`
}

// Approver identifies the admin that published a listing.
type Approver struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Media struct {
	GalleryImages []string `json:"gallery_images"`
	VideoURL      string   `json:"video_url,omitempty"`
}

// ServiceListing is a service-provider catalog entry.
type ServiceListing struct {
	ID                    string                 `json:"id"`
	OwnerID               string                 `json:"owner_id"`
	Information           ServiceInformation     `json:"information"`
	Pricing               ServicePricing         `json:"pricing"`
	Settings              ServiceSettings        `json:"settings"`
	Media                 Media                  `json:"media"`
	AvailabilityOverrides []AvailabilityOverride `json:"availability_overrides"`
	PublishStatus         PublishStatus          `json:"publish_status"`
	ApprovedBy            *Approver              `json:"approved_by,omitempty"`
	ApprovedAt            *time.Time             `json:"approved_at,omitempty"`
	IsDeleted             bool                   `json:"-"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

type ServiceInformation struct {
	ServiceName string   `json:"service_name"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	ServiceArea []string `json:"service_area"`
	Tags        []string `json:"tags"`
}

type ServicePricing struct {
	Amount      float64     `json:"amount"`
	PricingType PricingType `json:"pricing_type"`
	Currency    string      `json:"currency"` // ISO 4217, stored uppercase
	Discount    *Discount   `json:"discount,omitempty"`
}

type ServiceSettings struct {
	Amenities map[string]bool `json:"amenities"`
	Capacity  *int            `json:"capacity,omitempty"`
}

// Venue is a venue-provider catalog entry, structurally parallel to
// ServiceListing but with its own block shapes.
type Venue struct {
	ID                    string                 `json:"id"`
	OwnerID               string                 `json:"owner_id"`
	Information           VenueInformation       `json:"information"`
	Pricing               VenuePricing           `json:"pricing"`
	Capacity              VenueCapacity          `json:"capacity"`
	Media                 Media                  `json:"media"`
	AvailabilityOverrides []AvailabilityOverride `json:"availability_overrides"`
	PublishStatus         PublishStatus          `json:"publish_status"`
	ApprovedBy            *Approver              `json:"approved_by,omitempty"`
	ApprovedAt            *time.Time             `json:"approved_at,omitempty"`
	IsDeleted             bool                   `json:"-"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

type VenueInformation struct {
	VenueName   string `json:"venue_name"`
	VenueType   string `json:"venue_type"`
	Description string `json:"description,omitempty"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Area        string `json:"area,omitempty"`
}

type VenuePricing struct {
	BasePrice float64         `json:"base_price"`
	Currency  string          `json:"currency"`
	Discount  *Discount       `json:"discount,omitempty"`
	Amenities map[string]bool `json:"amenities"`
}

type VenueCapacity struct {
	MaximumGuests int `json:"maximum_guests"`
}

// ResetModeration sends a listing back to the moderation queue. Any content
// edit invalidates a prior approval.
func (s *ServiceListing) ResetModeration() {
	s.PublishStatus = PublishPending
	s.ApprovedBy = nil
	s.ApprovedAt = nil
}

func (v *Venue) ResetModeration() {
	v.PublishStatus = PublishPending
	v.ApprovedBy = nil
	v.ApprovedAt = nil
}
