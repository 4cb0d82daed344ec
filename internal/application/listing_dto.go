package application

import (
	"strings"

	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/pkg/apperr"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

type DiscountInput struct {
	Type  string  `json:"type" binding:"required,oneof=percentage fixed"`
	Value float64 `json:"value" binding:"required,gt=0"`
}

func (d DiscountInput) toEntity() *entity.Discount {
	return &entity.Discount{Type: entity.DiscountType(d.Type), Value: d.Value}
}

type MediaInput struct {
	GalleryImages []string `json:"gallery_images" binding:"omitempty,max=10,dive,url"`
	VideoURL      string   `json:"video_url" binding:"omitempty,url"`
}

type AvailabilityOverrideInput struct {
	Date   string `json:"date" binding:"required,isodate"`
	Status string `json:"status" binding:"required,oneof=available pending booked"`
}

func toOverrides(in []AvailabilityOverrideInput) []entity.AvailabilityOverride {
	out := make([]entity.AvailabilityOverride, len(in))
	for i, o := range in {
		out[i] = entity.AvailabilityOverride{Date: o.Date, Status: entity.AvailabilityStatus(o.Status)}
	}
	return out
}

type ServiceInformationInput struct {
	ServiceName string   `json:"service_name" binding:"required,min=2,max=150"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	ServiceArea []string `json:"service_area"`
	Tags        []string `json:"tags"`
}

type ServicePricingInput struct {
	Amount      float64        `json:"amount" binding:"required,gt=0"`
	PricingType string         `json:"pricing_type" binding:"required,oneof=fixed hourly daily package"`
	Currency    string         `json:"currency" binding:"required,currency"`
	Discount    *DiscountInput `json:"discount"`
}

type ServiceSettingsInput struct {
	Amenities map[string]bool `json:"amenities"`
	Capacity  *int            `json:"capacity" binding:"omitempty,gt=0"`
}

type CreateServiceRequest struct {
	Information           ServiceInformationInput     `json:"information" binding:"required"`
	Pricing               ServicePricingInput         `json:"pricing" binding:"required"`
	Settings              *ServiceSettingsInput       `json:"settings"`
	Media                 *MediaInput                 `json:"media"`
	AvailabilityOverrides []AvailabilityOverrideInput `json:"availability_overrides" binding:"omitempty,dive"`
}

// Update inputs use pointers for plain replace-or-keep fields and Optional
// for fields where an explicit null clears the stored value. Optional
// fields are validated in the service because binding tags cannot see
// inside them.

type UpdateServiceInformationInput struct {
	ServiceName *string   `json:"service_name" binding:"omitempty,min=2,max=150"`
	Category    *string   `json:"category" binding:"omitempty,min=1"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	ServiceArea *[]string `json:"service_area"`
	Tags        *[]string `json:"tags"`
}

type UpdateServicePricingInput struct {
	Amount      *float64                        `json:"amount" binding:"omitempty,gt=0"`
	PricingType *string                         `json:"pricing_type" binding:"omitempty,oneof=fixed hourly daily package"`
	Currency    *string                         `json:"currency" binding:"omitempty,currency"`
	Discount    helpers.Optional[DiscountInput] `json:"discount"`
}

type UpdateServiceSettingsInput struct {
	Amenities *map[string]bool      `json:"amenities"`
	Capacity  helpers.Optional[int] `json:"capacity"`
}

type UpdateMediaInput struct {
	GalleryImages *[]string                `json:"gallery_images" binding:"omitempty,max=10,dive,url"`
	VideoURL      helpers.Optional[string] `json:"video_url"`
}

type UpdateServiceRequest struct {
	Information           *UpdateServiceInformationInput `json:"information"`
	Pricing               *UpdateServicePricingInput     `json:"pricing"`
	Settings              *UpdateServiceSettingsInput    `json:"settings"`
	Media                 *UpdateMediaInput              `json:"media"`
	AvailabilityOverrides *[]AvailabilityOverrideInput   `json:"availability_overrides" binding:"omitempty,dive"`
}

type VenueInformationInput struct {
	VenueName   string `json:"venue_name" binding:"required,min=2,max=150"`
	VenueType   string `json:"venue_type" binding:"required"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	AddressLine string `json:"address_line" binding:"required"`
	City        string `json:"city" binding:"required"`
	Area        string `json:"area"`
}

type VenuePricingInput struct {
	BasePrice float64         `json:"base_price" binding:"required,gt=0"`
	Currency  string          `json:"currency" binding:"required,currency"`
	Discount  *DiscountInput  `json:"discount"`
	Amenities map[string]bool `json:"amenities"`
}

type VenueCapacityInput struct {
	MaximumGuests int `json:"maximum_guests" binding:"required,gt=0"`
}

type CreateVenueRequest struct {
	Information           VenueInformationInput       `json:"information" binding:"required"`
	Pricing               VenuePricingInput           `json:"pricing" binding:"required"`
	Capacity              VenueCapacityInput          `json:"capacity" binding:"required"`
	Media                 *MediaInput                 `json:"media"`
	AvailabilityOverrides []AvailabilityOverrideInput `json:"availability_overrides" binding:"omitempty,dive"`
}

type UpdateVenueInformationInput struct {
	VenueName   *string `json:"venue_name" binding:"omitempty,min=2,max=150"`
	VenueType   *string `json:"venue_type" binding:"omitempty,min=1"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	AddressLine *string `json:"address_line" binding:"omitempty,min=1"`
	City        *string `json:"city" binding:"omitempty,min=1"`
	Area        *string `json:"area"`
}

type UpdateVenuePricingInput struct {
	BasePrice *float64                        `json:"base_price" binding:"omitempty,gt=0"`
	Currency  *string                         `json:"currency" binding:"omitempty,currency"`
	Discount  helpers.Optional[DiscountInput] `json:"discount"`
	Amenities *map[string]bool                `json:"amenities"`
}

type UpdateVenueCapacityInput struct {
	MaximumGuests *int `json:"maximum_guests" binding:"omitempty,gt=0"`
}

type UpdateVenueRequest struct {
	Information           *UpdateVenueInformationInput `json:"information"`
	Pricing               *UpdateVenuePricingInput     `json:"pricing"`
	Capacity              *UpdateVenueCapacityInput    `json:"capacity"`
	Media                 *UpdateMediaInput            `json:"media"`
	AvailabilityOverrides *[]AvailabilityOverrideInput `json:"availability_overrides" binding:"omitempty,dive"`
}

// validateDiscount covers the rule binding tags cannot express: a
// percentage discount cannot exceed 100.
func validateDiscount(d *entity.Discount) error {
	if d == nil {
		return nil
	}
	if d.Type == entity.DiscountPercentage && d.Value > 100 {
		return apperr.BadRequest("Percentage discount cannot exceed 100")
	}
	return nil
}

func validateOverrides(overrides []entity.AvailabilityOverride) error {
	if !entity.UniqueOverrideDates(overrides) {
		return apperr.BadRequest("Availability override dates must be unique")
	}
	return nil
}

func validateGallery(images []string) error {
	if len(images) > entity.MaxGalleryImages {
		return apperr.BadRequest("Gallery cannot hold more than 10 images")
	}
	return nil
}

func normalizeCurrency(c string) string {
	return strings.ToUpper(c)
}
