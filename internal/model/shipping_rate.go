package model

import "strings"

// DestinationSeparator joins province and regency in a composite destination key.
const DestinationSeparator = "|"

// ShippingRate is the flat cost of delivering to one destination zone.
type ShippingRate struct {
	DestinationKey string `json:"destinationKey" validate:"required"`
	Cost           int64  `json:"cost" validate:"gte=0"`
}

// DestinationKey builds the lookup key for a province and optional regency.
func DestinationKey(province, regency string) string {
	province = strings.TrimSpace(province)
	regency = strings.TrimSpace(regency)
	if regency == "" {
		return province
	}
	return province + DestinationSeparator + regency
}

// CanonicalDestination trims the province and regency parts of a raw key,
// so a stored rate and a document's derived key compare equal.
func CanonicalDestination(key string) string {
	province, regency, _ := strings.Cut(key, DestinationSeparator)
	return DestinationKey(province, regency)
}

// ProvinceOf returns the province part of a destination key.
func ProvinceOf(key string) string {
	province, _, _ := strings.Cut(key, DestinationSeparator)
	return province
}

// DestinationLabel renders a destination key for display ("Jawa Barat, Kota Bandung").
func DestinationLabel(key string) string {
	return strings.ReplaceAll(key, DestinationSeparator, ", ")
}
