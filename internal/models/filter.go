package models

import (
	"net/url"
	"strconv"
)

// RealtyFilter narrows and pages realty list queries. Zero values are
// omitted from the query string so the backend applies its defaults.
type RealtyFilter struct {
	// Limit caps the page size (backend default 100).
	Limit int
	// Offset skips the first N matching listings.
	Offset int
	// IsActive keeps only published listings when nil or true.
	IsActive *bool
	// MinPrice and MaxPrice bound the asking price.
	MinPrice *int
	MaxPrice *int
	// Rooms filters by exact room count.
	Rooms *int
	// City filters by city name.
	City string
	// Type filters by realty type.
	Type RealtyType
	// WithPhotos keeps only listings that have images.
	WithPhotos bool
	// OrderBy is the sort column: "created_at" (default) or "price".
	OrderBy string
	// DescOrder sorts newest/most expensive first when nil or true.
	DescOrder *bool
}

// Values encodes the filter as backend query parameters.
func (f RealtyFilter) Values() url.Values {
	v := url.Values{}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.IsActive != nil {
		v.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	if f.MinPrice != nil {
		v.Set("min_price", strconv.Itoa(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		v.Set("max_price", strconv.Itoa(*f.MaxPrice))
	}
	if f.Rooms != nil {
		v.Set("rooms", strconv.Itoa(*f.Rooms))
	}
	if f.City != "" {
		v.Set("city", f.City)
	}
	if f.Type != "" {
		v.Set("type", string(f.Type))
	}
	if f.WithPhotos {
		v.Set("with_photos", "true")
	}
	if f.OrderBy != "" {
		v.Set("order_by", f.OrderBy)
	}
	if f.DescOrder != nil {
		v.Set("desc_order", strconv.FormatBool(*f.DescOrder))
	}
	return v
}
