// Package models defines the core data structures exchanged with the
// realty backend and derived on the client.
package models

// TokenPair holds the opaque bearer tokens issued by the backend on
// login, registration, and refresh. The client never inspects the
// refresh token; the access token payload is decoded only to derive
// a display identity.
type TokenPair struct {
	// AccessToken is the short-lived bearer token for domain calls.
	AccessToken string `json:"access_token"`
	// RefreshToken is the longer-lived token used solely to obtain a new pair.
	RefreshToken string `json:"refresh_token"`
}

// Identity is the display identity decoded from the access token payload.
// It is a UI convenience, not a security assertion.
type Identity struct {
	// ID is the user identifier from the "sub" claim.
	ID string `json:"id"`
	// Username is the display name from the "username" claim.
	Username string `json:"username"`
}

// User represents a user profile as served by the backend.
type User struct {
	// ID is the unique identifier for the user.
	ID int `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// Email is the user's contact email.
	Email string `json:"email"`
	// Phone is the user's contact phone number.
	Phone string `json:"phone"`
}

// RealtyType defines the set of valid realty type identifiers.
type RealtyType string

const (
	// Apartment represents a flat inside an apartment building.
	Apartment RealtyType = "APARTMENT"
	// House represents a standalone house.
	House RealtyType = "HOUSE"
	// Commercial represents commercial premises.
	Commercial RealtyType = "COMMERCIAL"
)

// Image holds a hosted image reference attached to a realty listing.
type Image struct {
	// ID is the unique identifier for the image.
	ID int `json:"id"`
	// URL is the public address of the hosted image.
	URL string `json:"url"`
	// PublicID is the hosting provider's identifier for the image.
	PublicID string `json:"public_id"`
}

// Realty represents a single realty listing.
type Realty struct {
	// ID is the unique identifier for the listing.
	ID int `json:"id"`
	// UserID identifies the listing owner.
	UserID int `json:"user_id"`
	// Title is the short headline of the listing.
	Title string `json:"title"`
	// Description holds the free-form listing text.
	Description string `json:"description"`
	// Price is the asking price in whole currency units.
	Price int `json:"price"`
	// Area is the floor area in square meters.
	Area int `json:"area"`
	// Floor is the storey number; set only for apartments.
	Floor *int `json:"floor,omitempty"`
	// Rooms is the room count; set only for apartments.
	Rooms *int `json:"rooms,omitempty"`
	// City is the city the property is located in.
	City string `json:"city"`
	// State is the region the property is located in.
	State string `json:"state"`
	// Type is the kind of property being listed.
	Type RealtyType `json:"type"`
	// IsActive reports whether the listing is currently published.
	IsActive bool `json:"is_active"`
}

// RealtyShort is the list-view projection of a listing.
type RealtyShort struct {
	Realty
	// TitleImage is the cover image, if any has been uploaded.
	TitleImage *Image `json:"title_image"`
	// IsFavorite reports whether the current user favorited the listing;
	// nil for anonymous requests.
	IsFavorite *bool `json:"is_favorite,omitempty"`
}

// RealtyFull is the detail-view projection of a listing.
type RealtyFull struct {
	Realty
	// Images holds every image attached to the listing.
	Images []Image `json:"images"`
}
