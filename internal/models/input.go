package models

// ImageCreate references a freshly uploaded image to attach on create.
type ImageCreate struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ImageUpdate references an image on update; ID is nil for images
// added since the listing was created.
type ImageUpdate struct {
	ID       *int   `json:"id,omitempty"`
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// RealtyCreate is the payload for publishing a new listing. Floor and
// Rooms are required for apartments and ignored otherwise.
type RealtyCreate struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       int           `json:"price"`
	Area        int           `json:"area"`
	Floor       *int          `json:"floor,omitempty"`
	Rooms       *int          `json:"rooms,omitempty"`
	City        string        `json:"city"`
	State       string        `json:"state"`
	Type        RealtyType    `json:"type"`
	IsActive    bool          `json:"is_active"`
	Images      []ImageCreate `json:"images"`
}

// RealtyUpdate is the partial payload for editing a listing. Only the
// type is required; nil fields are left unchanged by the backend.
type RealtyUpdate struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Price       *int          `json:"price,omitempty"`
	Area        *int          `json:"area,omitempty"`
	Floor       *int          `json:"floor,omitempty"`
	Rooms       *int          `json:"rooms,omitempty"`
	City        *string       `json:"city,omitempty"`
	State       *string       `json:"state,omitempty"`
	Type        RealtyType    `json:"type"`
	IsActive    *bool         `json:"is_active,omitempty"`
	Images      []ImageUpdate `json:"images,omitempty"`
}

// UserUpdate is the partial payload for editing the user profile.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}
