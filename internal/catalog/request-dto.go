package catalog

// ComponentInput describes one inclusion when creating a package
type ComponentInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"min=0"`
}

// CreatePackageRequest represents package creation payload
type CreatePackageRequest struct {
	Name           string           `json:"name" binding:"required"`
	Description    string           `json:"description"`
	Price          float64          `json:"price" binding:"required,min=0"`
	GuestCapacity  int              `json:"guest_capacity" binding:"required,min=1"`
	VenueBufferFee float64          `json:"venue_buffer_fee" binding:"min=0"`
	Components     []ComponentInput `json:"components"`
	VenueIDs       []string         `json:"venue_ids"`
}

// UpdatePackageRequest represents package update payload (partial)
type UpdatePackageRequest struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	GuestCapacity  *int     `json:"guest_capacity,omitempty"`
	VenueBufferFee *float64 `json:"venue_buffer_fee,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
	VenueIDs       []string `json:"venue_ids,omitempty"`
}

// CreateVenueRequest represents venue creation payload
type CreateVenueRequest struct {
	Title        string  `json:"title" binding:"required"`
	Address      string  `json:"address"`
	BasePrice    float64 `json:"base_price" binding:"min=0"`
	ExtraPaxRate float64 `json:"extra_pax_rate" binding:"min=0"`
	Capacity     int     `json:"capacity" binding:"min=0"`
}

// UpdateVenueRequest represents venue update payload (partial)
type UpdateVenueRequest struct {
	Title        *string  `json:"title,omitempty"`
	Address      *string  `json:"address,omitempty"`
	BasePrice    *float64 `json:"base_price,omitempty"`
	ExtraPaxRate *float64 `json:"extra_pax_rate,omitempty"`
	Capacity     *int     `json:"capacity,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
