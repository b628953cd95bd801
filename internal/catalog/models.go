package catalog

import (
	"time"

	"github.com/google/uuid"
)

// EventPackage is a predefined bundle with a base price and a venue
// allowance ("buffer fee") baked in. Packages carry an ordered component
// list and a scoped list of venues the package can be held at.
type EventPackage struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null" json:"name"`
	Description    string    `json:"description"`
	Price          float64   `gorm:"not null" json:"price"`
	GuestCapacity  int       `gorm:"not null" json:"guest_capacity"`
	VenueBufferFee float64   `gorm:"not null;default:0" json:"venue_buffer_fee"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Components []PackageComponent `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE;" json:"components,omitempty"`
	Venues     []Venue            `gorm:"many2many:package_venues;" json:"venues,omitempty"`
}

// PackageComponent is an individually priced inclusion inside a package
type PackageComponent struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PackageID uuid.UUID `gorm:"type:uuid;index;not null" json:"package_id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Venue is a bookable location with a per-guest cost basis
type Venue struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Address      string    `json:"address"`
	BasePrice    float64   `gorm:"not null" json:"base_price"`
	ExtraPaxRate float64   `gorm:"not null;default:0" json:"extra_pax_rate"`
	Capacity     int       `json:"capacity"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PackageVenue is the join table scoping venues to packages
type PackageVenue struct {
	EventPackageID uuid.UUID `gorm:"type:uuid;primaryKey" json:"event_package_id"`
	VenueID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"venue_id"`
}

// TableName sets the table name for EventPackage
func (EventPackage) TableName() string {
	return "event_packages"
}

// TableName sets the table name for PackageComponent
func (PackageComponent) TableName() string {
	return "package_components"
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

// TableName sets the table name for PackageVenue
func (PackageVenue) TableName() string {
	return "package_venues"
}
