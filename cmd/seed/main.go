package main

import (
	"fmt"
	"log"

	"eventcraft/internal/bookings"
	"eventcraft/internal/catalog"
	"eventcraft/internal/shared/config"
	"eventcraft/internal/shared/database"
	"eventcraft/internal/staff"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB

	packages map[string]*catalog.EventPackage
	venues   map[string]*catalog.Venue
}

func main() {
	fmt.Println("🌱 Starting EventCraft Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.GetPostgreSQL()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seeder := &Seeder{
		db:       db,
		packages: make(map[string]*catalog.EventPackage),
		venues:   make(map[string]*catalog.Venue),
	}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"wedding_details",
		"events",
		"booking_records",
		"package_venues",
		"package_components",
		"event_packages",
		"venues",
		"staff_accounts",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		fmt.Printf("  ✓ Cleaned table: %s\n", table)
	}
	return nil
}

// SeedAll seeds staff accounts, the venue catalog, packages with their
// component lists and scoped venues, and demo booking records
func (s *Seeder) SeedAll() error {
	if err := s.seedStaff(); err != nil {
		return fmt.Errorf("staff seeding failed: %w", err)
	}
	if err := s.seedVenues(); err != nil {
		return fmt.Errorf("venue seeding failed: %w", err)
	}
	if err := s.seedPackages(); err != nil {
		return fmt.Errorf("package seeding failed: %w", err)
	}
	if err := s.seedBookings(); err != nil {
		return fmt.Errorf("booking seeding failed: %w", err)
	}
	return nil
}

func (s *Seeder) seedStaff() error {
	accounts := []struct {
		firstName string
		lastName  string
		email     string
		password  string
		role      staff.Role
	}{
		{"Admin", "User", "admin@eventcraft.local", "admin123", staff.RoleAdmin},
		{"Maria", "Santos", "maria@eventcraft.local", "staff123", staff.RoleStaff},
		{"Paolo", "Reyes", "paolo@eventcraft.local", "staff123", staff.RoleOrganizer},
	}

	for _, a := range accounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		account := &staff.Account{
			FirstName: a.firstName,
			LastName:  a.lastName,
			Email:     a.email,
			Password:  string(hashed),
			Role:      a.role,
		}
		if err := s.db.GetPostgreSQL().Create(account).Error; err != nil {
			return err
		}
		fmt.Printf("  ✓ Staff account: %s (%s)\n", a.email, a.role)
	}
	return nil
}

func (s *Seeder) seedVenues() error {
	venues := []catalog.Venue{
		{Title: "Grand Pavilion", Address: "12 Rizal Ave", BasePrice: 80000, ExtraPaxRate: 50, Capacity: 300, IsActive: true},
		{Title: "Garden Terrace", Address: "4 Mabini St", BasePrice: 55000, ExtraPaxRate: 40, Capacity: 180, IsActive: true},
		{Title: "Seaside Hall", Address: "88 Roxas Blvd", BasePrice: 65000, ExtraPaxRate: 60, Capacity: 250, IsActive: true},
		{Title: "Heritage Ballroom", Address: "1 Escolta", BasePrice: 95000, ExtraPaxRate: 75, Capacity: 400, IsActive: true},
	}

	for i := range venues {
		if err := s.db.GetPostgreSQL().Create(&venues[i]).Error; err != nil {
			return err
		}
		s.venues[venues[i].Title] = &venues[i]
		fmt.Printf("  ✓ Venue: %s\n", venues[i].Title)
	}
	return nil
}

func (s *Seeder) seedPackages() error {
	type componentSpec struct {
		name  string
		price float64
	}
	specs := []struct {
		name           string
		description    string
		price          float64
		guestCapacity  int
		venueBufferFee float64
		components     []componentSpec
		venueTitles    []string
	}{
		{
			name:           "Classic Wedding Package",
			description:    "Full-service wedding for up to 150 guests",
			price:          250000,
			guestCapacity:  150,
			venueBufferFee: 5000,
			components: []componentSpec{
				{"Catering (150 pax)", 90000},
				{"Photography & Video", 45000},
				{"Floral Styling", 20000},
				{"Sound & Lights", 15000},
				{"Event Coordination", 25000},
			},
			venueTitles: []string{"Grand Pavilion", "Garden Terrace", "Heritage Ballroom"},
		},
		{
			name:           "Corporate Gala Package",
			description:    "Turnkey corporate evening for up to 200 guests",
			price:          180000,
			guestCapacity:  200,
			venueBufferFee: 8000,
			components: []componentSpec{
				{"Catering (200 pax)", 80000},
				{"Stage & LED Wall", 30000},
				{"Host & Program", 15000},
				{"Photobooth", 8000},
			},
			venueTitles: []string{"Seaside Hall", "Heritage Ballroom"},
		},
	}

	for _, spec := range specs {
		pkg := &catalog.EventPackage{
			Name:           spec.name,
			Description:    spec.description,
			Price:          spec.price,
			GuestCapacity:  spec.guestCapacity,
			VenueBufferFee: spec.venueBufferFee,
			IsActive:       true,
		}
		for i, c := range spec.components {
			pkg.Components = append(pkg.Components, catalog.PackageComponent{
				Name:      c.name,
				Price:     c.price,
				SortOrder: i,
			})
		}
		for _, title := range spec.venueTitles {
			if venue, ok := s.venues[title]; ok {
				pkg.Venues = append(pkg.Venues, *venue)
			}
		}
		if err := s.db.GetPostgreSQL().Create(pkg).Error; err != nil {
			return err
		}
		s.packages[pkg.Name] = pkg
		fmt.Printf("  ✓ Package: %s (%d components, %d venues)\n", pkg.Name, len(pkg.Components), len(pkg.Venues))
	}
	return nil
}

// seedBookings creates demo records: a confirmed wedding booking with a
// structured component-changes column, a confirmed booking whose diff is
// embedded in the notes field the legacy way, a pending one the converter
// must reject, and an already-converted one.
func (s *Seeder) seedBookings() error {
	wedding := s.packages["Classic Wedding Package"]
	gala := s.packages["Corporate Gala Package"]
	pavilion := s.venues["Grand Pavilion"]
	seaside := s.venues["Seaside Hall"]

	floralID := ""
	for _, c := range wedding.Components {
		if c.Name == "Floral Styling" {
			floralID = c.ID.String()
		}
	}

	records := []bookings.BookingRecord{
		{
			Reference:     "BK-2026-0001",
			Status:        bookings.StatusConfirmed,
			ClientName:    "Ana Dela Cruz",
			ClientEmail:   "ana@example.com",
			ClientPhone:   "+63-917-555-0101",
			ClientAddress: "Quezon City",
			EventType:     "wedding",
			EventDate:     "2026-11-14",
			GuestCount:    180,
			Theme:         "Rustic Garden",
			StartTime:     "14:00",
			EndTime:       "22:00",
			PackageID:     &wedding.ID,
			VenueID:       &pavilion.ID,
			ComponentChanges: fmt.Sprintf(
				`{"removed_components":[%q],"custom_components":[{"name":"String Quartet","price":12000}]}`,
				floralID),
			Notes: "Bride prefers afternoon ceremony.",
		},
		{
			Reference:     "BK-2026-0002",
			Status:        bookings.StatusConfirmed,
			ClientName:    "Nexus Corp",
			ClientEmail:   "events@nexuscorp.example.com",
			ClientPhone:   "+63-2-8555-0102",
			ClientAddress: "Makati",
			EventType:     "corporate",
			EventDate:     "2026-12-05",
			GuestCount:    220,
			Theme:         "Year-End Gala",
			PackageID:     &gala.ID,
			VenueID:       &seaside.ID,
			// legacy record: the diff rides inside the notes field
			Notes: `Projector needed on stage. [COMPONENT_CHANGES] {"removed_components":["Photobooth"],"custom_components":[{"name":"Live Band","price":35000}]}`,
		},
		{
			Reference:   "BK-2026-0003",
			Status:      bookings.StatusPending,
			ClientName:  "Liza Manalo",
			ClientEmail: "liza@example.com",
			ClientPhone: "+63-917-555-0103",
			EventType:   "birthday",
			EventDate:   "2026-10-02",
			GuestCount:  60,
			Theme:       "Retro 80s",
		},
		{
			Reference:   "BK-2026-0004",
			Status:      bookings.StatusConverted,
			ClientName:  "Ramon Villanueva",
			ClientEmail: "ramon@example.com",
			ClientPhone: "+63-917-555-0104",
			EventType:   "anniversary",
			EventDate:   "2026-09-19",
			GuestCount:  90,
			Theme:       "Silver Jubilee",
			PackageID:   &gala.ID,
		},
	}

	for i := range records {
		if err := s.db.GetPostgreSQL().Create(&records[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  ✓ Booking: %s (%s)\n", records[i].Reference, records[i].Status)
	}
	return nil
}
