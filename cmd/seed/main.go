package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"studyrooms/internal/config"
	"studyrooms/internal/database"
	"studyrooms/internal/domain"
	validatorpkg "studyrooms/internal/pkg/validator"
	"studyrooms/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	hoursRepo := repository.NewOpeningHoursRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// ================== ROOMS ==================
	log.Println("Seeding rooms...")

	photo := func(name string) *string {
		url := fmt.Sprintf("/static/rooms/%s.jpg", name)
		return &url
	}

	rooms := []domain.Room{
		{Name: "Gruppenraum 101", Description: "Gruppenraum mit Whiteboard und Beamer", Capacity: 8, Floor: 1, PhotoURL: photo("gruppenraum-101"), IsActive: true},
		{Name: "Gruppenraum 102", Description: "Gruppenraum mit Whiteboard", Capacity: 6, Floor: 1, PhotoURL: photo("gruppenraum-102"), IsActive: true},
		{Name: "Gruppenraum 103", Description: "Kleiner Gruppenraum", Capacity: 4, Floor: 1, IsActive: true},
		{Name: "Gruppenraum 201", Description: "Gruppenraum mit Monitor und HDMI", Capacity: 8, Floor: 2, PhotoURL: photo("gruppenraum-201"), IsActive: true},
		{Name: "Gruppenraum 202", Description: "Gruppenraum mit Monitor", Capacity: 6, Floor: 2, IsActive: true},
		{Name: "Einzelarbeitsraum 203", Description: "Ruhiger Einzelarbeitsplatz", Capacity: 1, Floor: 2, IsActive: true},
		{Name: "Einzelarbeitsraum 204", Description: "Ruhiger Einzelarbeitsplatz", Capacity: 1, Floor: 2, IsActive: true},
		{Name: "Seminarraum 301", Description: "Seminarraum für Lerngruppen", Capacity: 12, Floor: 3, PhotoURL: photo("seminarraum-301"), IsActive: true},
		{Name: "Medienraum 302", Description: "Raum mit Aufnahmetechnik", Capacity: 4, Floor: 3, IsActive: true},
		{Name: "Gruppenraum 104", Description: "Derzeit wegen Renovierung geschlossen", Capacity: 6, Floor: 1, IsActive: false},
	}

	for i := range rooms {
		if violations := validatorpkg.Validate(&rooms[i]); violations != nil {
			log.Fatalf("invalid seed room %q: %v", rooms[i].Name, violations)
		}
		if err := roomRepo.Upsert(ctx, &rooms[i]); err != nil {
			log.Fatalf("seeding room %q: %v", rooms[i].Name, err)
		}
	}
	log.Printf("Rooms seeded: %d", len(rooms))

	// ================== OPENING HOURS ==================
	log.Println("Seeding opening hours...")

	week := make([]domain.OpeningHour, 0, 7)
	for d := 0; d < 7; d++ {
		row := domain.OpeningHour{Weekday: d, Opens: "08:00", Closes: "21:00"}
		switch time.Weekday(d) {
		case time.Saturday:
			row.Opens, row.Closes = "09:00", "18:00"
		case time.Sunday:
			row.IsClosed = true
			row.Note = "Sonntags geschlossen"
		}
		week = append(week, row)
	}
	if err := hoursRepo.SaveWeeklyHours(ctx, week); err != nil {
		log.Fatal("seeding weekly hours: ", err)
	}

	heiligabendOpens, heiligabendCloses := "08:00", "13:00"
	exceptions := []domain.OpeningException{
		{Date: "2026-10-03", IsClosed: true, Reason: "Tag der Deutschen Einheit"},
		{Date: "2026-12-24", Opens: &heiligabendOpens, Closes: &heiligabendCloses, Reason: "Heiligabend"},
		{Date: "2026-12-25", IsClosed: true, Reason: "1. Weihnachtstag"},
	}
	for i := range exceptions {
		if err := hoursRepo.SaveException(ctx, &exceptions[i]); err != nil {
			log.Fatalf("seeding exception %s: %v", exceptions[i].Date, err)
		}
	}

	// ================== USERS ==================
	log.Println("Seeding users...")

	seedUsers := []struct {
		email    string
		name     string
		password string
		role     domain.UserRole
	}{
		{"admin@bibliothek.example", "Bibliothek Verwaltung", "admin123", domain.RoleStaff},
		{"lena.mueller@uni.example", "Lena Müller", "student123", domain.RoleStudent},
		{"jonas.weber@uni.example", "Jonas Weber", "student123", domain.RoleStudent},
	}

	users := make([]*domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		if existing, err := userRepo.GetByEmail(ctx, su.email); err == nil {
			users = append(users, existing)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hashing password: ", err)
		}

		u := &domain.User{
			Email:        su.email,
			PasswordHash: string(hash),
			DisplayName:  su.name,
			Role:         su.role,
		}
		if violations := validatorpkg.Validate(u); violations != nil {
			log.Fatalf("invalid seed user %q: %v", su.email, violations)
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("seeding user %q: %v", su.email, err)
		}
		users = append(users, u)
	}

	// ================== DEMO BOOKINGS ==================
	log.Println("Seeding demo bookings...")

	tomorrow := time.Now().In(cfg.Location).AddDate(0, 0, 1)
	date := domain.FormatDate(tomorrow)

	demo := []domain.Booking{
		{RoomID: rooms[0].ID, UserID: users[1].ID, Date: date, StartsAt: 10 * 60, EndsAt: 12 * 60, PeopleCount: 4, Purpose: "Lerngruppe Statistik", Status: domain.BookingConfirmed},
		{RoomID: rooms[3].ID, UserID: users[2].ID, Date: date, StartsAt: 14 * 60, EndsAt: 16*60 + 30, PeopleCount: 6, Purpose: "Projektbesprechung", Status: domain.BookingConfirmed},
	}
	created := 0
	for i := range demo {
		err := bookingRepo.CreateIfFree(ctx, &demo[i])
		switch err {
		case nil:
			created++
		case repository.ErrOverlappingBooking:
			// already seeded on a previous run
		default:
			log.Fatalf("seeding booking in room %d: %v", demo[i].RoomID, err)
		}
	}
	log.Printf("Demo bookings created: %d", created)

	log.Println("Seed completed.")
	log.Println("Test accounts:")
	for _, su := range seedUsers {
		log.Printf("  %s / %s (%s)", su.email, su.password, su.role)
	}
}
