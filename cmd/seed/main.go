package main

import (
	"log"
	"os"

	"growth-engine-be/internal/model"
	"growth-engine-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding database...")

	school := seedSchool(db)
	seedUsers(db, school.Id)
	seedStudents(db, school.Id)
	SeedNotificationTypes(db)

	color.Green("Seeding completed successfully!")
}

func seedSchool(db *gorm.DB) *model.School {
	school := model.School{
		Id:      uuid.New(),
		Code:    "TLV-HS-01",
		Name:    "Tel Aviv High School",
		Address: "Tel Aviv, Israel",
		Email:   "contact@tlv-hs.edu",
	}

	var existing model.School
	if err := db.Where("code = ?", school.Code).First(&existing).Error; err == nil {
		color.Yellow("School '%s' already exists, skipping...", school.Code)
		return &existing
	}

	if err := db.Create(&school).Error; err != nil {
		log.Fatalf("Error creating school: %v", err)
	}
	color.Green("School created: %s", school.Name)
	return &school
}

func seedUsers(db *gorm.DB, schoolId uuid.UUID) {
	// Demo credential, rotate before exposing the instance anywhere shared.
	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing seed password: %v", err)
	}
	passwordHash := string(hash)

	users := []model.User{
		{Id: uuid.New(), Email: "admin@tlv-hs.edu", FirstName: "Admin", LastName: "User", Role: "ADMIN", AuthProvider: "EMAIL", SchoolId: &schoolId, EmailVerified: true, IsActive: true, PasswordHash: &passwordHash},
		{Id: uuid.New(), Email: "teacher@tlv-hs.edu", FirstName: "John", LastName: "Doe", Role: "TEACHER", AuthProvider: "EMAIL", SchoolId: &schoolId, EmailVerified: true, IsActive: true, PasswordHash: &passwordHash},
		{Id: uuid.New(), Email: "principal@tlv-hs.edu", FirstName: "Jane", LastName: "Smith", Role: "PRINCIPAL", AuthProvider: "EMAIL", SchoolId: &schoolId, EmailVerified: true, IsActive: true, PasswordHash: &passwordHash},
	}

	for _, u := range users {
		var existing model.User
		if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", u.Email)
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("Error creating user '%s': %v", u.Email, err)
			continue
		}
		color.Green("User created: %s (%s)", u.Email, u.Role)
	}
}

func seedStudents(db *gorm.DB, schoolId uuid.UUID) {
	students := []model.Student{
		{Id: uuid.New(), FirstName: "David", LastName: "Cohen", ExternalId: "S12345", GradeLevel: "10", ClassName: "Math Period 3", SchoolId: schoolId},
		{Id: uuid.New(), FirstName: "Sarah", LastName: "Levi", ExternalId: "S12346", GradeLevel: "10", ClassName: "Math Period 3", SchoolId: schoolId},
	}

	for _, s := range students {
		var existing model.Student
		if err := db.Where("external_id = ? AND school_id = ?", s.ExternalId, schoolId).First(&existing).Error; err == nil {
			color.Yellow("Student '%s %s' already exists, skipping...", s.FirstName, s.LastName)
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			log.Printf("Error creating student '%s %s': %v", s.FirstName, s.LastName, err)
			continue
		}
		color.Green("Student created: %s %s", s.FirstName, s.LastName)
	}
}
