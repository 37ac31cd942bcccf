package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/reaktor-issues/backend/internal/db"
	"github.com/reaktor-issues/backend/internal/models"
)

// UserData represents the structure of users in the JSON file
type UserData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"nombre"`
	Surname  string `json:"apellidos"`
	Role     string `json:"rol"`
}

// CategoryData represents the structure of categories in the JSON file
type CategoryData struct {
	Name        string `json:"nombre"`
	PrintReport bool   `json:"imprimirInforme"`
}

// JSONData represents the structure of the seed file
type JSONData struct {
	Users      []UserData     `json:"users"`
	Locations  []string       `json:"ubicaciones"`
	Categories []CategoryData `json:"categorias"`
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Connect to database
	db.Connect()

	// Run migrations first
	log.Println("Running database migrations...")
	db.AutoMigrate()

	log.Println("Seeding database with initial data...")

	if err := seed(); err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	log.Println("Database seeding completed successfully")
}

func seed() error {
	data, err := os.ReadFile("data/initial-data.json")
	if err != nil {
		return err
	}

	var jsonData JSONData
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return err
	}

	seedUsers(jsonData.Users)
	seedLocations(jsonData.Locations)
	seedCategories(jsonData.Categories)
	return nil
}

func seedUsers(users []UserData) {
	for _, userData := range users {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", userData.Email, err)
			continue
		}

		role := models.RoleTeacher
		if userData.Role == string(models.RoleAdmin) {
			role = models.RoleAdmin
		}

		user := models.User{
			Email:    userData.Email,
			Password: string(hashedPassword),
			Name:     userData.Name,
			Surname:  userData.Surname,
			Role:     role,
		}

		var existing models.User
		if err := db.DB.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err := db.DB.Create(&user).Error; err != nil {
				log.Printf("Error creating user %s: %v", user.Email, err)
			} else {
				log.Printf("Created user: %s (%s)", user.Email, user.Role)
			}
		} else {
			log.Printf("User already exists: %s", user.Email)
		}
	}
}

func seedLocations(names []string) {
	for _, name := range names {
		var existing models.Location
		if err := db.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.DB.Create(&models.Location{Name: name}).Error; err != nil {
				log.Printf("Error creating location %s: %v", name, err)
			} else {
				log.Printf("Created location: %s", name)
			}
		} else {
			log.Printf("Location already exists: %s", name)
		}
	}
}

func seedCategories(categories []CategoryData) {
	for _, categoryData := range categories {
		var existing models.Category
		if err := db.DB.Where("name = ?", categoryData.Name).First(&existing).Error; err != nil {
			category := models.Category{Name: categoryData.Name, PrintReport: categoryData.PrintReport}
			if err := db.DB.Create(&category).Error; err != nil {
				log.Printf("Error creating category %s: %v", categoryData.Name, err)
			} else {
				log.Printf("Created category: %s", categoryData.Name)
			}
		} else {
			log.Printf("Category already exists: %s", categoryData.Name)
		}
	}
}
