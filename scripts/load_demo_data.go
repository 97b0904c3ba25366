package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"linkvault-backend/internal/config"
	"linkvault-backend/internal/database"
	"linkvault-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match the YAML demo files
type UserData struct {
	Name        string           `yaml:"name"`
	Email       string           `yaml:"email"`
	Password    string           `yaml:"password"`
	Categories  []CategoryData   `yaml:"categories,omitempty"`
	Links       []LinkData       `yaml:"links,omitempty"`
	Collections []CollectionData `yaml:"collections,omitempty"`
}

type CategoryData struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type LinkData struct {
	URL        string   `yaml:"url"`
	Title      string   `yaml:"title"`
	Notes      string   `yaml:"notes,omitempty"`
	Status     string   `yaml:"status,omitempty"`
	IsFavorite bool     `yaml:"is_favorite,omitempty"`
	IsPrivate  bool     `yaml:"is_private,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
}

type CollectionData struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Color       string   `yaml:"color"`
	IsPrivate   bool     `yaml:"is_private,omitempty"`
	Links       []string `yaml:"links,omitempty"` // link titles of the same user
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

func main() {
	log.Println("🚀 Loading demo data from YAML files...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load demo data: %v", err)
	}

	log.Println("✅ Demo data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel:    logger.Silent,
		AutoMigrate: true,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	usersCreated := 0
	linksCreated := 0
	collectionsCreated := 0
	for _, userData := range users {
		user, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		if created {
			usersCreated++
		}

		categoryMap := make(map[string]*models.Category)
		for _, categoryData := range userData.Categories {
			category, _, err := createCategory(db, user, categoryData)
			if err != nil {
				log.Printf("⚠️  Warning: failed to create category %s: %v", categoryData.Name, err)
				continue
			}
			categoryMap[categoryData.Name] = category
		}

		linkMap := make(map[string]*models.Link)
		for _, linkData := range userData.Links {
			link, created, err := createLink(db, user, linkData, categoryMap)
			if err != nil {
				log.Printf("⚠️  Warning: failed to create link %s: %v", linkData.Title, err)
				continue
			}
			linkMap[linkData.Title] = link
			if created {
				linksCreated++
			}
		}

		for _, collectionData := range userData.Collections {
			_, created, err := createCollection(db, user, collectionData, linkMap)
			if err != nil {
				log.Printf("⚠️  Warning: failed to create collection %s: %v", collectionData.Title, err)
				continue
			}
			if created {
				collectionsCreated++
			}
		}
	}
	log.Printf("📋 Users: %d created, %d total", usersCreated, len(users))
	log.Printf("📋 Links: %d created", linksCreated)
	log.Printf("📋 Collections: %d created", collectionsCreated)

	return nil
}

func loadUsers(dataDir string) ([]UserData, error) {
	var allUsers []UserData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") {
			var file UsersFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allUsers = append(allUsers, file.Users...)
		}
		return nil
	})

	return allUsers, err
}

func createUser(db *gorm.DB, userData UserData) (*models.User, bool, error) {
	var user models.User
	if err := db.Where("email = ?", userData.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hash, err := bcrypt.GenerateFromPassword([]byte(userData.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, false, fmt.Errorf("failed to hash password: %w", err)
			}

			user = models.User{
				Name:     userData.Name,
				Email:    userData.Email,
				Password: string(hash),
			}

			if err := db.Create(&user).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create user: %w", err)
			}
			return &user, true, nil // created = true
		}
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, false, nil // created = false (existing)
}

func createCategory(db *gorm.DB, user *models.User, categoryData CategoryData) (*models.Category, bool, error) {
	var category models.Category
	if err := db.Where("user_id = ? AND name = ?", user.ID, categoryData.Name).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			category = models.Category{
				UserID: user.ID,
				Name:   categoryData.Name,
				Color:  categoryData.Color,
			}

			if err := db.Create(&category).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create category: %w", err)
			}
			return &category, true, nil
		}
		return nil, false, fmt.Errorf("failed to query category: %w", err)
	}

	return &category, false, nil
}

func createLink(db *gorm.DB, user *models.User, linkData LinkData, categoryMap map[string]*models.Category) (*models.Link, bool, error) {
	var link models.Link
	if err := db.Where("user_id = ? AND url = ?", user.ID, linkData.URL).First(&link).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			status := models.LinkStatusUnread
			if linkData.Status != "" {
				status = models.LinkStatus(linkData.Status)
			}

			var notes *string
			if linkData.Notes != "" {
				notes = &linkData.Notes
			}

			link = models.Link{
				UserID:     user.ID,
				URL:        linkData.URL,
				Title:      linkData.Title,
				Notes:      notes,
				Status:     status,
				IsFavorite: linkData.IsFavorite,
				IsPrivate:  linkData.IsPrivate,
			}

			if err := db.Create(&link).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create link: %w", err)
			}

			for _, categoryName := range linkData.Categories {
				category := categoryMap[categoryName]
				if category == nil {
					log.Printf("⚠️  Warning: category %s not found for link %s", categoryName, linkData.Title)
					continue
				}
				lc := models.LinkCategory{LinkID: link.ID, CategoryID: category.ID}
				if err := db.Create(&lc).Error; err != nil {
					log.Printf("⚠️  Warning: failed to attach category %s: %v", categoryName, err)
				}
			}
			return &link, true, nil
		}
		return nil, false, fmt.Errorf("failed to query link: %w", err)
	}

	return &link, false, nil
}

func createCollection(db *gorm.DB, user *models.User, collectionData CollectionData, linkMap map[string]*models.Link) (*models.Collection, bool, error) {
	var collection models.Collection
	if err := db.Where("user_id = ? AND title = ?", user.ID, collectionData.Title).First(&collection).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			var description *string
			if collectionData.Description != "" {
				description = &collectionData.Description
			}

			collection = models.Collection{
				UserID:      user.ID,
				Title:       collectionData.Title,
				Description: description,
				Color:       collectionData.Color,
				IsPrivate:   collectionData.IsPrivate,
			}

			if err := db.Create(&collection).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create collection: %w", err)
			}

			for _, linkTitle := range collectionData.Links {
				link := linkMap[linkTitle]
				if link == nil {
					log.Printf("⚠️  Warning: link %s not found for collection %s", linkTitle, collectionData.Title)
					continue
				}
				membership := models.CollectionLink{CollectionID: collection.ID, LinkID: link.ID}
				if err := db.Create(&membership).Error; err != nil {
					log.Printf("⚠️  Warning: failed to add link %s to collection: %v", linkTitle, err)
				}
			}
			return &collection, true, nil
		}
		return nil, false, fmt.Errorf("failed to query collection: %w", err)
	}

	return &collection, false, nil
}
