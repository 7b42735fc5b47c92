package config

import (
	"fmt"
	"os"

	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	RazorpayKey    string
	RazorpaySecret string
	FrontendURL    string
	Port           string
	Env            string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RazorpayKey:    os.Getenv("RAZORPAY_KEY"),
		RazorpaySecret: os.Getenv("RAZORPAY_SECRET"),
		FrontendURL:    os.Getenv("FRONTEND_URL"),
		Port:           os.Getenv("PORT"),
		Env:            os.Getenv("ENV"),
	}

	if config.FrontendURL == "" {
		config.FrontendURL = "http://localhost:3000"
	}
	if config.Port == "" {
		config.Port = utils.DefaultPort
	}

	return config, nil
}

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.UserOTP{},
		&models.UserUnlock{},
		&models.Purchase{},
		&models.Topic{},
		&models.Subtopic{},
		&models.Question{},
		&models.Test{},
		&models.Result{},
		&models.Notification{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
