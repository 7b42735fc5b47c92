package main

import (
	"log"

	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/controllers"
	"github.com/mockanytime/dakplus/routes"
	"github.com/mockanytime/dakplus/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Wire payment services
	controllers.InitServices(cfg)

	// Set up router
	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
