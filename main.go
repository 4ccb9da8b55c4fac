package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"sirrs-be/config"
	"sirrs-be/routes"
	"sirrs-be/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}

	log.Println("MongoDB connection established successfully!")

	config.ConnectRedis()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	r.Use(cors.New(corsConfig))

	routes.AuthRoutes(r)
	routes.IncidentRoutes(r)

	r.Static("/uploads", storage.UploadDir)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "SIRRS API is running",
			"timestamp": time.Now(),
		})
	})

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
