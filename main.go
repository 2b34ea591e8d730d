package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Set properties of the predefined Logger: a prefix identifying the app
	// and no timestamp flags (the hosting platform adds its own).
	log.SetPrefix("mc/macro-calc-go-api: ")
	log.SetFlags(0)

	// .env is optional — production sets plain environment variables.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)

	h := &Handler{metrics: NewMetrics(prometheus.DefaultRegisterer)}
	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
