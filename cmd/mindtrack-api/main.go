package main

import (
	"log"

	_ "mindtrack/docs"
	"mindtrack/internal/app"
)

// @title MindTrack API
// @version 1.0
// @description Habit and mood tracking service: sessions, records and derived reports

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name access_token_cookie

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}
