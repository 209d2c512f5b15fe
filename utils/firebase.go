package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/uph-campus/campus-events-backend/config"
)

// InitFirebase opens the Realtime Database holding events/ and eventsByDate/.
func InitFirebase(ctx context.Context, cfg *config.Config) (*db.Client, error) {
	log.Println("🔄 Initializing Firebase...")

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsPath != "" {
		if _, err := os.Stat(cfg.FirebaseCredentialsPath); err == nil {
			log.Printf("📂 Using Firebase credentials at: %s", cfg.FirebaseCredentialsPath)
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsPath))
		} else {
			log.Printf("⚠️  Firebase credentials file not found at: %s, falling back to default credentials", cfg.FirebaseCredentialsPath)
		}
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.FirebaseProjectID,
		DatabaseURL: cfg.FirebaseDatabaseURL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app initialization failed: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase database client failed: %w", err)
	}
	log.Printf("✅ Firebase Realtime Database ready at %s", cfg.FirebaseDatabaseURL)
	return client, nil
}
