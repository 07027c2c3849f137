package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

const generatedPasswordLength = 20

// admin seeds a back-office operator account.
func main() {
	email := flag.String("email", "", "admin email (required)")
	name := flag.String("name", "", "display name (required)")
	password := flag.String("password", "", "initial password; generated when empty")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "admin"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(logg, "config", err)
	logg = logger.New(logger.Options{
		ServiceName: "admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	generated := false
	if *password == "" {
		*password, err = security.GenerateTempPassword(generatedPasswordLength)
		requireResource(logg, "password generator", err)
		generated = true
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(logg, "database", err)
	defer dbClient.Close()

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(logg, "redis", err)
	defer redisClient.Close()

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(logg, "session manager", err)

	svc, err := auth.NewService(auth.ServiceParams{
		Repo:           auth.NewRepository(dbClient.DB()),
		SessionManager: sessions,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	requireResource(logg, "auth service", err)

	admin, err := svc.CreateAdmin(ctx, auth.CreateAdminInput{
		Email:    *email,
		Name:     *name,
		Password: *password,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create admin failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("created admin %s (%s)\n", admin.Email, admin.ID)
	if generated {
		fmt.Printf("temporary password: %s\n", *password)
	}
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
