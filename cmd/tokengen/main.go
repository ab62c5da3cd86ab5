// Command tokengen signs an access token for an existing, active user.
// It uses the same JWT_SECRET, JWT_ISSUER and JWT_TTL_MINUTES as the server.
//
//	tokengen -user 3f1c2a9e-...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/auth"
	"github.com/rohit/cms-editorial/internal/config"
	"github.com/rohit/cms-editorial/internal/repository/postgres"
	"github.com/rohit/cms-editorial/pkg/logger"
)

func main() {
	userFlag := flag.String("user", "", "id of the user to sign a token for")
	flag.Parse()

	log := logger.New()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatal().Str("user", *userFlag).Msg("A valid -user id is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := postgres.NewUserRepository(db).GetByID(ctx, userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load user")
	}
	if user == nil || !user.Active {
		log.Fatal().Str("user_id", userID.String()).Msg("User not found or inactive")
	}

	token, expiresAt, err := auth.NewTokenService(cfg.Auth).Issue(user.ID, user.RoleID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue token")
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Time("expires_at", expiresAt).
		Msg("Token issued")
	fmt.Fprintln(os.Stdout, token)
}
