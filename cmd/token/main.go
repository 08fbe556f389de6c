// Command token mints access tokens signed with the configured JWT secret.
// Users are managed by an external identity provider; this tool covers local
// development and operations.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/infrastructure/auth"
	"github.com/rationshop/backend/internal/infrastructure/config"
)

func main() {
	var (
		userID string
		role   string
		ttl    time.Duration
		asJSON bool
	)
	flag.StringVar(&userID, "user", "", "User ID (UUID); a random one is generated when empty")
	flag.StringVar(&role, "role", string(auth.RoleUser), "Role: user or admin")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime (default: jwt.access_token_expiration)")
	flag.BoolVar(&asJSON, "json", false, "Print the token with its expiry as JSON")
	flag.Parse()

	if err := run(userID, auth.Role(role), ttl, asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
}

func run(userID string, role auth.Role, ttl time.Duration, asJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	id := uuid.New()
	if userID != "" {
		if id, err = uuid.Parse(userID); err != nil {
			return fmt.Errorf("invalid user id %q: %w", userID, err)
		}
	}

	token, err := auth.NewJWTService(cfg.JWT).GenerateToken(auth.GenerateTokenInput{UserID: id, Role: role, TTL: ttl})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			UserID uuid.UUID `json:"user_id"`
			Role   auth.Role `json:"role"`
			*auth.Token
		}{id, role, token})
	}
	fmt.Println(token.AccessToken)
	return nil
}
