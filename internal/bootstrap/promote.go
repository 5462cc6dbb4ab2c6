package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

// Promote grants the admin role to the account with the given email. Role
// elevation is an explicit operator action, never a side effect of an
// authorization check, so this runs out-of-band as a CLI subcommand.
func Promote(cfg *config.Config, email string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := initializeDatabase(cfg)
	if err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := db.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("no account found for %s", email)
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if user.IsAdmin() {
		return fmt.Errorf("%s is already an admin", email)
	}

	user.Role = models.RoleAdmin
	if err := db.UpdateUser(user); err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	fmt.Printf("Promoted %s (%s) to admin\n", user.Name, user.Email)
	return nil
}
