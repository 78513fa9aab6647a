package seeds

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"programpro_backend/internals/configs"
	authModel "programpro_backend/internals/features/users/auth/model"
	authRepo "programpro_backend/internals/features/users/auth/repository"
	authService "programpro_backend/internals/features/users/auth/service"
	helperAuth "programpro_backend/internals/helpers/auth"
)

const defaultChurchName = "Default Church"

// AdminSeed describes the bootstrap admin account.
type AdminSeed struct {
	Username string
	Password string
}

// AdminFromEnv reads the admin account from configs.
func AdminFromEnv() AdminSeed {
	return AdminSeed{Username: configs.AdminUsername, Password: configs.AdminPassword}
}

// EnsureAdminUser creates the first church and an admin in it when the admin
// username does not exist yet. It reports whether a user was created.
func EnsureAdminUser(ctx context.Context, db *gorm.DB, seed AdminSeed) (bool, error) {
	username := strings.TrimSpace(seed.Username)
	if username == "" || seed.Password == "" {
		log.Println("[WARN] ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return false, nil
	}

	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := authRepo.IsUsernameTaken(ctx, tx, username)
		if err != nil {
			return err
		}
		if taken {
			return nil
		}

		churchID, err := authRepo.FirstChurchID(ctx, tx)
		if err != nil {
			return err
		}
		if churchID == 0 {
			if churchID, err = authRepo.CreateChurch(ctx, tx, defaultChurchName); err != nil {
				return err
			}
		}

		hash, err := authService.HashPassword(seed.Password)
		if err != nil {
			return err
		}
		user := &authModel.UserModel{
			Username:     username,
			PasswordHash: hash,
			Role:         helperAuth.RoleAdmin,
			ChurchID:     &churchID,
		}
		if err := authRepo.CreateUser(ctx, tx, user); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		log.Printf("✅ Admin user '%s' created", username)
	}
	return created, nil
}

// RunAllSeeds never fails startup: errors are logged and swallowed.
func RunAllSeeds(ctx context.Context, db *gorm.DB) {
	if db == nil {
		log.Println("[WARN] seeds skipped: no database")
		return
	}
	if _, err := EnsureAdminUser(ctx, db, AdminFromEnv()); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("[WARN] admin seed timed out: %v", err)
			return
		}
		log.Printf("[ERROR] admin seed failed: %v", err)
	}
}
