package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"programpro_backend/internals/configs"
	authRepo "programpro_backend/internals/features/users/auth/repository"
	helperAuth "programpro_backend/internals/helpers/auth"
)

// PurgeBlacklist removes revocations of tokens that have expired anyway.
func PurgeBlacklist(ctx context.Context, db *gorm.DB) {
	if !helperAuth.BlacklistReady(ctx, db) {
		log.Println("[CLEANUP] token_blacklist not migrated yet, skipping")
		return
	}
	log.Println("[CLEANUP] purging token_blacklist...")

	n, err := helperAuth.PurgeExpired(ctx, db)
	if err != nil {
		log.Printf("[CLEANUP ERROR] purge failed: %v", err)
		return
	}
	left, err := authRepo.CountActiveBlacklist(ctx, db)
	if err != nil {
		log.Printf("[CLEANUP ERROR] count failed: %v", err)
		return
	}
	log.Printf("[CLEANUP] %d expired revocations removed, %d left", n, left)
}

// StartBlacklistCleanupScheduler runs PurgeBlacklist on TOKEN_BLACKLIST_CRON
// (default @daily). The caller stops the returned cron on shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(configs.BlacklistPurgeCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		PurgeBlacklist(ctx, db)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[INFO] blacklist cleanup scheduled (%s)", configs.BlacklistPurgeCron)
	return c, nil
}
