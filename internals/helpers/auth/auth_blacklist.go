package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"programpro_backend/internals/helpers/schema"
)

const blacklistTable = "token_blacklist"

// BlacklistReady reports whether the revocation table has been migrated.
// Before that, revocation is unavailable and every valid token is live.
func BlacklistReady(ctx context.Context, db *gorm.DB) bool {
	if db == nil {
		return false
	}
	cols, err := schema.ListColumns(ctx, db, blacklistTable)
	if err != nil {
		log.Printf("[WARN] %s probe failed, revocation disabled: %v", blacklistTable, err)
		return false
	}
	return cols.Has("token") && cols.Has("expired_at")
}

// Only an HMAC of the access token is stored, never the token itself.
func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Blacklist records rawAccessToken as revoked until expiresAt.
func Blacklist(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	if !BlacklistReady(ctx, db) {
		log.Printf("[WARN] %s not migrated yet, token not revoked", blacklistTable)
		return nil
	}
	return db.WithContext(ctx).Exec(`
		INSERT INTO token_blacklist (token, expired_at)
		VALUES (?, ?)
		ON CONFLICT (token) DO UPDATE
		SET expired_at = excluded.expired_at
	`, hmacHex(rawAccessToken, jwtSecret), expiresAt.UTC()).Error
}

// IsBlacklisted: is there a revocation for this token that has not expired?
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	if !BlacklistReady(ctx, db) {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM token_blacklist
		WHERE token = ?
		  AND expired_at > ?
	`, hmacHex(rawAccessToken, jwtSecret), time.Now().UTC()).Row().Scan(&n)
	return n > 0, err
}

// PurgeExpired deletes revocations whose token has expired anyway.
func PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	if !BlacklistReady(ctx, db) {
		return 0, nil
	}
	res := db.WithContext(ctx).Exec(`DELETE FROM token_blacklist WHERE expired_at <= ?`, time.Now().UTC())
	return res.RowsAffected, res.Error
}
