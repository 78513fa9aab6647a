package model

import "time"

// TokenBlacklist rows hold an HMAC of a revoked access token, never the token.
type TokenBlacklist struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	Token     string     `gorm:"column:token;not null;unique" json:"-"`
	ExpiredAt time.Time  `gorm:"column:expired_at;not null" json:"expired_at"`
	CreatedAt *time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at,omitempty"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
