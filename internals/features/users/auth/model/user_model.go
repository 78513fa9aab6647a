package model

import "time"

type UserModel struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	Username     string     `gorm:"column:username;not null;unique" json:"username"`
	Email        *string    `gorm:"column:email" json:"email,omitempty"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         string     `gorm:"column:role;default:user" json:"role"`
	ChurchID     *int64     `gorm:"column:church_id" json:"church_id"`
	CreatedAt    *time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}
