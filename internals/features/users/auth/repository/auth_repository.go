// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"programpro_backend/internals/features/users/auth/model"
)

/* ====================== USER ====================== */

func FindUserByUsername(ctx context.Context, db *gorm.DB, username string) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func IsUsernameTaken(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, errors.New("username cannot be empty")
	}
	var n int64
	err := db.WithContext(ctx).Model(&model.UserModel{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func IsEmailTaken(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.UserModel{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func CreateUser(ctx context.Context, db *gorm.DB, user *model.UserModel) error {
	return db.WithContext(ctx).Create(user).Error
}

func UpdateUserPassword(ctx context.Context, db *gorm.DB, userID int64, hash string) error {
	return db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

/* ====================== CHURCH ====================== */

// CreateChurch inserts a bare church row. Optional church columns are left
// to the settings endpoint.
func CreateChurch(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var id int64
	err := db.WithContext(ctx).
		Raw(`INSERT INTO churches (name) VALUES (?) RETURNING id`, name).
		Row().Scan(&id)
	return id, err
}

// FirstChurchID returns 0 when there is no church yet.
func FirstChurchID(ctx context.Context, db *gorm.DB) (int64, error) {
	var ids []int64
	if err := db.WithContext(ctx).Table("churches").Order("id ASC").Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

func CountChurchUsers(ctx context.Context, db *gorm.DB, churchID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.UserModel{}).Where("church_id = ?", churchID).Count(&n).Error
	return n, err
}

/* ====================== BLACKLIST TOKEN ====================== */

func CountActiveBlacklist(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.TokenBlacklist{}).Count(&n).Error
	return n, err
}
