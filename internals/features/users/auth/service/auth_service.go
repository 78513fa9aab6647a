package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"programpro_backend/internals/configs"
	"programpro_backend/internals/features/users/auth/dto"
	"programpro_backend/internals/features/users/auth/model"
	authRepo "programpro_backend/internals/features/users/auth/repository"
	helper "programpro_backend/internals/helpers"
	helperAuth "programpro_backend/internals/helpers/auth"
)

const defaultChurchName = "Default Church"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", helper.ErrConflict)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", helper.ErrConflict)
	ErrWrongPassword      = errors.New("current password incorrect")
)

// Tokens is a freshly issued access/refresh pair.
type Tokens struct {
	Access         string
	AccessExpires  time.Time
	Refresh        string
	RefreshExpires time.Time
}

func tokenUser(u *model.UserModel) helperAuth.TokenUser {
	tu := helperAuth.TokenUser{ID: u.ID, Username: u.Username, Role: u.Role}
	if u.ChurchID != nil {
		tu.ChurchID = *u.ChurchID
	}
	return tu
}

func refreshSecret() string {
	if s := strings.TrimSpace(configs.JWTRefreshSecret); s != "" {
		return s
	}
	return configs.JWTSecret
}

func IssueTokens(u *model.UserModel, now time.Time) (Tokens, error) {
	var t Tokens
	var err error
	t.Access, t.AccessExpires, err = helperAuth.IssueToken(tokenUser(u), helperAuth.TokenAccess, configs.JWTSecret, configs.AccessTokenTTL, now)
	if err != nil {
		return Tokens{}, err
	}
	t.Refresh, t.RefreshExpires, err = helperAuth.IssueToken(tokenUser(u), helperAuth.TokenRefresh, refreshSecret(), configs.RefreshTokenTTL, now)
	if err != nil {
		return Tokens{}, err
	}
	return t, nil
}

/* ==========================
   REGISTER
========================== */

// Register creates the user. With a church name a new church is created and
// the user becomes its admin; otherwise the user joins the first church
// (created on demand), as admin only when nobody else belongs to it yet.
func Register(ctx context.Context, db *gorm.DB, req dto.RegisterRequest) (*model.UserModel, error) {
	username := strings.TrimSpace(req.Username)

	taken, err := authRepo.IsUsernameTaken(ctx, db, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	var email *string
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		e := strings.ToLower(strings.TrimSpace(*req.Email))
		if taken, err := authRepo.IsEmailTaken(ctx, db, e); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailTaken
		}
		email = &e
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.UserModel{Username: username, Email: email, PasswordHash: hash}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var churchID int64
		role := helperAuth.RoleEditor

		if req.ChurchName != nil && strings.TrimSpace(*req.ChurchName) != "" {
			if churchID, err = authRepo.CreateChurch(ctx, tx, strings.TrimSpace(*req.ChurchName)); err != nil {
				return err
			}
			role = helperAuth.RoleAdmin
		} else {
			if churchID, err = authRepo.FirstChurchID(ctx, tx); err != nil {
				return err
			}
			if churchID == 0 {
				if churchID, err = authRepo.CreateChurch(ctx, tx, defaultChurchName); err != nil {
					return err
				}
			}
			members, err := authRepo.CountChurchUsers(ctx, tx, churchID)
			if err != nil {
				return err
			}
			if members == 0 {
				role = helperAuth.RoleAdmin
			}
		}

		user.ChurchID = &churchID
		user.Role = role
		return authRepo.CreateUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] user %q registered in church %d as %s", user.Username, *user.ChurchID, user.Role)
	return user, nil
}

/* ==========================
   LOGIN / REFRESH
========================== */

func Login(ctx context.Context, db *gorm.DB, req dto.LoginRequest) (*model.UserModel, Tokens, error) {
	user, err := authRepo.FindUserByUsername(ctx, db, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Tokens{}, ErrInvalidCredentials
		}
		return nil, Tokens{}, err
	}
	if err := CheckPasswordHash(user.PasswordHash, req.Password); err != nil {
		return nil, Tokens{}, ErrInvalidCredentials
	}

	tokens, err := IssueTokens(user, time.Now())
	if err != nil {
		return nil, Tokens{}, err
	}
	return user, tokens, nil
}

// Refresh trades a valid refresh token for a new access token. The user is
// reloaded so the new token carries the current role and church.
func Refresh(ctx context.Context, db *gorm.DB, rawRefresh string) (string, time.Time, error) {
	claims, err := helperAuth.ParseToken(rawRefresh, helperAuth.TokenRefresh, refreshSecret())
	if err != nil {
		return "", time.Time{}, err
	}
	user, err := authRepo.FindUserByID(ctx, db, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", time.Time{}, helperAuth.ErrInvalidToken
		}
		return "", time.Time{}, err
	}
	return helperAuth.IssueToken(tokenUser(user), helperAuth.TokenAccess, configs.JWTSecret, configs.AccessTokenTTL, time.Now())
}

/* ==========================
   LOGOUT / PASSWORD
========================== */

// Logout revokes the access token until it would have expired anyway.
func Logout(ctx context.Context, db *gorm.DB, rawAccess string) error {
	if rawAccess == "" {
		return nil
	}
	expiresAt := time.Now().Add(configs.AccessTokenTTL)
	if claims, err := helperAuth.ParseToken(rawAccess, helperAuth.TokenAccess, configs.JWTSecret); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time.Add(time.Minute)
	}
	return helperAuth.Blacklist(ctx, db, rawAccess, configs.JWTSecret, expiresAt)
}

func ChangePassword(ctx context.Context, db *gorm.DB, userID int64, req dto.ChangePasswordRequest) error {
	user, err := authRepo.FindUserByID(ctx, db, userID)
	if err != nil {
		return err
	}
	if err := CheckPasswordHash(user.PasswordHash, req.CurrentPassword); err != nil {
		return ErrWrongPassword
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return authRepo.UpdateUserPassword(ctx, db, userID, hash)
}
