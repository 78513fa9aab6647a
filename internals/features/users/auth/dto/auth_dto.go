package dto

import (
	"time"

	"programpro_backend/internals/features/users/auth/model"
)

type RegisterRequest struct {
	Username   string  `json:"username" validate:"required,min=3,max=50"`
	Password   string  `json:"password" validate:"required,min=6"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	ChurchName *string `json:"church_name" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     *string    `json:"email,omitempty"`
	Role      string     `json:"role"`
	ChurchID  *int64     `json:"church_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func FromUserModel(u *model.UserModel) UserResponse {
	role := u.Role
	if role == "" {
		role = "user"
	}
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      role,
		ChurchID:  u.ChurchID,
		CreatedAt: u.CreatedAt,
	}
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

type RefreshResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
