package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/configs"
	"programpro_backend/internals/features/users/auth/dto"
	authRepo "programpro_backend/internals/features/users/auth/repository"
	"programpro_backend/internals/features/users/auth/service"
	helper "programpro_backend/internals/helpers"
	helperAuth "programpro_backend/internals/helpers/auth"
)

const refreshCookie = "refresh_token"

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func setRefreshCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    value,
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
		Expires:  expires,
	})
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}

	user, err := service.Register(c.UserContext(), ac.DB, req)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		return helper.JsonError(c, fiber.StatusConflict, "Username already exists")
	case errors.Is(err, service.ErrEmailTaken):
		return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
	case err != nil:
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "User registered successfully", dto.FromUserModel(user))
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}

	user, tokens, err := service.Login(c.UserContext(), ac.DB, req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	setRefreshCookie(c, tokens.Refresh, tokens.RefreshExpires)
	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		User:        dto.FromUserModel(user),
		AccessToken: tokens.Access,
		ExpiresAt:   tokens.AccessExpires,
	})
}

// POST /api/auth/refresh
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies(refreshCookie))
	if raw == "" {
		var body dto.RefreshRequest
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	access, exp, err := service.Refresh(c.UserContext(), ac.DB, raw)
	if errors.Is(err, helperAuth.ErrInvalidToken) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Token refreshed", dto.RefreshResponse{AccessToken: access, ExpiresAt: exp})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)
	if raw == "" {
		raw = helperAuth.ExtractBearerToken(c, true)
	}
	if err := service.Logout(c.UserContext(), ac.DB, raw); err != nil {
		return helper.FromServiceError(c, err)
	}

	setRefreshCookie(c, "", time.Now().Add(-time.Hour))
	return helper.JsonOK(c, "Logged out successfully", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(c.UserContext(), ac.DB, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromUserModel(user))
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}

	err = service.ChangePassword(c.UserContext(), ac.DB, userID, req)
	if errors.Is(err, service.ErrWrongPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
