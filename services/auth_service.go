package services

import (
	"errors"
	"log"
	"time"

	"jobtorget-backend/config"
	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// AuthService handles account registration, coach approval and JWT issuance.
type AuthService struct {
	DB     *gorm.DB
	secret []byte
	expiry time.Duration
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		DB:     db,
		secret: []byte(cfg.JWTSecret),
		expiry: time.Duration(cfg.JWTExpiryMins) * time.Minute,
	}
}

// IssueToken signs a JWT for the given account.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// --- HTTP handlers ---

// Register creates a pending account. A coach must approve it before login.
func (s *AuthService) Register(c *fiber.Ctx) error {
	type Req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, password and role are required"})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be at least 8 characters"})
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		log.Printf("❌ Registration lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Status:       models.UserStatusPending,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user already exists"})
		}
		log.Printf("❌ Registration insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration received, awaiting coach approval",
		"user": fiber.Map{
			"id":     user.ID,
			"email":  user.Email,
			"role":   user.Role,
			"status": user.Status,
		},
	})
}

// Login authenticates an active account and sets the token cookie.
func (s *AuthService) Login(c *fiber.Ctx) error {
	type Req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	var user models.User
	if err := s.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		log.Printf("❌ Login lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
	}

	if user.Status != models.UserStatusActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "account awaiting coach approval"})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		log.Printf("❌ Token signing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Strict",
		MaxAge:   int(s.expiry.Seconds()),
	})
	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   token,
		"user":    fiber.Map{"id": user.ID, "email": user.Email, "role": user.Role},
	})
}

// Approve activates a pending account. Coach only (enforced in routing).
func (s *AuthService) Approve(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "approval failed"})
	}

	if err := s.DB.Model(&user).Update("status", models.UserStatusActive).Error; err != nil {
		log.Printf("❌ Approving user %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "approval failed"})
	}

	log.Printf("✅ User approved: %s (%s)", user.Email, id)
	return c.JSON(fiber.Map{
		"message": "user approved",
		"user":    fiber.Map{"id": user.ID, "email": user.Email, "role": user.Role, "status": models.UserStatusActive},
	})
}

// Logout clears the token cookie.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{Name: "token", Value: "", HTTPOnly: true, MaxAge: -1})
	return c.JSON(fiber.Map{"message": "logged out"})
}
