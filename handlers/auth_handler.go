package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	config "github.com/pathanacademy/mining_academy/configs"
	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
)

var validate = validator.New()

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type StudentLoginRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

// LoginUser signs in an admin with email/password and returns a JWT gating
// the admin routes.
func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	result := database.DB.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"token": t,
		"user": fiber.Map{
			"id":        user.ID.String(),
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}

// StudentLogin is the phone-based pseudo-login: no password, no OTP. A known
// phone gets greeted by name, an unknown one gets a blank session and is
// expected to complete a registration. Either way the caller receives a
// short-lived student token scoped to that phone.
func StudentLogin(c *fiber.Ctx) error {
	var req StudentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter a valid 10-digit phone number."})
	}

	var existing models.Registration
	name := ""
	registered := false
	err := database.DB.Where("phone = ?", req.Phone).First(&existing).Error
	if err == nil {
		name = existing.Name
		registered = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An error occurred. Please try again."})
	}

	claims := jwt.MapClaims{
		"user_id": req.Phone,
		"name":    name,
		"role":    "student",
		"exp":     time.Now().Add(time.Hour * 12).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	message := "Welcome! Please complete your registration to proceed."
	severity := "info"
	if registered {
		message = fmt.Sprintf("Welcome back, %s!", name)
		severity = "success"
	}

	return c.JSON(fiber.Map{
		"token":      t,
		"registered": registered,
		"name":       name,
		"phone":      req.Phone,
		"message":    message,
		"severity":   severity,
	})
}
