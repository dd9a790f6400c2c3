package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
	"github.com/pathanacademy/mining_academy/websocket"
)

type SuggestionRequest struct {
	Name       string `json:"name" validate:"required"`
	Mobile     string `json:"mobile" validate:"required"`
	Suggestion string `json:"suggestion" validate:"required"`
}

type StudentSuggestionRequest struct {
	Text string `json:"text" validate:"required,min=10"`
}

// CreateSuggestion is the public suggestion box: anyone can leave a course
// request with a name and mobile number.
func CreateSuggestion(c *fiber.Ctx) error {
	var req SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please fill in all fields."})
	}

	suggestion := models.Suggestion{
		ID:          uuid.New(),
		Text:        req.Suggestion,
		Name:        req.Name,
		Mobile:      req.Mobile,
		SubmittedAt: time.Now(),
	}

	if err := database.DB.Create(&suggestion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit suggestion. Please try again."})
	}

	websocket.Publish("suggestions", "created", suggestion.ID.String())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Thank you for your suggestion!",
		"severity": "success",
	})
}

// CreateStudentSuggestion is the logged-in variant, attributed to the
// student's phone-scoped session.
func CreateStudentSuggestion(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	phone := claims["user_id"].(string)

	var req StudentSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please provide a more detailed suggestion (at least 10 characters)."})
	}

	suggestion := models.Suggestion{
		ID:          uuid.New(),
		Text:        req.Text,
		UserID:      phone,
		UserPhone:   phone,
		SubmittedAt: time.Now(),
	}

	if err := database.DB.Create(&suggestion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit suggestion."})
	}

	websocket.Publish("suggestions", "created", suggestion.ID.String())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Thank you! Your suggestion has been submitted.",
		"severity": "success",
	})
}
