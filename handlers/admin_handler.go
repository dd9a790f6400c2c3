package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
	"github.com/pathanacademy/mining_academy/services"
	"github.com/pathanacademy/mining_academy/websocket"
)

func AdminListRegistrations(c *fiber.Ctx) error {
	var registrations []models.Registration
	if err := database.DB.Find(&registrations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(registrations)
}

// ConfirmRegistration flips confirmed to true, exactly once. Re-invoking on
// an already confirmed record is answered without a second success message.
// Confirming a bundle fans out one confirmed child registration per catalog
// course so the student's dashboard shows every included course.
func ConfirmRegistration(c *fiber.Ctx) error {
	registrationID := c.Params("registrationId")

	var registration models.Registration
	if err := database.DB.First(&registration, "id = ?", registrationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Registration not found"})
	}

	if registration.Confirmed {
		return c.JSON(fiber.Map{
			"message":  "Registration already confirmed.",
			"severity": "info",
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Registration{}).
			Where("id = ?", registration.ID).
			Update("confirmed", true).Error; err != nil {
			return err
		}

		if registration.CourseID != "bundle" {
			return nil
		}

		var courses []models.Course
		if err := tx.Find(&courses).Error; err != nil {
			return err
		}
		for _, course := range courses {
			child := models.Registration{
				ID:            uuid.New().String(),
				UserID:        registration.UserID,
				CourseID:      course.ID,
				CourseName:    course.Name,
				Name:          registration.Name,
				Email:         registration.Email,
				Phone:         registration.Phone,
				College:       registration.College,
				ScreenshotURL: registration.ScreenshotURL,
				PaymentStatus: registration.PaymentStatus,
				Confirmed:     true,
				IsFromBundle:  true,
				RegisteredAt:  time.Now(),
			}
			if err := tx.Create(&child).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to confirm registration."})
	}

	registration.Confirmed = true
	go services.GenerateConfirmationReceipt(registration)

	websocket.Publish("registrations", "updated", registration.ID)
	return c.JSON(fiber.Map{
		"message":  "Registration confirmed!",
		"severity": "success",
	})
}

func AdminListSuggestions(c *fiber.Ctx) error {
	var suggestions []models.Suggestion
	if err := database.DB.Find(&suggestions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(suggestions)
}

func GetAdminStats(c *fiber.Ctx) error {
	var totalRegistrations, pending, confirmed, courses, suggestions int64
	database.DB.Model(&models.Registration{}).Count(&totalRegistrations)
	database.DB.Model(&models.Registration{}).Where("confirmed = ?", false).Count(&pending)
	database.DB.Model(&models.Registration{}).Where("confirmed = ?", true).Count(&confirmed)
	database.DB.Model(&models.Course{}).Count(&courses)
	database.DB.Model(&models.Suggestion{}).Count(&suggestions)

	var revenue float64
	database.DB.Model(&models.Registration{}).
		Where("confirmed = ? AND is_from_bundle = ?", true, false).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&revenue)

	return c.JSON(fiber.Map{
		"totalRegistrations": totalRegistrations,
		"pending":            pending,
		"confirmed":          confirmed,
		"courses":            courses,
		"suggestions":        suggestions,
		"revenue":            revenue,
	})
}
