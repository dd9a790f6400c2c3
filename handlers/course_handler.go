package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
	"github.com/pathanacademy/mining_academy/services"
	"github.com/pathanacademy/mining_academy/utils"
	"github.com/pathanacademy/mining_academy/websocket"
)

type CourseRequest struct {
	Name           string   `json:"name" validate:"required"`
	CourseCode     string   `json:"courseCode" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Instructor     string   `json:"instructor" validate:"required"`
	BasePrice      float64  `json:"basePrice" validate:"required,gt=0"`
	EarlyBirdPrice float64  `json:"earlyBirdPrice" validate:"gte=0"`
	EarlyBirdSlots int      `json:"earlyBirdSlots" validate:"gte=0"`
	TotalSlots     int      `json:"totalSlots" validate:"gte=0"`
	Thumbnail      string   `json:"thumbnail"`
	WhatsappLink   string   `json:"whatsappLink"`
	Highlights     []string `json:"highlights"`
	OfferText      string   `json:"offerText"`
}

// CourseUpdateRequest carries only the fields the admin touched. Absent
// fields stay at their stored values (merge, not replace).
type CourseUpdateRequest struct {
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Instructor     *string   `json:"instructor,omitempty"`
	BasePrice      *float64  `json:"basePrice,omitempty" validate:"omitempty,gt=0"`
	EarlyBirdPrice *float64  `json:"earlyBirdPrice,omitempty" validate:"omitempty,gte=0"`
	EarlyBirdSlots *int      `json:"earlyBirdSlots,omitempty" validate:"omitempty,gte=0"`
	TotalSlots     *int      `json:"totalSlots,omitempty" validate:"omitempty,gte=0"`
	Thumbnail      *string   `json:"thumbnail,omitempty"`
	WhatsappLink   *string   `json:"whatsappLink,omitempty"`
	Highlights     *[]string `json:"highlights,omitempty"`
	OfferText      *string   `json:"offerText,omitempty"`
}

func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load courses"})
	}
	return c.JSON(courses)
}

// GetCourse serves the per-course detail page. A missing course is a valid
// empty state for the client, not a server failure.
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	if cached, ok := services.CachedCourse(c.Context(), courseID); ok {
		return c.JSON(cached)
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load course details"})
	}

	services.CacheCourse(c.Context(), &course)
	return c.JSON(course)
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID := utils.Slugify(req.CourseCode)
	if !utils.ValidCourseID(courseID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": `Course Code cannot contain a forward slash ("/").`,
		})
	}

	course := models.Course{
		ID:             courseID,
		Name:           req.Name,
		CourseCode:     req.CourseCode,
		Description:    req.Description,
		Instructor:     req.Instructor,
		BasePrice:      req.BasePrice,
		EarlyBirdPrice: req.EarlyBirdPrice,
		EarlyBirdSlots: req.EarlyBirdSlots,
		TotalSlots:     req.TotalSlots,
		Thumbnail:      req.Thumbnail,
		WhatsappLink:   req.WhatsappLink,
		Highlights:     req.Highlights,
		OfferText:      req.OfferText,
	}

	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save course"})
	}

	services.InvalidateCourse(c.Context(), course.ID)
	websocket.Publish("courses", "created", course.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"course":   course,
		"message":  "Course added!",
		"severity": "success",
	})
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	if !utils.ValidCourseID(courseID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": `Course Code cannot contain a forward slash ("/").`,
		})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var req CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Instructor != nil {
		course.Instructor = *req.Instructor
	}
	if req.BasePrice != nil {
		course.BasePrice = *req.BasePrice
	}
	if req.EarlyBirdPrice != nil {
		course.EarlyBirdPrice = *req.EarlyBirdPrice
	}
	if req.EarlyBirdSlots != nil {
		course.EarlyBirdSlots = *req.EarlyBirdSlots
	}
	if req.TotalSlots != nil {
		course.TotalSlots = *req.TotalSlots
	}
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
	if req.WhatsappLink != nil {
		course.WhatsappLink = *req.WhatsappLink
	}
	if req.Highlights != nil {
		course.Highlights = *req.Highlights
	}
	if req.OfferText != nil {
		course.OfferText = *req.OfferText
	}

	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save course"})
	}

	services.InvalidateCourse(c.Context(), course.ID)
	websocket.Publish("courses", "updated", course.ID)
	return c.JSON(fiber.Map{
		"course":   course,
		"message":  "Course updated!",
		"severity": "success",
	})
}

// DeleteCourse is a hard delete. Registrations referencing the course keep
// their courseId; downstream lookups render not-found for it.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	result := database.DB.Delete(&models.Course{}, "id = ?", courseID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete course"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	services.InvalidateCourse(c.Context(), courseID)
	websocket.Publish("courses", "deleted", courseID)
	return c.JSON(fiber.Map{
		"message":  "Course deleted.",
		"severity": "success",
	})
}
