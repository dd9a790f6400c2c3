package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	config "github.com/pathanacademy/mining_academy/configs"
	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
	"github.com/pathanacademy/mining_academy/services"
	"github.com/pathanacademy/mining_academy/storage"
	"github.com/pathanacademy/mining_academy/websocket"
)

type RegistrationRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,len=10,numeric"`
	College       string `json:"college" validate:"required"`
	PaymentOption string `json:"paymentOption" validate:"required,oneof=full seat_lock"`
}

type BundleRegistrationRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	College     string `json:"college" validate:"required"`
	File        string `json:"file" validate:"required"`
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

func seatLockFee() float64 {
	fee, err := strconv.ParseFloat(config.ConfigOr("SEAT_LOCK_FEE", "99"), 64)
	if err != nil {
		return 99
	}
	return fee
}

// CreateRegistration takes the per-course registration form: student details,
// payment option and the payment screenshot as a multipart file. The upload
// happens first; if it fails nothing is written. A write failure after a
// successful upload orphans the file, which is accepted.
func CreateRegistration(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load course details"})
	}

	req := RegistrationRequest{
		Name:          c.FormValue("name"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		College:       c.FormValue("college"),
		PaymentOption: c.FormValue("paymentOption", "full"),
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please upload a payment screenshot."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read the uploaded screenshot."})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read the uploaded screenshot."})
	}

	if storage.Client == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload service unavailable. Please try again later."})
	}

	key := fmt.Sprintf("screenshots/%s/%d_%s", courseID, time.Now().UnixMilli(), fileHeader.Filename)
	screenshotURL, err := storage.Client.UploadBytes(c.Context(), key, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("🔥 Screenshot upload failed for course %s: %v", courseID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Submission failed. Please try again."})
	}

	amountPaid := course.EarlyBirdPrice
	paymentStatus := "full_payment_received"
	if req.PaymentOption == "seat_lock" {
		amountPaid = seatLockFee()
		paymentStatus = "seat_lock_pending"
	}

	registration := models.Registration{
		ID:            uuid.New().String(),
		UserID:        userID,
		CourseID:      courseID,
		CourseName:    course.Name,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		College:       req.College,
		ScreenshotURL: screenshotURL,
		PriceOffered:  course.EarlyBirdPrice,
		AmountPaid:    amountPaid,
		PaymentStatus: paymentStatus,
		Confirmed:     false,
		RegisteredAt:  time.Now(),
	}

	if err := database.DB.Create(&registration).Error; err != nil {
		// The uploaded screenshot is now an orphan. Accepted.
		log.Printf("🔥 Registration write failed after upload %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Submission failed. Please try again."})
	}

	websocket.Publish("registrations", "created", registration.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"registration": registration,
		"message":      "Registration submitted! We will confirm it after verifying your payment.",
		"severity":     "success",
	})
}

// GetBundleQuote resolves the bundle price the student will be asked to pay.
// Read at view time, not reserved.
func GetBundleQuote(c *fiber.Ctx) error {
	quote, err := services.QuoteBundle()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load registration details. Please try again."})
	}
	return c.JSON(quote)
}

// RegisterBundle handles the combined-bundle purchase. The screenshot
// arrives base64-encoded in the JSON body (the upload-function indirection)
// and the registration is keyed "{phone}_bundle" so resubmitting overwrites
// rather than duplicates. A confirmed bundle can no longer be overwritten.
func RegisterBundle(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	phone := claims["user_id"].(string)

	var req BundleRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	docID := fmt.Sprintf("%s_bundle", phone)

	var existing models.Registration
	err := database.DB.First(&existing, "id = ?", docID).Error
	if err == nil && existing.Confirmed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Your bundle registration is already confirmed."})
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "There was an error submitting your registration."})
	}

	quote, err := services.QuoteBundle()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load registration details. Please try again."})
	}

	data, err := base64.StdEncoding.DecodeString(req.File)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid screenshot payload."})
	}

	if storage.Client == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload service unavailable. Please try again later."})
	}

	key := fmt.Sprintf("screenshots/bundle/%d_%s", time.Now().UnixMilli(), req.FileName)
	screenshotURL, err := storage.Client.UploadBytes(c.Context(), key, data, req.ContentType)
	if err != nil {
		log.Printf("🔥 Bundle screenshot upload failed for %s: %v", phone, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "There was an error submitting your registration."})
	}

	registration := models.Registration{
		ID:            docID,
		UserID:        phone,
		CourseID:      "bundle",
		CourseName:    "Combined Course Bundle",
		Name:          req.Name,
		Email:         req.Email,
		Phone:         phone,
		College:       req.College,
		ScreenshotURL: screenshotURL,
		PriceOffered:  quote.Price,
		AmountPaid:    quote.Price,
		PaymentStatus: "full_payment_pending",
		Confirmed:     false,
		RegisteredAt:  time.Now(),
	}

	if err := database.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&registration).Error; err != nil {
		log.Printf("🔥 Bundle registration write failed after upload %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "There was an error submitting your registration."})
	}

	websocket.Publish("registrations", "created", registration.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"registration": registration,
		"message":      "Bundle registration submitted! We will confirm it after verifying your payment.",
		"severity":     "success",
	})
}

type StudentRegistrationResponse struct {
	ID            string  `json:"id"`
	CourseID      string  `json:"courseId"`
	CourseName    string  `json:"courseName"`
	IsFromBundle  bool    `json:"isFromBundle"`
	AmountPaid    float64 `json:"amountPaid"`
	PaymentStatus string  `json:"paymentStatus"`
	Confirmed     bool    `json:"confirmed"`
	WhatsappLink  string  `json:"whatsappLink,omitempty"`
	ReceiptURL    string  `json:"receiptUrl,omitempty"`
}

// GetMyRegistrations backs the student dashboard. The WhatsApp group link is
// only exposed once the registration is confirmed.
func GetMyRegistrations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var registrations []models.Registration
	if err := database.DB.Where("user_id = ?", userID).Find(&registrations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch your registrations."})
	}

	response := make([]StudentRegistrationResponse, 0, len(registrations))
	for _, reg := range registrations {
		item := StudentRegistrationResponse{
			ID:            reg.ID,
			CourseID:      reg.CourseID,
			CourseName:    reg.CourseName,
			IsFromBundle:  reg.IsFromBundle,
			AmountPaid:    reg.AmountPaid,
			PaymentStatus: reg.PaymentStatus,
			Confirmed:     reg.Confirmed,
		}
		if reg.ReceiptURL != nil {
			item.ReceiptURL = *reg.ReceiptURL
		}

		if reg.CourseID == "bundle" {
			item.CourseName = "Combined Course Bundle"
		} else {
			var course models.Course
			if err := database.DB.First(&course, "id = ?", reg.CourseID).Error; err == nil {
				item.CourseName = course.Name
				if reg.Confirmed {
					item.WhatsappLink = course.WhatsappLink
				}
			}
			// A deleted course leaves the registration dangling; the stored
			// course name still renders.
		}

		response = append(response, item)
	}

	return c.JSON(response)
}

// GetPaymentInfo exposes the UPI details the payment step displays.
func GetPaymentInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"upiId":   config.ConfigOr("UPI_ID", "pathanminingacademy.62732523@hdfcbank"),
		"upiName": config.ConfigOr("UPI_NAME", "Pathan Mining Academy"),
	})
}
