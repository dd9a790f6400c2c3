package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
	"github.com/pathanacademy/mining_academy/routes"
	"github.com/pathanacademy/mining_academy/storage"
)

const testSecret = "test-secret"

type fakeUploader struct {
	fail bool
	keys []string
}

func (f *fakeUploader) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.fail {
		return "", errors.New("upload failed")
	}
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

func setupTestApp(t *testing.T) (*fiber.App, *fakeUploader) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Course{}, &models.Registration{}, &models.Suggestion{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	uploads := &fakeUploader{}
	storage.Client = uploads
	t.Cleanup(func() { storage.Client = nil })

	app := fiber.New()
	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.RegistrationRoutes(app)
	routes.AdminRoutes(app)

	return app, uploads
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func studentToken(t *testing.T, phone string) string {
	return signToken(t, jwt.MapClaims{
		"user_id": phone,
		"name":    "Test Student",
		"role":    "student",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

func adminToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"user_id": "11111111-1111-1111-1111-111111111111",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

func jsonRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func multipartRequest(t *testing.T, target, token string, fields map[string]string, fileData []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}
	if fileData != nil {
		fw, err := w.CreateFormFile("screenshot", "payment.png")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(fileData); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, target, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func seedCourse(t *testing.T, course models.Course) models.Course {
	t.Helper()
	if err := database.DB.Create(&course).Error; err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}
	return course
}

func seedRegistration(t *testing.T, reg models.Registration) models.Registration {
	t.Helper()
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = time.Now()
	}
	if err := database.DB.Create(&reg).Error; err != nil {
		t.Fatalf("failed to seed registration: %v", err)
	}
	return reg
}
