package handlers_test

import (
	"net/http"
	"testing"

	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
)

func TestConfirmRegistrationOnceAndNoOpAfter(t *testing.T) {
	app, _ := setupTestApp(t)
	seedRegistration(t, models.Registration{
		ID: "r1", UserID: "9876543210", CourseID: "ucm", CourseName: "Underground Coal Mining",
		Name: "Asha Verma", Email: "asha@example.com", Phone: "9876543210", College: "IIT Dhanbad",
		ScreenshotURL: "https://cdn.test/x", PaymentStatus: "full_payment_received", Confirmed: false,
	})

	req := jsonRequest(t, http.MethodPost, "/api/v1/admin/registrations/r1/confirm", adminToken(t), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var first struct {
		Message  string `json:"message"`
		Severity string `json:"severity"`
	}
	decodeBody(t, resp, &first)
	if first.Severity != "success" {
		t.Errorf("first confirmation severity = %q, want success", first.Severity)
	}

	var reg models.Registration
	database.DB.First(&reg, "id = ?", "r1")
	if !reg.Confirmed {
		t.Fatal("registration not confirmed")
	}

	// Re-invoking is a no-op and must not announce success a second time.
	req = jsonRequest(t, http.MethodPost, "/api/v1/admin/registrations/r1/confirm", adminToken(t), nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on repeat, got %d", resp.StatusCode)
	}
	var second struct {
		Message  string `json:"message"`
		Severity string `json:"severity"`
	}
	decodeBody(t, resp, &second)
	if second.Severity == "success" {
		t.Error("repeat confirmation must not report success again")
	}

	database.DB.First(&reg, "id = ?", "r1")
	if !reg.Confirmed {
		t.Error("confirmed flag reverted after repeat confirmation")
	}
}

func TestConfirmBundleFansOutChildRegistrations(t *testing.T) {
	app, _ := setupTestApp(t)
	seedCourse(t, models.Course{ID: "ucm", Name: "Underground Coal Mining", CourseCode: "UCM", BasePrice: 1999})
	seedCourse(t, models.Course{ID: "mdo", Name: "Mine Development", CourseCode: "MDO", BasePrice: 1999})
	seedRegistration(t, models.Registration{
		ID: "9876543210_bundle", UserID: "9876543210", CourseID: "bundle", CourseName: "Combined Course Bundle",
		Name: "Asha Verma", Email: "asha@example.com", Phone: "9876543210", College: "IIT Dhanbad",
		ScreenshotURL: "https://cdn.test/x", PaymentStatus: "full_payment_pending", Confirmed: false,
	})

	req := jsonRequest(t, http.MethodPost, "/api/v1/admin/registrations/9876543210_bundle/confirm", adminToken(t), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var children []models.Registration
	database.DB.Where("user_id = ? AND is_from_bundle = ?", "9876543210", true).Find(&children)
	if len(children) != 2 {
		t.Fatalf("expected a child registration per course, got %d", len(children))
	}
	for _, child := range children {
		if !child.Confirmed {
			t.Errorf("child registration %s for %s not confirmed", child.ID, child.CourseID)
		}
	}
}

func TestAdminStats(t *testing.T) {
	app, _ := setupTestApp(t)
	seedCourse(t, models.Course{ID: "ucm", Name: "Underground Coal Mining", CourseCode: "UCM", BasePrice: 1999})
	seedRegistration(t, models.Registration{
		ID: "r1", UserID: "9876543210", CourseID: "ucm", Name: "A", Email: "a@example.com",
		Phone: "9876543210", College: "C", ScreenshotURL: "x", PaymentStatus: "full_payment_received",
		Confirmed: true, AmountPaid: 1499,
	})
	seedRegistration(t, models.Registration{
		ID: "r2", UserID: "9876543211", CourseID: "ucm", Name: "B", Email: "b@example.com",
		Phone: "9876543211", College: "C", ScreenshotURL: "x", PaymentStatus: "seat_lock_pending",
		Confirmed: false, AmountPaid: 99,
	})

	req := jsonRequest(t, http.MethodGet, "/api/v1/admin/stats", adminToken(t), nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats struct {
		TotalRegistrations int64   `json:"totalRegistrations"`
		Pending            int64   `json:"pending"`
		Confirmed          int64   `json:"confirmed"`
		Revenue            float64 `json:"revenue"`
	}
	decodeBody(t, resp, &stats)
	if stats.TotalRegistrations != 2 || stats.Pending != 1 || stats.Confirmed != 1 {
		t.Errorf("stats = %+v, want 2 total / 1 pending / 1 confirmed", stats)
	}
	if stats.Revenue != 1499 {
		t.Errorf("revenue = %v, want confirmed amounts only", stats.Revenue)
	}
}

func TestSuggestionFlow(t *testing.T) {
	app, _ := setupTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/v1/suggestions", "", map[string]interface{}{
		"name":       "Ravi",
		"mobile":     "9123456780",
		"suggestion": "Please add a rock mechanics course.",
	})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	req = jsonRequest(t, http.MethodPost, "/api/v1/suggestions/me", studentToken(t, "9876543210"), map[string]interface{}{
		"text": "A ventilation engineering deep dive would help.",
	})
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	req = jsonRequest(t, http.MethodGet, "/api/v1/admin/suggestions", adminToken(t), nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var suggestions []models.Suggestion
	decodeBody(t, resp, &suggestions)
	if len(suggestions) != 2 {
		t.Fatalf("expected both suggestions in the inbox, got %d", len(suggestions))
	}
}

func TestStudentLogin(t *testing.T) {
	app, _ := setupTestApp(t)
	seedRegistration(t, models.Registration{
		ID: "r1", UserID: "9876543210", CourseID: "ucm", Name: "Asha Verma", Email: "asha@example.com",
		Phone: "9876543210", College: "IIT Dhanbad", ScreenshotURL: "x", PaymentStatus: "full_payment_received",
	})

	req := jsonRequest(t, http.MethodPost, "/api/v1/auth/student-login", "", map[string]interface{}{"phone": "9876543210"})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var known struct {
		Token      string `json:"token"`
		Registered bool   `json:"registered"`
		Name       string `json:"name"`
	}
	decodeBody(t, resp, &known)
	if !known.Registered || known.Name != "Asha Verma" || known.Token == "" {
		t.Errorf("known phone login = %+v, want registered with name and token", known)
	}

	req = jsonRequest(t, http.MethodPost, "/api/v1/auth/student-login", "", map[string]interface{}{"phone": "9000000000"})
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var unknown struct {
		Token      string `json:"token"`
		Registered bool   `json:"registered"`
	}
	decodeBody(t, resp, &unknown)
	if unknown.Registered || unknown.Token == "" {
		t.Errorf("unknown phone login = %+v, want unregistered session with token", unknown)
	}

	req = jsonRequest(t, http.MethodPost, "/api/v1/auth/student-login", "", map[string]interface{}{"phone": "12ab"})
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed phone, got %d", resp.StatusCode)
	}
}
