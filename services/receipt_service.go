package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	config "github.com/pathanacademy/mining_academy/configs"
	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
	"github.com/pathanacademy/mining_academy/notifications"
	"github.com/pathanacademy/mining_academy/utils"
)

// GenerateConfirmationReceipt renders a payment receipt for a freshly
// confirmed registration, uploads the PDF and emails the student. Called as
// a goroutine after confirmation; failures are logged and never surfaced to
// the admin request.
func GenerateConfirmationReceipt(reg models.Registration) {
	if config.Config("CLOUDINARY_URL") == "" {
		log.Println("Cloudinary not configured, skipping receipt generation.")
		return
	}

	courseName := reg.CourseName
	if reg.CourseID == "bundle" {
		courseName = "Combined Course Bundle"
	}

	receiptNumber, err := utils.GenerateUniqueReceiptNumber(database.DB)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt number for %s: %v", reg.ID, err)
		return
	}

	htmlData, err := generateReceiptHTML(reg, courseName, receiptNumber)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt HTML for %s: %v", reg.ID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for %s: %v", reg.ID, err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, reg.ID)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for %s: %v", reg.ID, err)
		return
	}

	if err := database.DB.Model(&models.Registration{}).
		Where("id = ?", reg.ID).
		Updates(map[string]interface{}{
			"receipt_url":    uploadURL,
			"receipt_number": receiptNumber,
		}).Error; err != nil {
		log.Printf("🔥 Failed to store receipt URL for %s: %v", reg.ID, err)
		return
	}

	emailBody := fmt.Sprintf(
		"<h1>Registration Confirmed!</h1><p>Hi %s,</p><p>Your registration for <b>%s</b> has been verified and confirmed.</p><p><b>Receipt:</b> <a href='%s'>Download PDF</a></p><p>See you in class!</p>",
		reg.Name, courseName, uploadURL,
	)
	go notifications.SendEmail(reg.Name, reg.Email, "Your Registration is Confirmed!", emailBody)

	log.Printf("✅ Generated and uploaded receipt for registration %s.", reg.ID)
}

func generateReceiptHTML(reg models.Registration, courseName, receiptNumber string) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName   string
		CourseName    string
		ReceiptNumber string
		AmountPaid    float64
		PaymentStatus string
		ConfirmedDate string
	}{
		StudentName:   reg.Name,
		CourseName:    courseName,
		ReceiptNumber: receiptNumber,
		AmountPaid:    reg.AmountPaid,
		PaymentStatus: reg.PaymentStatus,
		ConfirmedDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, registrationID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", registrationID, uuid.New().String()),
		Folder:       "mining_academy_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
