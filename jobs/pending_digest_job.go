package jobs

import (
	"fmt"
	"log"

	config "github.com/pathanacademy/mining_academy/configs"
	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
	"github.com/pathanacademy/mining_academy/notifications"
)

// SendPendingRegistrationDigest mails the admin when registrations are
// waiting on payment verification. Runs daily from the cron scheduler.
func SendPendingRegistrationDigest() {
	log.Println("Running job: SendPendingRegistrationDigest...")

	var pending []models.Registration
	err := database.DB.
		Where("confirmed = ?", false).
		Find(&pending).Error
	if err != nil {
		log.Printf("Error checking for pending registrations: %v", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	adminEmail := config.Config("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("ADMIN_EMAIL not set, skipping pending registration digest.")
		return
	}

	rows := ""
	for _, reg := range pending {
		rows += fmt.Sprintf("<li>%s (%s), %s, paid ₹%.0f</li>", reg.Name, reg.Phone, reg.CourseID, reg.AmountPaid)
	}

	emailSubject := fmt.Sprintf("%d registrations awaiting confirmation", len(pending))
	emailBody := fmt.Sprintf(
		"<h1>Pending Registrations</h1><p>The following registrations are waiting for payment verification:</p><ul>%s</ul>",
		rows,
	)

	go notifications.SendEmail(config.Config("ADMIN_FULL_NAME"), adminEmail, emailSubject, emailBody)
}
