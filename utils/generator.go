package utils

import (
	"math/rand"
	"time"

	"github.com/pathanacademy/mining_academy/models"
	"gorm.io/gorm"
)

const receiptNumberLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueReceiptNumber returns a short code like PMA-7KQ2M9XB that no
// existing registration already carries.
func GenerateUniqueReceiptNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, receiptNumberLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := "PMA-" + string(b)

		var reg models.Registration
		err := tx.Where("receipt_number = ?", code).First(&reg).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
