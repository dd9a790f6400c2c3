package services

import (
	"strconv"

	config "github.com/pathanacademy/mining_academy/configs"
	"github.com/pathanacademy/mining_academy/database"
	"github.com/pathanacademy/mining_academy/models"
)

// ResolveBundlePrice returns the early-bird tier while confirmed bundle
// registrations remain below the slot count, the base price after.
func ResolveBundlePrice(confirmedCount, earlyBirdSlots int, earlyBirdPrice, basePrice float64) float64 {
	if confirmedCount < earlyBirdSlots {
		return earlyBirdPrice
	}
	return basePrice
}

type BundlePricing struct {
	BasePrice      float64
	EarlyBirdPrice float64
	EarlyBirdSlots int
}

func LoadBundlePricing() BundlePricing {
	base, err := strconv.ParseFloat(config.ConfigOr("BUNDLE_BASE_PRICE", "3999"), 64)
	if err != nil {
		base = 3999
	}
	earlyBird, err := strconv.ParseFloat(config.ConfigOr("BUNDLE_EARLY_BIRD_PRICE", "2999"), 64)
	if err != nil {
		earlyBird = 2999
	}
	slots, err := strconv.Atoi(config.ConfigOr("BUNDLE_EARLY_BIRD_SLOTS", "10"))
	if err != nil {
		slots = 10
	}
	return BundlePricing{BasePrice: base, EarlyBirdPrice: earlyBird, EarlyBirdSlots: slots}
}

type BundleQuote struct {
	Price          float64 `json:"price"`
	ConfirmedCount int     `json:"confirmedCount"`
	EarlyBird      bool    `json:"earlyBird"`
}

// QuoteBundle counts confirmed bundle registrations at the moment of the
// call. The count is not a reservation: two students quoting concurrently
// near the slot boundary can both see the early-bird price. Accepted
// limitation, the seat is only consumed on admin confirmation.
func QuoteBundle() (BundleQuote, error) {
	var count int64
	err := database.DB.Model(&models.Registration{}).
		Where("course_id = ? AND confirmed = ?", "bundle", true).
		Count(&count).Error
	if err != nil {
		return BundleQuote{}, err
	}

	pricing := LoadBundlePricing()
	price := ResolveBundlePrice(int(count), pricing.EarlyBirdSlots, pricing.EarlyBirdPrice, pricing.BasePrice)
	return BundleQuote{
		Price:          price,
		ConfirmedCount: int(count),
		EarlyBird:      int(count) < pricing.EarlyBirdSlots,
	}, nil
}
