package analytics

import "github.com/AngelCh415/campaign-dash/internal/models"

const (
	mediumSpendFloor   = 5000.0
	mediumSpendCeiling = 20000.0
)

// ClassifySpendTier bands a spend amount. Both bounds belong to Medium.
// Negative spend is not special-cased and lands in Low.
func ClassifySpendTier(amountSpent float64) models.SpendTier {
	switch {
	case amountSpent < mediumSpendFloor:
		return models.TierLow
	case amountSpent <= mediumSpendCeiling:
		return models.TierMedium
	default:
		return models.TierHigh
	}
}

// TierZeroResults sets the spend tier of every zero-result campaign in place.
func TierZeroResults(zs []models.ZeroResultCampaign) []models.ZeroResultCampaign {
	for i := range zs {
		zs[i].Tier = ClassifySpendTier(zs[i].AmountSpent)
	}
	return zs
}
