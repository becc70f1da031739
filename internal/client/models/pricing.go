package models

import "math"

// ServiceTier is the pricing/turnaround plan for a submission.
type ServiceTier string

const (
	TierSpeedDemon ServiceTier = "SPEED_DEMON"
	TierStandard   ServiceTier = "THE_STANDARD"
	TierBigMoney   ServiceTier = "BIG_MONEY"
)

// tierPrices is the fallback table used when the server has not supplied
// pricing tiers; amounts are dollars per card.
var tierPrices = map[ServiceTier]float64{
	TierSpeedDemon: 289,
	TierStandard:   49,
	TierBigMoney:   69,
}

// PricingQuote is the per-card price breakdown for a tier.
type PricingQuote struct {
	BasePrice     float64 `json:"basePrice"`
	ProcessingFee float64 `json:"processingFee"`
	Total         float64 `json:"total"`
}

// Quote computes the price breakdown for a tier: base price plus a 5%
// processing fee, both rounded to cents. Unknown tiers quote zero.
func Quote(tier ServiceTier) PricingQuote {
	base := tierPrices[tier]
	fee := roundCents(base * 0.05)
	return PricingQuote{
		BasePrice:     base,
		ProcessingFee: fee,
		Total:         roundCents(base + fee),
	}
}

// TierPrice returns the per-card base price for a tier (0 for unknown tiers).
func TierPrice(tier ServiceTier) float64 {
	return tierPrices[tier]
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
