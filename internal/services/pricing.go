package services

import (
	"github.com/example/whiteglove/internal/models"
)

// Price strategy engine. All amounts are integer cents; strategies never
// error for a recognized payment type, and an unrecognized type reports
// not-ok so callers treat it as a calculation failure.

// SumAccessorials totals the provider's base cost and every accessorial
// fee of a rate result.
func SumAccessorials(rate models.RateResult) int64 {
	sum := rate.Cost
	for _, fee := range rate.AccessorialFees {
		sum += fee.Cost
	}
	return sum
}

// ApplyStrategy converts the raw rate into the customer-facing portion
// under the retailer's payment settings.
func ApplyStrategy(price int64, settings models.PaymentSettings) (int64, bool) {
	switch settings.Type {
	case models.PaymentPaidByCustomer:
		return price, true
	case models.PaymentPaidByShipper:
		return 0, true
	case models.PaymentSplit:
		// SplitRatio is the merchant's share; the customer pays the rest.
		return price * (100 - settings.SplitRatio) / 100, true
	case models.PaymentFixed:
		// FixedAmount is in dollars. The result may go negative when the
		// merchant subsidizes more than the rate.
		return price - settings.FixedAmount*100, true
	case models.PaymentRoundNearest:
		return roundUpToNearest(price, settings.RoundNearest), true
	default:
		return 0, false
	}
}

// roundUpToNearest picks the smallest configured value strictly greater
// than price. With no such value the price passes through unchanged; this
// strategy never rounds down.
func roundUpToNearest(price int64, values []int64) int64 {
	var best int64
	found := false
	for _, v := range values {
		if v <= price {
			continue
		}
		if !found || v < best {
			best = v
			found = true
		}
	}
	if !found {
		return price
	}
	return best
}

// FormatPrice clamps to the retailer's active price ceiling and applies the
// final scaling. The ×100 on an already-cents value matches what the live
// checkout consumers receive today and is kept for parity.
func FormatPrice(price int64, settings models.PaymentSettings) int64 {
	if settings.CeilingActive && settings.CeilingAmount > 0 && price > settings.CeilingAmount {
		price = settings.CeilingAmount
	}
	return price * 100
}

// ComputePrice runs the full chain: accessorial sum, payment strategy,
// ceiling and scaling. Not-ok means the payment type was unrecognized.
func ComputePrice(rate models.RateResult, settings models.PaymentSettings) (int64, bool) {
	portion, ok := ApplyStrategy(SumAccessorials(rate), settings)
	if !ok {
		return 0, false
	}
	return FormatPrice(portion, settings), true
}
