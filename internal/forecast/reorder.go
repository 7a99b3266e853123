package forecast

import "fmt"

const (
	// maxStockoutHorizonDays caps the reported runway: beyond a year the
	// number carries no planning value.
	maxStockoutHorizonDays = 365
	// reorderThresholdDays: reorder when the projected runway drops below
	// one month.
	reorderThresholdDays = 30
)

// ReorderAdvice combines current stock with forecasted usage into a
// reorder-timing recommendation.
type ReorderAdvice struct {
	DaysUntilStockout float64
	ShouldReorder     bool
	Recommendation    string
}

// Advise computes the stockout runway. A predicted usage of zero (or less)
// means consumption is flat; the runway is treated as infinite and reported
// as the cap — never a division by zero.
func Advise(currentStock int, predictedUsage float64, daysAhead int) ReorderAdvice {
	if daysAhead <= 0 {
		daysAhead = BaseHorizonDays
	}

	days := float64(maxStockoutHorizonDays)
	if predictedUsage > 0 {
		dailyUsage := predictedUsage / float64(daysAhead)
		days = float64(currentStock) / dailyUsage
		if days > maxStockoutHorizonDays {
			days = maxStockoutHorizonDays
		}
		if days < 0 {
			days = 0
		}
	}

	advice := ReorderAdvice{DaysUntilStockout: days}
	advice.ShouldReorder = days < reorderThresholdDays
	if advice.ShouldReorder {
		advice.Recommendation = fmt.Sprintf("Réapprovisionnement recommandé: rupture de stock estimée dans %.0f jours", days)
	} else {
		advice.Recommendation = "Stock suffisant pour la période à venir"
	}
	return advice
}
