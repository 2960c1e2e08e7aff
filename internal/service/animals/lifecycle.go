package animals

import (
	"fmt"
	"time"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

// Sell moves an active animal to sold and fills the sale fields.
func Sell(a *models.Animal, soldTo string, date time.Time, price float64) error {
	if a.Status != models.AnimalActive {
		return fmt.Errorf("%w: %s animal cannot be sold", models.ErrInvalidTransition, a.Status)
	}
	day := calendar.Day(date)
	a.Status = models.AnimalSold
	a.SoldTo = soldTo
	a.SoldDate = &day
	a.SoldPrice = &price
	return nil
}

// Decease moves an active animal to deceased and fills the death fields.
func Decease(a *models.Animal, date time.Time, reason string) error {
	if a.Status != models.AnimalActive {
		return fmt.Errorf("%w: %s animal cannot be marked deceased", models.ErrInvalidTransition, a.Status)
	}
	day := calendar.Day(date)
	a.Status = models.AnimalDeceased
	a.DeathDate = &day
	a.DeathReason = reason
	return nil
}

// ActiveIDs returns the ids of the animals still on the farm.
func ActiveIDs(herd []models.Animal) map[string]bool {
	ids := make(map[string]bool, len(herd))
	for _, a := range herd {
		if a.Status == models.AnimalActive {
			ids[a.ID] = true
		}
	}
	return ids
}
