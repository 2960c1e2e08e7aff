package reporting

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
	"github.com/mamadbah2/livestock/internal/service/animals"
	"github.com/mamadbah2/livestock/internal/service/breeding"
	"github.com/mamadbah2/livestock/internal/service/finance"
	"github.com/mamadbah2/livestock/internal/service/milk"
	"github.com/mamadbah2/livestock/internal/service/vaccination"
)

// AnimalCounts breaks the herd down by status, species and category.
type AnimalCounts struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Sold       int            `json:"sold"`
	Deceased   int            `json:"deceased"`
	BySpecies  map[string]int `json:"by_species"`
	ByCategory map[string]int `json:"by_category"`
}

// Dashboard is the landing view of an account.
type Dashboard struct {
	Date           time.Time                        `json:"date"`
	Animals        AnimalCounts                     `json:"animals"`
	Pregnant       int                              `json:"pregnant"`
	ImminentBirths int                              `json:"imminent_births"`
	Vaccinations   map[models.VaccinationStatus]int `json:"vaccinations"`
	Finance        models.FinanceTotals             `json:"finance"`
	Milk           models.MilkSummary               `json:"milk"`
	Highlights     []string                         `json:"highlights"`
}

type snapshot struct {
	animals      []models.Animal
	pregnancies  []models.Insemination
	vaccinations []models.Vaccination
	transactions []models.Transaction
	milk         []models.MilkProduction
	price        float64
}

// Dashboard loads the account's records concurrently and reduces them as of now.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	now := s.now()
	month := calendar.Month(now)

	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.animals, err = s.store.ListAnimals(gctx, userID, models.AnimalFilter{})
		if err != nil {
			return fmt.Errorf("list animals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.pregnancies, err = s.store.ListInseminations(gctx, userID, models.InseminationFilter{PregnantOnly: true})
		if err != nil {
			return fmt.Errorf("list pregnancies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.vaccinations, err = s.store.ListVaccinations(gctx, userID, "")
		if err != nil {
			return fmt.Errorf("list vaccinations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.transactions, err = s.store.ListTransactions(gctx, userID, month)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.milk, err = s.store.ListMilkRecords(gctx, userID, month)
		if err != nil {
			return fmt.Errorf("list milk records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.price, err = s.prices.PricePerLiter(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}

	return BuildDashboard(snap.animals, snap.pregnancies, snap.vaccinations, snap.transactions, snap.milk, snap.price, now), nil
}

// BuildDashboard reduces already loaded records into a Dashboard. Pregnancies
// and vaccinations of animals no longer on the farm are not counted.
func BuildDashboard(
	herd []models.Animal,
	pregnancies []models.Insemination,
	vaccinations []models.Vaccination,
	transactions []models.Transaction,
	records []models.MilkProduction,
	price float64,
	now time.Time,
) Dashboard {
	today := calendar.Day(now)
	d := Dashboard{
		Date: today,
		Animals: AnimalCounts{
			BySpecies:  make(map[string]int),
			ByCategory: make(map[string]int),
		},
		Vaccinations: map[models.VaccinationStatus]int{
			models.VaccinationOverdue:   0,
			models.VaccinationUpcoming:  0,
			models.VaccinationScheduled: 0,
			models.VaccinationCompleted: 0,
		},
	}

	for _, a := range herd {
		d.Animals.Total++
		switch a.Status {
		case models.AnimalSold:
			d.Animals.Sold++
			continue
		case models.AnimalDeceased:
			d.Animals.Deceased++
			continue
		}
		d.Animals.Active++
		d.Animals.BySpecies[a.Species]++
		category := animals.Classify(a.Species, a.Gender, animals.AgeInMonths(a.BirthDate, now))
		d.Animals.ByCategory[category.Tag]++
	}

	active := animals.ActiveIDs(herd)
	for _, in := range pregnancies {
		if !in.IsPregnant || !active[in.AnimalID] {
			continue
		}
		d.Pregnant++
		if breeding.BirthImminent(in, today) {
			d.ImminentBirths++
		}
	}

	for _, v := range vaccinations {
		if !active[v.AnimalID] {
			continue
		}
		d.Vaccinations[vaccination.StatusOf(v, today)]++
	}

	d.Finance = finance.Totals(transactions, finance.InRange(calendar.Month(now)))
	d.Milk = milk.Summarize(records, now, price)
	d.Highlights = highlights(d)
	return d
}

func highlights(d Dashboard) []string {
	out := []string{
		fmt.Sprintf("Bu ay gelir %s, gider %s, bakiye %s.",
			FormatAmount(d.Finance.TotalIncome), FormatAmount(d.Finance.TotalExpense), FormatAmount(d.Finance.Balance)),
		fmt.Sprintf("Bu ay süt üretimi %s, potansiyel gelir %s.",
			FormatLiters(d.Milk.MonthlyTotal), FormatAmount(d.Milk.PotentialIncome)),
	}
	if n := d.Vaccinations[models.VaccinationOverdue]; n > 0 {
		out = append(out, fmt.Sprintf("%d aşının tarihi geçti.", n))
	}
	if d.ImminentBirths > 0 {
		out = append(out, fmt.Sprintf("Önümüzdeki %d gün içinde %d doğum bekleniyor.", breeding.ImminentBirthDays, d.ImminentBirths))
	}
	return out
}
