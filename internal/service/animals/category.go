package animals

import (
	"time"

	"github.com/mamadbah2/livestock/internal/domain/calendar"
	"github.com/mamadbah2/livestock/internal/domain/models"
)

const (
	calfUntilMonths  = 12
	youngUntilMonths = 18
)

// Category labels.
const (
	LabelCalf        = "calf"
	LabelYoungMale   = "young male"
	LabelYoungFemale = "young female"
	LabelBull        = "bull"
	LabelHeifer      = "heifer"
	LabelMale        = "male"
	LabelFemale      = "female"
)

var displayTags = map[string]string{
	LabelCalf:        "Buzağı",
	LabelYoungMale:   "Erkek Dana",
	LabelYoungFemale: "Dişi Dana",
	LabelBull:        "Boğa",
	LabelHeifer:      "Düve",
	LabelMale:        "Erkek",
	LabelFemale:      "Dişi",
}

// AgeInMonths returns the whole calendar months between birth and now, never negative.
func AgeInMonths(birth, now time.Time) int {
	months := calendar.MonthsBetween(birth, now)
	if months < 0 {
		return 0
	}
	return months
}

// Classify derives the UI category. Only cattle are split by age; every other
// species gets a gender-only label.
func Classify(species string, gender models.Gender, ageMonths int) models.Category {
	var label string

	if models.NormalizeSpecies(species) == models.SpeciesCattle {
		switch {
		case ageMonths < calfUntilMonths:
			label = LabelCalf
		case ageMonths < youngUntilMonths:
			label = byGender(gender, LabelYoungMale, LabelYoungFemale)
		default:
			label = byGender(gender, LabelBull, LabelHeifer)
		}
	} else {
		label = byGender(gender, LabelMale, LabelFemale)
	}

	return models.Category{Label: label, Tag: displayTags[label]}
}

func byGender(g models.Gender, male, female string) string {
	if g == models.GenderMale {
		return male
	}
	return female
}
