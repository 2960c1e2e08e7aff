package models

import (
	"strings"
	"time"
)

// AnimalStatus is the lifecycle state of an animal.
type AnimalStatus string

const (
	AnimalActive   AnimalStatus = "active"
	AnimalSold     AnimalStatus = "sold"
	AnimalDeceased AnimalStatus = "deceased"
)

// Gender of an animal.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Species identifiers used by the gestation table and the category classifier.
const (
	SpeciesCattle  = "cattle"
	SpeciesSheep   = "sheep"
	SpeciesGoat    = "goat"
	SpeciesBuffalo = "buffalo"
	SpeciesHorse   = "horse"
)

var speciesAliases = map[string]string{
	"cow":      SpeciesCattle,
	"cows":     SpeciesCattle,
	"ox":       SpeciesCattle,
	"bovine":   SpeciesCattle,
	"inek":     SpeciesCattle,
	"sığır":    SpeciesCattle,
	"sigir":    SpeciesCattle,
	"ewe":      SpeciesSheep,
	"ram":      SpeciesSheep,
	"koyun":    SpeciesSheep,
	"keçi":     SpeciesGoat,
	"keci":     SpeciesGoat,
	"manda":    SpeciesBuffalo,
	"mare":     SpeciesHorse,
	"stallion": SpeciesHorse,
	"at":       SpeciesHorse,
	"kısrak":   SpeciesHorse,
}

// NormalizeSpecies lowercases species and maps common names onto the
// canonical identifiers. Unknown species are returned lowercased.
func NormalizeSpecies(species string) string {
	s := strings.ToLower(strings.TrimSpace(species))
	if canonical, ok := speciesAliases[s]; ok {
		return canonical
	}
	return s
}

// Animal is a single head of livestock owned by one account.
type Animal struct {
	ID          string       `bson:"_id" json:"id"`
	UserID      string       `bson:"user_id" json:"user_id"`
	EarTag      string       `bson:"ear_tag" json:"ear_tag"`
	Name        string       `bson:"name,omitempty" json:"name,omitempty"`
	Species     string       `bson:"species" json:"species"`
	Breed       string       `bson:"breed,omitempty" json:"breed,omitempty"`
	Gender      Gender       `bson:"gender" json:"gender"`
	BirthDate   time.Time    `bson:"birth_date" json:"birth_date"`
	MotherTag   string       `bson:"mother_tag,omitempty" json:"mother_tag,omitempty"`
	Status      AnimalStatus `bson:"status" json:"status"`
	SoldTo      string       `bson:"sold_to,omitempty" json:"sold_to,omitempty"`
	SoldDate    *time.Time   `bson:"sold_date,omitempty" json:"sold_date,omitempty"`
	SoldPrice   *float64     `bson:"sold_price,omitempty" json:"sold_price,omitempty"`
	DeathDate   *time.Time   `bson:"death_date,omitempty" json:"death_date,omitempty"`
	DeathReason string       `bson:"death_reason,omitempty" json:"death_reason,omitempty"`
	ImageURL    string       `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Notes       string       `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
}

// AnimalFilter narrows animal listings. Empty fields match everything.
type AnimalFilter struct {
	Status  AnimalStatus
	Species string
}

// Category is the UI grouping derived from species, gender and age.
type Category struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}
