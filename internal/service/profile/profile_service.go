// Package profile builds the cow cards and profile popups of the landing view.
package profile

import (
	"errors"
	"math"
	"time"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/fields"
)

// ErrCowNotFound indicates no profile matches the requested ID or name.
var ErrCowNotFound = errors.New("cow not found")

const (
	heatCycleDays = 21
	gestationDays = 280
)

// Card is the summary shown for each cow on the landing view.
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Status string `json:"status"`
}

// CowProfile is the full profile of one cow.
type CowProfile struct {
	Name         string       `json:"name"`
	ID           string       `json:"id"`
	Breed        string       `json:"breed"`
	Age          string       `json:"age"`
	Status       string       `json:"status"`
	DOB          string       `json:"dob"`
	Health       Health       `json:"health"`
	Reproduction Reproduction `json:"reproduction"`
	Lactation    Lactation    `json:"lactation"`
}

// Health groups the disease tracking fields.
type Health struct {
	Disease string `json:"disease"`
	Rate    string `json:"rate"`
}

// Reproduction carries heat and pregnancy tracking. Dates are YYYY-MM-DD, empty when unknown.
type Reproduction struct {
	LastHeat         string `json:"last_heat,omitempty"`
	NextHeat         string `json:"next_heat,omitempty"`
	Pregnant         bool   `json:"pregnant"`
	AIDate           string `json:"ai_date,omitempty"`
	PregnancyDays    int    `json:"pregnancy_days,omitempty"`
	ExpectedDelivery string `json:"expected_delivery,omitempty"`
}

// Lactation groups the milk yield fields as recorded in the sheet.
type Lactation struct {
	Count     string `json:"count"`
	TotalMilk string `json:"total_milk"`
	Max       string `json:"max"`
	Min       string `json:"min"`
}

// Service renders cow profiles relative to the current day.
type Service struct {
	now func() time.Time
}

// NewService constructs a profile service.
func NewService() *Service {
	return &Service{now: time.Now}
}

// Cards lists one card per profile, in sheet order.
func (s *Service) Cards(profiles []models.Profile) []Card {
	cards := make([]Card, len(profiles))
	for i, p := range profiles {
		cards[i] = Card{ID: p.ID, Name: p.Name, Breed: p.Breed, Status: p.Status}
	}
	return cards
}

// Lookup finds a profile by ID, then by name, and renders it.
func (s *Service) Lookup(profiles []models.Profile, key string) (CowProfile, error) {
	for _, p := range profiles {
		if p.ID != "" && p.ID == key {
			return s.Build(p), nil
		}
	}
	for _, p := range profiles {
		if p.Name == key {
			return s.Build(p), nil
		}
	}
	return CowProfile{}, ErrCowNotFound
}

// Build renders one profile.
func (s *Service) Build(p models.Profile) CowProfile {
	return CowProfile{
		Name:         p.Name,
		ID:           p.ID,
		Breed:        p.Breed,
		Age:          p.Age,
		Status:       p.Status,
		DOB:          p.DOB,
		Health:       Health{Disease: p.Disease, Rate: p.Rate},
		Reproduction: reproduction(p, s.now()),
		Lactation: Lactation{
			Count:     p.Lactation,
			TotalMilk: p.TotalMilk,
			Max:       p.MaxMilk,
			Min:       p.MinMilk,
		},
	}
}

func reproduction(p models.Profile, now time.Time) Reproduction {
	var r Reproduction

	if !p.LastHeat.IsZero() {
		r.LastHeat = fields.FormatDate(p.LastHeat)
		r.NextHeat = fields.FormatDate(fields.AddDays(p.LastHeat, heatCycleDays))
	}

	if !p.AIDate.IsZero() {
		r.Pregnant = true
		r.AIDate = fields.FormatDate(p.AIDate)
		r.PregnancyDays = int(math.Floor(now.Sub(p.AIDate).Hours() / 24))
		r.ExpectedDelivery = fields.FormatDate(fields.AddDays(p.AIDate, gestationDays))
	}

	return r
}
