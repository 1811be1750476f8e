// services/division.go - Division matching
package services

import (
	"sort"
	"time"

	"apexfit/models"

	"gorm.io/gorm"
)

// AgeYears returns whole-years age at the given instant, subtracting one year
// when the current month/day precedes the birth month/day.
func AgeYears(birthDate, at time.Time) int {
	years := at.Year() - birthDate.Year()
	if at.Month() < birthDate.Month() ||
		(at.Month() == birthDate.Month() && at.Day() < birthDate.Day()) {
		years--
	}
	return years
}

// MatchDivision resolves the athlete's competitive division. Rules are
// evaluated in ascending sort order and the first match wins, so overlapping
// rules resolve deterministically. Returns nil when nothing matches; callers
// fall back to global data rather than treating this as an error.
func MatchDivision(gender *models.Gender, birthDate time.Time, at time.Time, divisions []models.Division) *models.Division {
	sorted := make([]models.Division, len(divisions))
	copy(sorted, divisions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	age := AgeYears(birthDate, at)

	for i := range sorted {
		d := &sorted[i]
		if d.Gender != nil && (gender == nil || *d.Gender != *gender) {
			continue
		}
		if d.AgeMin != nil && age < *d.AgeMin {
			continue
		}
		if d.AgeMax != nil && age > *d.AgeMax {
			continue
		}
		return d
	}
	return nil
}

// DivisionService loads division rules and resolves athletes against them.
type DivisionService struct {
	db *gorm.DB
}

func NewDivisionService(db *gorm.DB) *DivisionService {
	return &DivisionService{db: db}
}

// ActiveDivisions returns all active division rules ordered by sort priority.
func (s *DivisionService) ActiveDivisions() ([]models.Division, error) {
	var divisions []models.Division
	err := s.db.Where("is_active = ?", true).Order("sort_order ASC").Find(&divisions).Error
	return divisions, err
}

// MatchAthlete resolves an athlete's division, or nil when the athlete has no
// birth date on file or no rule matches.
func (s *DivisionService) MatchAthlete(athlete *models.Athlete) (*models.Division, error) {
	if athlete.BirthDate == nil {
		return nil, nil
	}
	divisions, err := s.ActiveDivisions()
	if err != nil {
		return nil, err
	}
	return MatchDivision(athlete.Gender, *athlete.BirthDate, time.Now().UTC(), divisions), nil
}
