// services/catalog_store.go - GORM-backed catalog partitions
package services

import (
	"apexfit/models"

	"gorm.io/gorm"
)

// CatalogQuery is the read-path query surface for the challenge listing.
type CatalogQuery struct {
	AthleteID uint
	// Disciplines to match the "for you" partition against; when empty that
	// partition is empty and everything eligible lands in "others".
	DisciplineIDs []uint
	// Matched division of the athlete, nil when none matched. With no
	// division only unrestricted challenges are visible.
	DivisionID *uint
	// Optional gym context for the listing.
	GymFilterID *uint
	// When set (and a gym context is given), challenges requiring equipment
	// the gym does not stock are excluded.
	EquipmentFilter bool
	SearchText      string
}

// CatalogStore builds the three catalog partitions out of the relational
// store. Each partition query embeds the eligibility predicates so the full
// corpus is never materialized.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Partitions returns the priority-ordered partitions: for-you, others,
// completed.
func (s *CatalogStore) Partitions(q CatalogQuery) []Partition {
	return []Partition{
		&gormPartition{build: func() *gorm.DB { return s.forYou(q) }},
		&gormPartition{build: func() *gorm.DB { return s.others(q) }},
		&gormPartition{build: func() *gorm.DB { return s.completed(q) }},
	}
}

const (
	approvedExistsSQL = "EXISTS (SELECT 1 FROM submissions s WHERE s.athlete_id = ? AND s.challenge_id = challenges.id AND s.status = ?)"
	domainMatchSQL    = "EXISTS (SELECT 1 FROM challenge_domains cdm WHERE cdm.challenge_id = challenges.id AND cdm.domain_id IN ?)"
)

// eligible applies the predicates every partition shares: active challenge,
// gym membership, division restriction, gym/equipment context and search.
func (s *CatalogStore) eligible(q CatalogQuery) *gorm.DB {
	db := s.db.Model(&models.Challenge{}).
		Where("challenges.is_active = ?", true).
		Where("(challenges.gym_id IS NULL OR challenges.gym_id IN (SELECT gm.gym_id FROM gym_members gm WHERE gm.athlete_id = ? AND gm.is_active = ?))",
			q.AthleteID, true)

	if q.DivisionID != nil {
		db = db.Where("(NOT EXISTS (SELECT 1 FROM challenge_divisions cd WHERE cd.challenge_id = challenges.id) OR EXISTS (SELECT 1 FROM challenge_divisions cd WHERE cd.challenge_id = challenges.id AND cd.division_id = ?))",
			*q.DivisionID)
	} else {
		// No matched division: only unrestricted challenges are visible.
		db = db.Where("NOT EXISTS (SELECT 1 FROM challenge_divisions cd WHERE cd.challenge_id = challenges.id)")
	}

	if q.GymFilterID != nil {
		db = db.Where("(challenges.gym_id IS NULL OR challenges.gym_id = ?)", *q.GymFilterID)
		if q.EquipmentFilter {
			// A gym with an empty inventory excludes every challenge that
			// requires any equipment, but admits challenges requiring none.
			db = db.Where("NOT EXISTS (SELECT 1 FROM challenge_equipment ce WHERE ce.challenge_id = challenges.id AND ce.equipment_id NOT IN (SELECT ge.equipment_id FROM gym_equipment ge WHERE ge.gym_id = ?))",
				*q.GymFilterID)
		}
	}

	if q.SearchText != "" {
		db = db.Where("challenges.name ILIKE ?", "%"+q.SearchText+"%")
	}

	return db
}

func (s *CatalogStore) forYou(q CatalogQuery) *gorm.DB {
	db := s.eligible(q).
		Where("NOT "+approvedExistsSQL, q.AthleteID, models.SubmissionApproved)
	if len(q.DisciplineIDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(domainMatchSQL, q.DisciplineIDs)
}

func (s *CatalogStore) others(q CatalogQuery) *gorm.DB {
	db := s.eligible(q).
		Where("NOT "+approvedExistsSQL, q.AthleteID, models.SubmissionApproved)
	if len(q.DisciplineIDs) == 0 {
		return db
	}
	return db.Where("NOT "+domainMatchSQL, q.DisciplineIDs)
}

func (s *CatalogStore) completed(q CatalogQuery) *gorm.DB {
	return s.eligible(q).
		Where(approvedExistsSQL, q.AthleteID, models.SubmissionApproved)
}

// gormPartition adapts a query builder to the Partition interface. The query
// is rebuilt per call so Count and Fetch never share gorm statement state.
type gormPartition struct {
	build func() *gorm.DB
}

func (p *gormPartition) Count() (int64, error) {
	var n int64
	err := p.build().Count(&n).Error
	return n, err
}

func (p *gormPartition) Fetch(offset, limit int) ([]models.Challenge, error) {
	var items []models.Challenge
	err := p.build().
		Preload("Domains.Domain").
		Preload("Gym").
		Order("challenges.name ASC, challenges.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}
