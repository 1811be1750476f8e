// services/grading.go - Tier resolution and XP award
package services

import (
	"encoding/json"
	"log"
	"math"
	"os"

	"apexfit/models"
)

// RankXPTable maps each rank to its fixed XP value.
type RankXPTable map[models.Rank]int

// DefaultRankXP is the stock per-rank XP award. It is configuration, not
// business logic: RANK_XP_TABLE overrides it at startup.
func DefaultRankXP() RankXPTable {
	return RankXPTable{
		models.RankF: 25,
		models.RankE: 50,
		models.RankD: 75,
		models.RankC: 100,
		models.RankB: 150,
		models.RankA: 200,
		models.RankS: 300,
	}
}

// LoadRankXPTable returns the default table, with per-rank values overridden
// from the RANK_XP_TABLE environment variable (JSON object, e.g.
// {"F":25,"S":500}) when present.
func LoadRankXPTable() RankXPTable {
	table := DefaultRankXP()

	raw := os.Getenv("RANK_XP_TABLE")
	if raw == "" {
		return table
	}

	var override map[string]int
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		log.Printf("Warning: invalid RANK_XP_TABLE, using defaults: %v", err)
		return table
	}

	for k, v := range override {
		rank := models.Rank(k)
		if rank.Valid() && v > 0 {
			table[rank] = v
		}
	}
	return table
}

// gradeQualifies applies the per-grading-type comparison direction. For TIME
// a lower achieved value is better, so the target is an upper bound; every
// other graded type treats the target as a floor. A zero or negative achieved
// value never qualifies.
func gradeQualifies(gt models.GradingType, achieved float64, target float64) bool {
	if achieved <= 0 {
		return false
	}
	if gt == models.GradingTime {
		return achieved <= target
	}
	return achieved >= target
}

// ResolveTier maps an achieved value to the highest rank tier cleared, given
// the grade rows for the athlete's division. Duplicate targets are tolerated
// by taking the highest rank among ties. Returns nil when no grade qualifies,
// which is a valid "not yet graded" outcome, not an error.
func ResolveTier(gt models.GradingType, achieved float64, grades []models.Grade) *models.Rank {
	var best *models.Rank
	for i := range grades {
		g := &grades[i]
		if !g.Rank.Valid() {
			continue
		}
		if !gradeQualifies(gt, achieved, g.TargetValue) {
			continue
		}
		if best == nil || g.Rank.Above(*best) {
			r := g.Rank
			best = &r
		}
	}
	return best
}

// CumulativeXP returns the summed XP of every rank from F up through tier.
// Clearing C on the first attempt still earns F+E+D+C.
func (t RankXPTable) CumulativeXP(tier models.Rank) int {
	total := 0
	for _, r := range models.RankOrder {
		total += t[r]
		if r == tier {
			break
		}
	}
	return total
}

// PassFailXP returns the single fixed award for a pass/fail completion.
func (t RankXPTable) PassFailXP(passRank models.Rank) int {
	return t[passRank]
}

// SplitXP distributes a total XP award across domain assignments, rounding to
// the nearest integer independently per domain. The rounded parts are not
// guaranteed to sum to the total; callers treat the split as authoritative.
func SplitXP(total int, domains []models.ChallengeDomain) map[uint]int {
	split := make(map[uint]int, len(domains))
	for _, d := range domains {
		split[d.DomainID] = int(math.Round(float64(total) * float64(d.XPPercent) / 100))
	}
	return split
}

// GradesForDivision selects the grade rows to resolve against: the athlete's
// own division when it has rows, otherwise the rows of the fallback division
// (the represented division with the lowest sort priority). Returns nil when
// the challenge has no grade rows at all.
func GradesForDivision(grades []models.Grade, divisionID *uint) []models.Grade {
	if divisionID != nil {
		var own []models.Grade
		for _, g := range grades {
			if g.DivisionID == *divisionID {
				own = append(own, g)
			}
		}
		if len(own) > 0 {
			return own
		}
	}

	// Fallback division: lowest sort order among divisions that have rows,
	// division ID as the tiebreak when sort data is missing.
	byDivision := make(map[uint][]models.Grade)
	for _, g := range grades {
		byDivision[g.DivisionID] = append(byDivision[g.DivisionID], g)
	}

	var bestID uint
	bestSort := 0
	found := false
	for id, rows := range byDivision {
		sortOrder := 0
		if rows[0].Division != nil {
			sortOrder = rows[0].Division.SortOrder
		}
		if !found || sortOrder < bestSort || (sortOrder == bestSort && id < bestID) {
			bestID, bestSort, found = id, sortOrder, true
		}
	}
	if !found {
		return nil
	}
	return byDivision[bestID]
}

// ValidateChallengeRules rejects challenges that violate the structural
// invariants before any grading computation runs.
func ValidateChallengeRules(c *models.Challenge) error {
	if !c.GradingType.Valid() {
		return NewValidationError("unknown grading type %q", c.GradingType)
	}
	if len(c.Domains) < 1 || len(c.Domains) > 3 {
		return NewValidationError("challenge must assign between 1 and 3 domains, got %d", len(c.Domains))
	}
	sum := 0
	for _, d := range c.Domains {
		if d.XPPercent <= 0 {
			return NewValidationError("domain %d has non-positive XP share", d.DomainID)
		}
		sum += d.XPPercent
	}
	if sum != 100 {
		return NewValidationError("domain XP shares must sum to 100, got %d", sum)
	}
	if len(c.AcceptedProofTypes()) == 0 {
		return NewValidationError("challenge must accept at least one proof type")
	}
	if c.GradingType == models.GradingPassFail && !c.PassRank.Valid() {
		return NewValidationError("pass/fail challenge has invalid pass rank %q", c.PassRank)
	}
	return nil
}
