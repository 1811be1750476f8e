package services

import (
	"testing"

	"apexfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradeRows(divID uint, targets map[models.Rank]float64) []models.Grade {
	rows := make([]models.Grade, 0, len(targets))
	for _, r := range models.RankOrder {
		if tv, ok := targets[r]; ok {
			rows = append(rows, models.Grade{DivisionID: divID, Rank: r, TargetValue: tv})
		}
	}
	return rows
}

func TestResolveTierReps(t *testing.T) {
	grades := gradeRows(1, map[models.Rank]float64{
		models.RankF: 10, models.RankE: 20, models.RankD: 30, models.RankC: 40,
	})

	tests := []struct {
		achieved float64
		want     *models.Rank
	}{
		{5, nil},
		{10, rankPtr(models.RankF)},
		{25, rankPtr(models.RankE)},
		{30, rankPtr(models.RankD)},
		{999, rankPtr(models.RankC)},
		{0, nil},
		{-3, nil},
	}

	for _, tt := range tests {
		got := ResolveTier(models.GradingReps, tt.achieved, grades)
		if tt.want == nil {
			assert.Nil(t, got, "achieved=%v", tt.achieved)
		} else {
			require.NotNil(t, got, "achieved=%v", tt.achieved)
			assert.Equal(t, *tt.want, *got, "achieved=%v", tt.achieved)
		}
	}
}

func TestResolveTierTimeLowerIsBetter(t *testing.T) {
	// 5km targets in seconds: faster times clear higher ranks.
	grades := gradeRows(1, map[models.Rank]float64{
		models.RankF: 2100, models.RankE: 1800, models.RankD: 1500,
	})

	got := ResolveTier(models.GradingTime, 1950, grades)
	require.NotNil(t, got)
	assert.Equal(t, models.RankE, *got)

	got = ResolveTier(models.GradingTime, 1500, grades)
	require.NotNil(t, got)
	assert.Equal(t, models.RankD, *got)

	// Slower than the F cutoff earns nothing.
	assert.Nil(t, ResolveTier(models.GradingTime, 2101, grades))

	// A zero time is a bad record, not a world record.
	assert.Nil(t, ResolveTier(models.GradingTime, 0, grades))
}

func TestResolveTierDuplicateTargets(t *testing.T) {
	// Two ranks share a target; the higher rank wins the tie.
	grades := []models.Grade{
		{DivisionID: 1, Rank: models.RankE, TargetValue: 20},
		{DivisionID: 1, Rank: models.RankD, TargetValue: 20},
	}

	got := ResolveTier(models.GradingReps, 20, grades)
	require.NotNil(t, got)
	assert.Equal(t, models.RankD, *got)
}

func TestResolveTierMonotonic(t *testing.T) {
	grades := gradeRows(1, map[models.Rank]float64{
		models.RankF: 5, models.RankD: 15, models.RankB: 30, models.RankS: 60,
	})

	prev := -1
	for achieved := 1.0; achieved <= 70; achieved++ {
		got := ResolveTier(models.GradingWeightedReps, achieved, grades)
		idx := -1
		if got != nil {
			idx = got.Index()
		}
		assert.GreaterOrEqual(t, idx, prev, "tier regressed at achieved=%v", achieved)
		prev = idx
	}
}

func TestCumulativeXP(t *testing.T) {
	table := DefaultRankXP()

	// Clearing E banks F and E together.
	assert.Equal(t, 75, table.CumulativeXP(models.RankE))
	assert.Equal(t, 25, table.CumulativeXP(models.RankF))
	assert.Equal(t, 25+50+75+100, table.CumulativeXP(models.RankC))
	assert.Equal(t, 900, table.CumulativeXP(models.RankS))
}

func TestCumulativeXPStrictlyIncreasing(t *testing.T) {
	table := DefaultRankXP()
	prev := 0
	for _, r := range models.RankOrder {
		got := table.CumulativeXP(r)
		assert.Greater(t, got, prev, "rank %s", r)
		prev = got
	}
}

func TestPassFailXP(t *testing.T) {
	table := DefaultRankXP()
	assert.Equal(t, 100, table.PassFailXP(models.RankC))
	assert.Equal(t, 25, table.PassFailXP(models.RankF))
}

func TestLoadRankXPTableOverride(t *testing.T) {
	t.Setenv("RANK_XP_TABLE", `{"S":500,"F":30}`)
	table := LoadRankXPTable()
	assert.Equal(t, 500, table[models.RankS])
	assert.Equal(t, 30, table[models.RankF])
	// Unmentioned ranks keep their defaults.
	assert.Equal(t, 150, table[models.RankB])
}

func TestLoadRankXPTableRejectsBadInput(t *testing.T) {
	t.Setenv("RANK_XP_TABLE", `not json`)
	assert.Equal(t, DefaultRankXP(), LoadRankXPTable())

	// Unknown ranks and non-positive values are ignored.
	t.Setenv("RANK_XP_TABLE", `{"X":100,"S":-5}`)
	assert.Equal(t, DefaultRankXP(), LoadRankXPTable())
}

func TestSplitXP(t *testing.T) {
	domains := []models.ChallengeDomain{
		{DomainID: 1, XPPercent: 60},
		{DomainID: 2, XPPercent: 40},
	}
	split := SplitXP(150, domains)
	assert.Equal(t, 90, split[1])
	assert.Equal(t, 60, split[2])
}

func TestSplitXPRoundsIndependently(t *testing.T) {
	// Each share rounds on its own, so the parts can overshoot the total.
	domains := []models.ChallengeDomain{
		{DomainID: 1, XPPercent: 33},
		{DomainID: 2, XPPercent: 33},
		{DomainID: 3, XPPercent: 34},
	}
	split := SplitXP(50, domains)
	assert.Equal(t, 17, split[1])
	assert.Equal(t, 17, split[2])
	assert.Equal(t, 17, split[3])
	assert.Equal(t, 51, split[1]+split[2]+split[3])
}

func TestGradesForDivision(t *testing.T) {
	seniors := models.Division{ID: 1, SortOrder: 1}
	masters := models.Division{ID: 2, SortOrder: 5}

	grades := []models.Grade{
		{DivisionID: 1, Division: &seniors, Rank: models.RankF, TargetValue: 10},
		{DivisionID: 1, Division: &seniors, Rank: models.RankE, TargetValue: 20},
		{DivisionID: 2, Division: &masters, Rank: models.RankF, TargetValue: 8},
	}

	// Own division has rows.
	own := GradesForDivision(grades, uintPtr(2))
	require.Len(t, own, 1)
	assert.Equal(t, uint(2), own[0].DivisionID)

	// Division without rows falls back to the lowest sort order.
	fb := GradesForDivision(grades, uintPtr(99))
	require.Len(t, fb, 2)
	assert.Equal(t, uint(1), fb[0].DivisionID)

	// No division at all behaves the same way.
	fb = GradesForDivision(grades, nil)
	require.Len(t, fb, 2)
	assert.Equal(t, uint(1), fb[0].DivisionID)

	// A challenge with no grade rows resolves to nothing.
	assert.Nil(t, GradesForDivision(nil, uintPtr(1)))
}

func TestValidateChallengeRules(t *testing.T) {
	valid := func() *models.Challenge {
		return &models.Challenge{
			GradingType: models.GradingReps,
			ProofTypes:  "VIDEO",
			Domains: []models.ChallengeDomain{
				{DomainID: 1, XPPercent: 60},
				{DomainID: 2, XPPercent: 40},
			},
		}
	}

	assert.NoError(t, ValidateChallengeRules(valid()))

	c := valid()
	c.GradingType = "SPRINTS"
	assert.True(t, IsValidation(ValidateChallengeRules(c)))

	c = valid()
	c.Domains = nil
	assert.True(t, IsValidation(ValidateChallengeRules(c)))

	c = valid()
	c.Domains = append(c.Domains,
		models.ChallengeDomain{DomainID: 3, XPPercent: 10},
		models.ChallengeDomain{DomainID: 4, XPPercent: 10},
	)
	assert.True(t, IsValidation(ValidateChallengeRules(c)), "more than 3 domains")

	c = valid()
	c.Domains[0].XPPercent = 70
	assert.True(t, IsValidation(ValidateChallengeRules(c)), "shares must sum to 100")

	c = valid()
	c.ProofTypes = ""
	assert.True(t, IsValidation(ValidateChallengeRules(c)))

	c = valid()
	c.GradingType = models.GradingPassFail
	c.PassRank = "Z"
	assert.True(t, IsValidation(ValidateChallengeRules(c)))

	c = valid()
	c.GradingType = models.GradingPassFail
	c.PassRank = models.RankC
	assert.NoError(t, ValidateChallengeRules(c))
}

func rankPtr(r models.Rank) *models.Rank { return &r }
func uintPtr(v uint) *uint               { return &v }
