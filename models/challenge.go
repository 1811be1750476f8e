// models/challenge.go - Challenge System Data Models
package models

import (
	"strings"
	"time"
)

// Challenge represents a gradeable athletic challenge
type Challenge struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"not null;size:100;index"`
	Description string      `json:"description" gorm:"type:text"`
	GradingType GradingType `json:"grading_type" gorm:"not null;size:20"`
	Unit        string      `json:"unit" gorm:"size:30"`                // e.g. "reps", "m", "kg"
	TimeFormat  string      `json:"time_format" gorm:"size:20"`         // display format for TIME grading, e.g. "mm:ss"
	PassRank    Rank        `json:"pass_rank" gorm:"size:2;default:'F'"` // award tier for PASS_FAIL grading
	IsActive    bool        `json:"is_active" gorm:"default:true;index"`

	// null gym = global challenge, visible to every athlete
	GymID *uint `json:"gym_id" gorm:"index"`
	Gym   *Gym  `json:"gym,omitempty" gorm:"foreignKey:GymID"`

	// Comma-separated accepted proof types, e.g. "VIDEO,STRAVA"
	ProofTypes string `json:"proof_types" gorm:"not null;size:100"`

	Domains           []ChallengeDomain    `json:"domains,omitempty" gorm:"foreignKey:ChallengeID"`
	Grades            []Grade              `json:"grades,omitempty" gorm:"foreignKey:ChallengeID"`
	AllowedDivisions  []Division           `json:"allowed_divisions,omitempty" gorm:"many2many:challenge_divisions"`
	RequiredEquipment []Equipment          `json:"required_equipment,omitempty" gorm:"many2many:challenge_equipment"`
	Constraints       *ActivityConstraints `json:"activity_constraints,omitempty" gorm:"foreignKey:ChallengeID"`

	CreatedBy uint      `json:"created_by" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChallengeDomain assigns a share of a challenge's XP to a skill domain.
// A challenge carries 1-3 assignments whose percentages sum to 100.
type ChallengeDomain struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	ChallengeID uint    `json:"challenge_id" gorm:"not null;uniqueIndex:idx_challenge_domain"`
	DomainID    uint    `json:"domain_id" gorm:"not null;uniqueIndex:idx_challenge_domain"`
	Domain      *Domain `json:"domain,omitempty" gorm:"foreignKey:DomainID"`
	XPPercent   int     `json:"xp_percent" gorm:"not null"`
}

// Grade is a (division, rank) -> target value row belonging to a challenge.
// TargetWeight is only set for WEIGHTED_REPS grading.
type Grade struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	ChallengeID  uint     `json:"challenge_id" gorm:"not null;index"`
	DivisionID   uint     `json:"division_id" gorm:"not null;index"`
	Division     *Division `json:"division,omitempty" gorm:"foreignKey:DivisionID"`
	Rank         Rank     `json:"rank" gorm:"not null;size:2"`
	TargetValue  float64  `json:"target_value" gorm:"not null"`
	TargetWeight *float64 `json:"target_weight,omitempty"`
}

// ActivityConstraints are the optional proof requirements checked against an
// externally sourced activity record (Strava/Garmin).
type ActivityConstraints struct {
	ID                uint     `json:"id" gorm:"primaryKey"`
	ChallengeID       uint     `json:"challenge_id" gorm:"not null;uniqueIndex"`
	ActivityType      string   `json:"activity_type" gorm:"size:50"` // e.g. "Run"; empty = any
	MinDistance       *float64 `json:"min_distance,omitempty"`       // meters
	MaxDistance       *float64 `json:"max_distance,omitempty"`       // meters
	MinElevationGain  *float64 `json:"min_elevation_gain,omitempty"` // meters
	RequiresGPS       bool     `json:"requires_gps" gorm:"default:false"`
	RequiresHeartRate bool     `json:"requires_heart_rate" gorm:"default:false"`
}

// AcceptedProofTypes parses the stored proof type list.
func (c *Challenge) AcceptedProofTypes() []ProofType {
	parts := strings.Split(c.ProofTypes, ",")
	types := make([]ProofType, 0, len(parts))
	for _, p := range parts {
		pt := ProofType(strings.TrimSpace(p))
		if pt.Valid() {
			types = append(types, pt)
		}
	}
	return types
}

// AcceptsProof reports whether the challenge accepts the given proof type.
func (c *Challenge) AcceptsProof(pt ProofType) bool {
	for _, accepted := range c.AcceptedProofTypes() {
		if accepted == pt {
			return true
		}
	}
	return false
}

// IsGlobal reports whether the challenge is owned by no gym.
func (c *Challenge) IsGlobal() bool {
	return c.GymID == nil
}

func (Challenge) TableName() string {
	return "challenges"
}

func (ChallengeDomain) TableName() string {
	return "challenge_domains"
}

func (Grade) TableName() string {
	return "grades"
}

func (ActivityConstraints) TableName() string {
	return "activity_constraints"
}
