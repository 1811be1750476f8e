// models/submission.go - Submission and proof variants
package models

import "time"

// Submission is the single record of an athlete's attempt at a challenge.
// One row per (athlete, challenge); a re-submission replaces it via upsert.
// Rows are removed only by explicit deletion, never implicitly.
type Submission struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	AthleteID   uint       `json:"athlete_id" gorm:"not null;uniqueIndex:idx_athlete_challenge"`
	Athlete     *Athlete   `json:"athlete,omitempty" gorm:"foreignKey:AthleteID"`
	ChallengeID uint       `json:"challenge_id" gorm:"not null;uniqueIndex:idx_athlete_challenge"`
	Challenge   *Challenge `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`

	ProofType ProofType `json:"proof_type" gorm:"not null;size:20"`
	// ProofRef is an opaque reference for the reviewer (upload key, dedupe id)
	ProofRef string `json:"proof_ref" gorm:"size:64"`
	// Flattened proof detail columns; exactly the ones for ProofType are set.
	// Details()/SetDetails() expose them as a tagged variant.
	ProofURL        string `json:"proof_url,omitempty" gorm:"size:500"`
	ProofActivityID int64  `json:"proof_activity_id,omitempty"`

	AchievedValue *float64 `json:"achieved_value,omitempty"`
	AchievedRank  *Rank    `json:"achieved_rank,omitempty" gorm:"size:2"`
	XPAwarded     int      `json:"xp_awarded" gorm:"default:0"`

	Status     SubmissionStatus `json:"status" gorm:"not null;default:'PENDING';index"`
	ReviewNote string           `json:"review_note,omitempty" gorm:"type:text"`
	ReviewedBy *uint            `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time       `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProofDetails is the tagged variant of proof-type-specific submission fields.
// Implementations are the only valid cases; switch over them exhaustively.
type ProofDetails interface {
	ProofType() ProofType
}

type VideoProof struct {
	URL string `json:"url"`
}

type ImageProof struct {
	URL string `json:"url"`
}

type StravaProof struct {
	ActivityID int64 `json:"activity_id"`
}

type GarminProof struct {
	ActivityID int64 `json:"activity_id"`
}

type ManualProof struct{}

func (VideoProof) ProofType() ProofType  { return ProofVideo }
func (ImageProof) ProofType() ProofType  { return ProofImage }
func (StravaProof) ProofType() ProofType { return ProofStrava }
func (GarminProof) ProofType() ProofType { return ProofGarmin }
func (ManualProof) ProofType() ProofType { return ProofManual }

// Details reconstructs the proof variant from the flattened columns.
func (s *Submission) Details() ProofDetails {
	switch s.ProofType {
	case ProofVideo:
		return VideoProof{URL: s.ProofURL}
	case ProofImage:
		return ImageProof{URL: s.ProofURL}
	case ProofStrava:
		return StravaProof{ActivityID: s.ProofActivityID}
	case ProofGarmin:
		return GarminProof{ActivityID: s.ProofActivityID}
	case ProofManual:
		return ManualProof{}
	}
	return nil
}

// SetDetails stores a proof variant into the flattened columns.
func (s *Submission) SetDetails(d ProofDetails) {
	s.ProofType = d.ProofType()
	s.ProofURL = ""
	s.ProofActivityID = 0
	switch v := d.(type) {
	case VideoProof:
		s.ProofURL = v.URL
	case ImageProof:
		s.ProofURL = v.URL
	case StravaProof:
		s.ProofActivityID = v.ActivityID
	case GarminProof:
		s.ProofActivityID = v.ActivityID
	case ManualProof:
	}
}

// ActivityRecord is the normalized shape of an externally fetched activity
// (Strava/Garmin). It is never persisted; the external fetch happens before
// validation and carries its own retry policy.
type ActivityRecord struct {
	DistanceMeters      float64 `json:"distance_meters"`
	MovingTimeSeconds   int     `json:"moving_time_seconds"`
	ElevationGainMeters float64 `json:"elevation_gain_meters"`
	ActivityType        string  `json:"activity_type"`
	HasGPS              bool    `json:"has_gps"`
	HasHeartRate        bool    `json:"has_heart_rate"`
}

func (Submission) TableName() string {
	return "submissions"
}
