// models/enums.go - Shared enum types
package models

// Rank is one of the seven ordered grade tiers, F (lowest) through S (highest).
type Rank string

const (
	RankF Rank = "F"
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

// RankOrder lists all ranks lowest to highest.
var RankOrder = []Rank{RankF, RankE, RankD, RankC, RankB, RankA, RankS}

var rankIndex = map[Rank]int{
	RankF: 0, RankE: 1, RankD: 2, RankC: 3, RankB: 4, RankA: 5, RankS: 6,
}

// Index returns the rank's position in F..S order, or -1 for an unknown rank.
func (r Rank) Index() int {
	if i, ok := rankIndex[r]; ok {
		return i
	}
	return -1
}

// Above reports whether r outranks other.
func (r Rank) Above(other Rank) bool {
	return r.Index() > other.Index()
}

func (r Rank) Valid() bool {
	return r.Index() >= 0
}

// GradingType is the measurement shape of a challenge's performance.
type GradingType string

const (
	GradingPassFail     GradingType = "PASS_FAIL"
	GradingReps         GradingType = "REPS"
	GradingTime         GradingType = "TIME"
	GradingDistance     GradingType = "DISTANCE"
	GradingTimedReps    GradingType = "TIMED_REPS"
	GradingWeightedReps GradingType = "WEIGHTED_REPS"
)

func (g GradingType) Valid() bool {
	switch g {
	case GradingPassFail, GradingReps, GradingTime, GradingDistance, GradingTimedReps, GradingWeightedReps:
		return true
	}
	return false
}

// IsGraded reports whether the grading type uses a tier table (everything but pass/fail).
func (g GradingType) IsGraded() bool {
	return g != GradingPassFail
}

// ProofType is the evidentiary mechanism accepted for a challenge.
type ProofType string

const (
	ProofVideo  ProofType = "VIDEO"
	ProofImage  ProofType = "IMAGE"
	ProofStrava ProofType = "STRAVA"
	ProofGarmin ProofType = "GARMIN"
	ProofManual ProofType = "MANUAL"
)

func (p ProofType) Valid() bool {
	switch p {
	case ProofVideo, ProofImage, ProofStrava, ProofGarmin, ProofManual:
		return true
	}
	return false
}

// SubmissionStatus is the review lifecycle state of a submission.
type SubmissionStatus string

const (
	SubmissionPending       SubmissionStatus = "PENDING"
	SubmissionApproved      SubmissionStatus = "APPROVED"
	SubmissionRejected      SubmissionStatus = "REJECTED"
	SubmissionNeedsRevision SubmissionStatus = "NEEDS_REVISION"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected, SubmissionNeedsRevision:
		return true
	}
	return false
}

// Gender is the optional gender filter on divisions and athletes.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)
