// services/proof.go - Activity proof validation and auto-fill
package services

import (
	"fmt"
	"math"

	"apexfit/models"
)

// ProofResult is the collected outcome of activity validation. Every failed
// rule contributes a reason; nothing short-circuits, so the caller can show
// all problems at once.
type ProofResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateActivity checks an externally sourced activity record against a
// challenge's proof constraints. Nil constraints accept any record.
func ValidateActivity(constraints *models.ActivityConstraints, rec models.ActivityRecord) ProofResult {
	if constraints == nil {
		return ProofResult{Valid: true}
	}

	var errs []string

	if constraints.ActivityType != "" && rec.ActivityType != constraints.ActivityType {
		errs = append(errs, fmt.Sprintf("activity type must be %q, got %q", constraints.ActivityType, rec.ActivityType))
	}
	if constraints.MinDistance != nil && rec.DistanceMeters < *constraints.MinDistance {
		errs = append(errs, fmt.Sprintf("distance %.0fm is below the required minimum of %.0fm", rec.DistanceMeters, *constraints.MinDistance))
	}
	if constraints.MaxDistance != nil && rec.DistanceMeters > *constraints.MaxDistance {
		errs = append(errs, fmt.Sprintf("distance %.0fm exceeds the allowed maximum of %.0fm", rec.DistanceMeters, *constraints.MaxDistance))
	}
	if constraints.MinElevationGain != nil && rec.ElevationGainMeters < *constraints.MinElevationGain {
		errs = append(errs, fmt.Sprintf("elevation gain %.0fm is below the required minimum of %.0fm", rec.ElevationGainMeters, *constraints.MinElevationGain))
	}
	if constraints.RequiresGPS && !rec.HasGPS {
		errs = append(errs, "activity has no GPS data but this challenge requires it")
	}
	if constraints.RequiresHeartRate && !rec.HasHeartRate {
		errs = append(errs, "activity has no heart rate data but this challenge requires it")
	}

	return ProofResult{Valid: len(errs) == 0, Errors: errs}
}

// AutoFillAchieved derives the achieved value from an activity record. Only
// TIME (moving seconds) and DISTANCE (meters, rounded to nearest integer) can
// be auto-filled; reps-based types have no activity field and stay manual.
func AutoFillAchieved(gt models.GradingType, rec models.ActivityRecord) *float64 {
	switch gt {
	case models.GradingTime:
		v := float64(rec.MovingTimeSeconds)
		return &v
	case models.GradingDistance:
		v := math.Round(rec.DistanceMeters)
		return &v
	}
	return nil
}

// ValidateProofDetails checks a proof variant against the challenge's
// accepted proof types and the variant's own required fields. The switch is
// exhaustive over the sealed ProofDetails cases.
func ValidateProofDetails(c *models.Challenge, details models.ProofDetails) error {
	if details == nil {
		return NewValidationError("proof details are required")
	}
	if !c.AcceptsProof(details.ProofType()) {
		return &NotEligibleError{Reasons: []string{
			fmt.Sprintf("challenge does not accept %s proof", details.ProofType()),
		}}
	}

	switch d := details.(type) {
	case models.VideoProof:
		if d.URL == "" {
			return NewValidationError("video proof requires a url")
		}
	case models.ImageProof:
		if d.URL == "" {
			return NewValidationError("image proof requires a url")
		}
	case models.StravaProof:
		if d.ActivityID <= 0 {
			return NewValidationError("strava proof requires an activity id")
		}
	case models.GarminProof:
		if d.ActivityID <= 0 {
			return NewValidationError("garmin proof requires an activity id")
		}
	case models.ManualProof:
		// nothing to verify; a coach vouches for the attempt
	default:
		return NewValidationError("unknown proof details type %T", details)
	}
	return nil
}
