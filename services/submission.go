// services/submission.go - Submission grading, upsert and XP ledger
package services

import (
	"errors"
	"time"

	"apexfit/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionService runs the full grading flow: eligibility, proof
// validation, tier resolution, XP award and the atomic create-or-replace of
// the athlete's submission row.
type SubmissionService struct {
	db        *gorm.DB
	gyms      *GymService
	divisions *DivisionService
	xpTable   RankXPTable
}

func NewSubmissionService(db *gorm.DB, gyms *GymService, divisions *DivisionService, xpTable RankXPTable) *SubmissionService {
	return &SubmissionService{db: db, gyms: gyms, divisions: divisions, xpTable: xpTable}
}

// SubmitInput carries the athlete-supplied proof. For STRAVA/GARMIN proofs
// Activity holds the record already fetched by the external proof collaborator.
type SubmitInput struct {
	Details     models.ProofDetails
	ManualValue *float64
	Activity    *models.ActivityRecord
}

// GetActiveChallenge loads a challenge with everything grading needs, or a
// NotFoundError when it is missing or inactive (absolute, not contextual).
func (s *SubmissionService) GetActiveChallenge(challengeID uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.db.Where("id = ? AND is_active = ?", challengeID, true).
		Preload("Domains.Domain").
		Preload("Grades.Division").
		Preload("AllowedDivisions").
		Preload("RequiredEquipment").
		Preload("Constraints").
		First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "challenge"}
		}
		return nil, err
	}
	return &challenge, nil
}

// Submit grades a proof and upserts the athlete's submission for the
// challenge. Re-submission replaces the previous attempt; the per-domain XP
// ledger is reconciled against whatever the replaced attempt had banked.
func (s *SubmissionService) Submit(athleteID, challengeID uint, in SubmitInput) (*models.Submission, error) {
	challenge, err := s.GetActiveChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if err := ValidateChallengeRules(challenge); err != nil {
		return nil, err
	}

	var athlete models.Athlete
	if err := s.db.First(&athlete, athleteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "athlete"}
		}
		return nil, err
	}

	division, err := s.divisions.MatchAthlete(&athlete)
	if err != nil {
		return nil, err
	}
	var divisionID *uint
	if division != nil {
		divisionID = &division.ID
	}

	activeGyms, err := s.gyms.ActiveGymIDs(athleteID)
	if err != nil {
		return nil, err
	}
	eligibility := CheckEligibility(challenge, EligibilityInput{
		ActiveGymIDs: activeGyms,
		DivisionID:   divisionID,
	})
	if !eligibility.Eligible {
		return nil, &NotEligibleError{Reasons: eligibility.Reasons}
	}

	if err := ValidateProofDetails(challenge, in.Details); err != nil {
		return nil, err
	}

	needsActivity := false
	switch in.Details.(type) {
	case models.StravaProof, models.GarminProof:
		needsActivity = true
	}
	if needsActivity {
		if in.Activity == nil {
			return nil, NewValidationError("activity record is required for %s proof", in.Details.ProofType())
		}
		result := ValidateActivity(challenge.Constraints, *in.Activity)
		if !result.Valid {
			return nil, &ProofInvalidError{Reasons: result.Errors}
		}
	}

	achieved, rank, xp, err := s.grade(challenge, divisionID, in)
	if err != nil {
		return nil, err
	}

	submission := models.Submission{
		AthleteID:     athleteID,
		ChallengeID:   challengeID,
		ProofRef:      uuid.NewString(),
		AchievedValue: achieved,
		AchievedRank:  rank,
		XPAwarded:     xp,
		Status:        models.SubmissionPending,
	}
	submission.SetDetails(in.Details)

	// Machine-verified proofs skip human review.
	if needsActivity {
		submission.Status = models.SubmissionApproved
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE on an absent row locks nothing, so two first-time
		// submissions would both miss the clawback and bank XP twice.
		// Serialize the whole flow per (athlete, challenge).
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", submissionLockKey(athleteID, challengeID)).Error; err != nil {
			return err
		}

		var previous models.Submission
		prevErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("athlete_id = ? AND challenge_id = ?", athleteID, challengeID).
			First(&previous).Error
		if prevErr != nil && !errors.Is(prevErr, gorm.ErrRecordNotFound) {
			return prevErr
		}

		// Reconcile the ledger: the replaced attempt's banked XP comes out,
		// the new absolute total goes in (only approved attempts bank XP).
		if prevErr == nil && previous.Status == models.SubmissionApproved {
			if err := s.applyDomainXP(tx, athleteID, challenge.Domains, previous.XPAwarded, -1); err != nil {
				return err
			}
		}

		// Storage-level upsert keyed on (athlete_id, challenge_id): racing
		// resubmissions cannot duplicate rows, last write wins.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "athlete_id"}, {Name: "challenge_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"proof_type", "proof_ref", "proof_url", "proof_activity_id",
				"achieved_value", "achieved_rank", "xp_awarded",
				"status", "review_note", "reviewed_by", "reviewed_at", "updated_at",
			}),
		}).Create(&submission).Error; err != nil {
			return err
		}

		if submission.Status == models.SubmissionApproved {
			if err := s.applyDomainXP(tx, athleteID, challenge.Domains, submission.XPAwarded, +1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// grade computes achieved value, resolved rank and XP for the submission.
// "No tier resolved" is a valid outcome carrying zero XP.
func (s *SubmissionService) grade(challenge *models.Challenge, divisionID *uint, in SubmitInput) (*float64, *models.Rank, int, error) {
	if challenge.GradingType == models.GradingPassFail {
		return nil, nil, s.xpTable.PassFailXP(challenge.PassRank), nil
	}

	achieved := in.ManualValue
	if in.Activity != nil {
		if auto := AutoFillAchieved(challenge.GradingType, *in.Activity); auto != nil {
			achieved = auto
		}
	}
	if achieved == nil {
		return nil, nil, 0, NewValidationError("achieved value is required for %s grading", challenge.GradingType)
	}

	grades := GradesForDivision(challenge.Grades, divisionID)
	rank := ResolveTier(challenge.GradingType, *achieved, grades)
	if rank == nil {
		return achieved, nil, 0, nil
	}
	return achieved, rank, s.xpTable.CumulativeXP(*rank), nil
}

// Review moves a submission through its lifecycle. Only a coach of the owning
// gym (or a platform coach for global challenges) may review.
func (s *SubmissionService) Review(reviewerID, submissionID uint, status models.SubmissionStatus, note string) (*models.Submission, error) {
	if status != models.SubmissionApproved && status != models.SubmissionRejected && status != models.SubmissionNeedsRevision {
		return nil, NewValidationError("invalid review status %q", status)
	}

	var submission models.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "submission"}
		}
		return nil, err
	}

	challenge, err := s.GetActiveChallenge(submission.ChallengeID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canReview(reviewerID, challenge)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &NotEligibleError{Reasons: []string{"only a coach of the owning gym can review this submission"}}
	}

	previous := submission.Status
	now := time.Now().UTC()
	submission.Status = status
	submission.ReviewNote = note
	submission.ReviewedBy = &reviewerID
	submission.ReviewedAt = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&submission).Error; err != nil {
			return err
		}
		if previous == models.SubmissionApproved && status != models.SubmissionApproved {
			return s.applyDomainXP(tx, submission.AthleteID, challenge.Domains, submission.XPAwarded, -1)
		}
		if previous != models.SubmissionApproved && status == models.SubmissionApproved {
			return s.applyDomainXP(tx, submission.AthleteID, challenge.Domains, submission.XPAwarded, +1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

func (s *SubmissionService) canReview(reviewerID uint, challenge *models.Challenge) (bool, error) {
	if challenge.GymID != nil {
		return s.gyms.IsCoachAt(reviewerID, *challenge.GymID)
	}
	var reviewer models.Athlete
	if err := s.db.First(&reviewer, reviewerID).Error; err != nil {
		return false, err
	}
	return reviewer.IsCoach, nil
}

// Delete removes an athlete's own submission. Submissions are destroyed only
// through this explicit path, never implicitly.
func (s *SubmissionService) Delete(athleteID, submissionID uint) error {
	var submission models.Submission
	err := s.db.Where("id = ? AND athlete_id = ?", submissionID, athleteID).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "submission"}
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if submission.Status == models.SubmissionApproved {
			challenge, err := s.GetActiveChallenge(submission.ChallengeID)
			if err == nil {
				if err := s.applyDomainXP(tx, athleteID, challenge.Domains, submission.XPAwarded, -1); err != nil {
					return err
				}
			} else if !IsNotFound(err) {
				return err
			}
		}
		return tx.Delete(&submission).Error
	})
}

// ListByAthlete returns the athlete's submissions, newest first.
func (s *SubmissionService) ListByAthlete(athleteID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.Where("athlete_id = ?", athleteID).
		Preload("Challenge").
		Order("updated_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// submissionLockKey packs (athlete, challenge) into the single bigint
// keyspace of pg_advisory_xact_lock.
func submissionLockKey(athleteID, challengeID uint) int64 {
	return int64(athleteID)<<32 | int64(uint32(challengeID))
}

// applyDomainXP applies a submission's per-domain XP split to the athlete's
// ledger. sign is +1 to bank XP and -1 to claw back a replaced/revoked award.
// The split is recomputed from the challenge's current domain shares, so a
// clawback after the shares were re-weighted removes amounts per the new
// weights, not what was banked. Same class of drift as the rounding split.
func (s *SubmissionService) applyDomainXP(tx *gorm.DB, athleteID uint, domains []models.ChallengeDomain, totalXP int, sign int) error {
	if totalXP == 0 {
		return nil
	}

	split := SplitXP(totalXP, domains)
	applied := 0
	for domainID, amount := range split {
		if amount == 0 {
			continue
		}
		delta := amount * sign
		applied += delta

		row := models.AthleteDomainXP{AthleteID: athleteID, DomainID: domainID}
		if err := tx.Where("athlete_id = ? AND domain_id = ?", athleteID, domainID).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AthleteDomainXP{}).
			Where("id = ?", row.ID).
			Update("xp", gorm.Expr("xp + ?", delta)).Error; err != nil {
			return err
		}
	}

	// Total XP tracks the sum of the domain ledger, not the unsplit award,
	// since independent rounding can make the parts differ from the total.
	return tx.Model(&models.Athlete{}).
		Where("id = ?", athleteID).
		Update("total_xp", gorm.Expr("total_xp + ?", applied)).Error
}
