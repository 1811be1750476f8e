//go:build integration

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"apexfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("apexfit"),
		postgrescontainer.WithUsername("apexfit"),
		postgrescontainer.WithPassword("apexfit"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := openWithRetry(connStr)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Athlete{},
		&models.Domain{},
		&models.Equipment{},
		&models.Gym{},
		&models.GymMember{},
		&models.Division{},
		&models.Challenge{},
		&models.ChallengeDomain{},
		&models.Grade{},
		&models.ActivityConstraints{},
		&models.Submission{},
		&models.AthleteDomainXP{},
	))
	return db
}

func openWithRetry(connStr string) (*gorm.DB, error) {
	deadline := time.Now().Add(30 * time.Second)
	var lastErr error
	for {
		db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		lastErr = err
		if err == nil {
			sqlDB, derr := db.DB()
			if derr == nil {
				if lastErr = sqlDB.Ping(); lastErr == nil {
					return db, nil
				}
			}
		}
		if time.Now().After(deadline) {
			return nil, lastErr
		}
		time.Sleep(time.Second)
	}
}

// seedChallenge creates a global REPS challenge worth 100% of one domain,
// graded F:10 E:20 D:30 for a single division.
func seedChallenge(t *testing.T, db *gorm.DB) (*models.Challenge, *models.Domain) {
	t.Helper()

	domain := models.Domain{Name: "Strength", IsActive: true}
	require.NoError(t, db.Create(&domain).Error)

	division := models.Division{Name: "Open", SortOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&division).Error)

	challenge := models.Challenge{
		Name:        "Max Pull-ups",
		GradingType: models.GradingReps,
		Unit:        "reps",
		ProofTypes:  "STRAVA,MANUAL",
		IsActive:    true,
		CreatedBy:   1,
	}
	require.NoError(t, db.Create(&challenge).Error)

	require.NoError(t, db.Create(&models.ChallengeDomain{
		ChallengeID: challenge.ID, DomainID: domain.ID, XPPercent: 100,
	}).Error)

	for _, row := range []struct {
		rank   models.Rank
		target float64
	}{
		{models.RankF, 10}, {models.RankE, 20}, {models.RankD, 30},
	} {
		require.NoError(t, db.Create(&models.Grade{
			ChallengeID: challenge.ID,
			DivisionID:  division.ID,
			Rank:        row.rank,
			TargetValue: row.target,
		}).Error)
	}

	return &challenge, &domain
}

func createAthlete(t *testing.T, db *gorm.DB, username string, coach bool) *models.Athlete {
	t.Helper()
	athlete := models.Athlete{Username: username, IsCoach: coach}
	require.NoError(t, db.Create(&athlete).Error)
	return &athlete
}

func ledgerState(t *testing.T, db *gorm.DB, athleteID, domainID uint) (domainXP, totalXP int) {
	t.Helper()
	var athlete models.Athlete
	require.NoError(t, db.First(&athlete, athleteID).Error)

	var row models.AthleteDomainXP
	err := db.Where("athlete_id = ? AND domain_id = ?", athleteID, domainID).First(&row).Error
	if err != nil {
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
		return 0, athlete.TotalXP
	}
	return row.XP, athlete.TotalXP
}

func submissionCount(t *testing.T, db *gorm.DB, athleteID, challengeID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Submission{}).
		Where("athlete_id = ? AND challenge_id = ?", athleteID, challengeID).
		Count(&n).Error)
	return n
}

func TestSubmitReplacesRowAndReconcilesLedger(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSubmissionService(db, NewGymService(db), NewDivisionService(db), DefaultRankXP())
	challenge, domain := seedChallenge(t, db)
	athlete := createAthlete(t, db, "lena", false)
	activity := models.ActivityRecord{ActivityType: "Workout"}

	// First submit: machine-verified, 25 reps clears E, banks F+E = 75.
	sub, err := svc.Submit(athlete.ID, challenge.ID, SubmitInput{
		Details:     models.StravaProof{ActivityID: 100},
		ManualValue: floatPtr(25),
		Activity:    &activity,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, sub.Status)
	assert.Equal(t, 75, sub.XPAwarded)

	domainXP, totalXP := ledgerState(t, db, athlete.ID, domain.ID)
	assert.Equal(t, 75, domainXP)
	assert.Equal(t, 75, totalXP)

	// Re-submission replaces the row; the old award comes out, the new
	// absolute total goes in.
	sub, err = svc.Submit(athlete.ID, challenge.ID, SubmitInput{
		Details:     models.StravaProof{ActivityID: 101},
		ManualValue: floatPtr(30),
		Activity:    &activity,
	})
	require.NoError(t, err)
	assert.Equal(t, 150, sub.XPAwarded)

	assert.Equal(t, int64(1), submissionCount(t, db, athlete.ID, challenge.ID))
	domainXP, totalXP = ledgerState(t, db, athlete.ID, domain.ID)
	assert.Equal(t, 150, domainXP)
	assert.Equal(t, 150, totalXP)

	// Replacing an approved attempt with a pending manual one claws the
	// banked award back until a coach approves.
	sub, err = svc.Submit(athlete.ID, challenge.ID, SubmitInput{
		Details:     models.ManualProof{},
		ManualValue: floatPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionPending, sub.Status)

	assert.Equal(t, int64(1), submissionCount(t, db, athlete.ID, challenge.ID))
	domainXP, totalXP = ledgerState(t, db, athlete.ID, domain.ID)
	assert.Equal(t, 0, domainXP)
	assert.Equal(t, 0, totalXP)

	// Coach approval banks it again; rejection claws it back.
	coach := createAthlete(t, db, "coach", true)

	var current models.Submission
	require.NoError(t, db.Where("athlete_id = ? AND challenge_id = ?", athlete.ID, challenge.ID).
		First(&current).Error)

	reviewed, err := svc.Review(coach.ID, current.ID, models.SubmissionApproved, "clean reps")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, reviewed.Status)

	domainXP, totalXP = ledgerState(t, db, athlete.ID, domain.ID)
	assert.Equal(t, 150, domainXP)
	assert.Equal(t, 150, totalXP)

	_, err = svc.Review(coach.ID, current.ID, models.SubmissionRejected, "camera cut away")
	require.NoError(t, err)

	domainXP, totalXP = ledgerState(t, db, athlete.ID, domain.ID)
	assert.Equal(t, 0, domainXP)
	assert.Equal(t, 0, totalXP)
}

func TestDeleteClawsBackApprovedAward(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSubmissionService(db, NewGymService(db), NewDivisionService(db), DefaultRankXP())
	challenge, domain := seedChallenge(t, db)
	athlete := createAthlete(t, db, "marco", false)

	sub, err := svc.Submit(athlete.ID, challenge.ID, SubmitInput{
		Details:     models.StravaProof{ActivityID: 200},
		ManualValue: floatPtr(25),
		Activity:    &models.ActivityRecord{ActivityType: "Workout"},
	})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionApproved, sub.Status)

	require.NoError(t, svc.Delete(athlete.ID, sub.ID))

	assert.Equal(t, int64(0), submissionCount(t, db, athlete.ID, challenge.ID))
	domainXP, totalXP := ledgerState(t, db, athlete.ID, domain.ID)
	assert.Equal(t, 0, domainXP)
	assert.Equal(t, 0, totalXP)
}

func TestConcurrentFirstSubmissionsBankOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSubmissionService(db, NewGymService(db), NewDivisionService(db), DefaultRankXP())
	challenge, domain := seedChallenge(t, db)
	athlete := createAthlete(t, db, "dara", false)

	// Two racing first-time submissions. The row upsert alone would keep one
	// row but let both transactions bank XP; the per-(athlete, challenge)
	// advisory lock forces the second to see the first as its predecessor.
	const racers = 2
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(athlete.ID, challenge.ID, SubmitInput{
				Details:     models.StravaProof{ActivityID: int64(300 + i)},
				ManualValue: floatPtr(25),
				Activity:    &models.ActivityRecord{ActivityType: "Workout"},
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "submission %d", i)
	}

	assert.Equal(t, int64(1), submissionCount(t, db, athlete.ID, challenge.ID))
	domainXP, totalXP := ledgerState(t, db, athlete.ID, domain.ID)
	assert.Equal(t, 75, domainXP, "one award banked, not one per racer")
	assert.Equal(t, 75, totalXP)
}
