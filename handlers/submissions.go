// handlers/submissions.go - Proof submission, review and deletion
package handlers

import (
	"apexfit/middleware"
	"apexfit/models"
	"apexfit/services"

	"github.com/gofiber/fiber/v2"
)

type SubmitProofRequest struct {
	ProofType     string                 `json:"proof_type"`
	URL           string                 `json:"url,omitempty"`
	ActivityID    int64                  `json:"activity_id,omitempty"`
	AchievedValue *float64               `json:"achieved_value,omitempty"`
	Activity      *models.ActivityRecord `json:"activity,omitempty"`
}

type ReviewRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// SubmitProof grades a proof and creates or replaces the athlete's submission.
// POST /api/challenges/:id/submissions
func SubmitProof(c *fiber.Ctx) error {
	athleteID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	challengeID, err := c.ParamsInt("id")
	if err != nil || challengeID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid challenge id"})
	}

	var req SubmitProofRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	details, err := proofDetailsFromRequest(req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	submission, err := submissionService.Submit(athleteID, uint(challengeID), services.SubmitInput{
		Details:     details,
		ManualValue: req.AchievedValue,
		Activity:    req.Activity,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	response := fiber.Map{
		"success":    true,
		"submission": submission,
		"xp_awarded": submission.XPAwarded,
		"status":     submission.Status,
	}
	if submission.AchievedRank != nil {
		response["achieved_rank"] = *submission.AchievedRank
	}
	return c.JSON(response)
}

// proofDetailsFromRequest builds the proof variant from the flat request
// fields; the switch covers every accepted proof type.
func proofDetailsFromRequest(req SubmitProofRequest) (models.ProofDetails, error) {
	switch models.ProofType(req.ProofType) {
	case models.ProofVideo:
		return models.VideoProof{URL: req.URL}, nil
	case models.ProofImage:
		return models.ImageProof{URL: req.URL}, nil
	case models.ProofStrava:
		return models.StravaProof{ActivityID: req.ActivityID}, nil
	case models.ProofGarmin:
		return models.GarminProof{ActivityID: req.ActivityID}, nil
	case models.ProofManual:
		return models.ManualProof{}, nil
	}
	return nil, fiber.NewError(400, "Unknown proof type")
}

// GetMySubmissions lists the calling athlete's submissions, newest first.
// GET /api/submissions
func GetMySubmissions(c *fiber.Ctx) error {
	athleteID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	submissions, err := submissionService.ListByAthlete(athleteID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// DeleteSubmission removes the athlete's own submission; the only path that
// ever destroys one.
// DELETE /api/submissions/:id
func DeleteSubmission(c *fiber.Ctx) error {
	athleteID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	submissionID, err := c.ParamsInt("id")
	if err != nil || submissionID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	if err := submissionService.Delete(athleteID, uint(submissionID)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ReviewSubmission lets a coach move a submission through its lifecycle.
// POST /api/submissions/:id/review
func ReviewSubmission(c *fiber.Ctx) error {
	reviewerID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	submissionID, err := c.ParamsInt("id")
	if err != nil || submissionID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	submission, err := submissionService.Review(reviewerID, uint(submissionID), models.SubmissionStatus(req.Status), req.Note)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"submission": submission,
	})
}
