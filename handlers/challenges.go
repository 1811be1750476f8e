// handlers/challenges.go - Challenge catalog and detail
package handlers

import (
	"strings"

	"apexfit/database"
	"apexfit/middleware"
	"apexfit/models"
	"apexfit/services"
	"apexfit/utils"

	"github.com/gofiber/fiber/v2"
)

// GetChallenges serves one page of the composed challenge catalog.
// GET /api/challenges?page=1&page_size=12&disciplines=1,2&gym_id=3&equipment_filter=true&search=pull
func GetChallenges(c *fiber.Ctx) error {
	athleteID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var athlete models.Athlete
	if err := db.Preload("Disciplines").First(&athlete, athleteID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Athlete not found"})
	}

	division, err := divisionService.MatchAthlete(&athlete)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve division"})
	}

	query := services.CatalogQuery{
		AthleteID:  athleteID,
		SearchText: strings.TrimSpace(c.Query("search")),
	}
	if division != nil {
		query.DivisionID = &division.ID
	}

	// Explicit discipline filter beats the athlete's own disciplines.
	if raw := c.Query("disciplines"); raw != "" {
		query.DisciplineIDs = utils.ParseUintList(strings.Split(raw, ","))
	} else {
		for _, d := range athlete.Disciplines {
			query.DisciplineIDs = append(query.DisciplineIDs, d.ID)
		}
	}

	if raw := c.Query("gym_id"); raw != "" {
		gymID := uint(utils.ParseIntDefault(raw, 0))
		if gymID > 0 {
			if _, err := gymService.GetGymByID(gymID); err != nil {
				return respondServiceError(c, err)
			}
			query.GymFilterID = &gymID
			query.EquipmentFilter = c.QueryBool("equipment_filter", false)
		}
	}

	page := utils.ParseIntDefault(c.Query("page"), 1)
	pageSize := utils.ClampInt(utils.ParseIntDefault(c.Query("page_size"), services.DefaultPageSize), 1, 50)

	result, err := services.ComposeCatalog(page, pageSize, catalogStore.Partitions(query)...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compose catalog"})
	}

	items := make([]fiber.Map, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, challengeSummary(&result.Items[i]))
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"items":       items,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
		"total_count": result.TotalCount,
	})
}

// GetChallenge serves the full challenge detail: grade targets for the
// athlete's division, eligibility (with every failed restriction), and the
// athlete's existing submission. Missing or inactive challenges are a hard
// 404; an ineligible athlete still sees the detail plus the reasons.
func GetChallenge(c *fiber.Ctx) error {
	athleteID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	challengeID, err := c.ParamsInt("id")
	if err != nil || challengeID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid challenge id"})
	}

	challenge, err := submissionService.GetActiveChallenge(uint(challengeID))
	if err != nil {
		return respondServiceError(c, err)
	}

	db := database.GetDB()
	var athlete models.Athlete
	if err := db.First(&athlete, athleteID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Athlete not found"})
	}

	division, err := divisionService.MatchAthlete(&athlete)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve division"})
	}
	var divisionID *uint
	if division != nil {
		divisionID = &division.ID
	}

	activeGyms, err := gymService.ActiveGymIDs(athleteID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load memberships"})
	}
	eligibility := services.CheckEligibility(challenge, services.EligibilityInput{
		ActiveGymIDs: activeGyms,
		DivisionID:   divisionID,
	})

	grades := services.GradesForDivision(challenge.Grades, divisionID)
	gradeRows := make([]fiber.Map, 0, len(grades))
	for _, g := range grades {
		row := fiber.Map{"rank": g.Rank, "target_value": g.TargetValue}
		if g.TargetWeight != nil {
			row["target_weight"] = *g.TargetWeight
		}
		gradeRows = append(gradeRows, row)
	}

	var submission *models.Submission
	var existing models.Submission
	if err := db.Where("athlete_id = ? AND challenge_id = ?", athleteID, challenge.ID).
		First(&existing).Error; err == nil {
		submission = &existing
	}

	response := fiber.Map{
		"success":     true,
		"challenge":   challengeSummary(challenge),
		"description": challenge.Description,
		"proof_types": challenge.AcceptedProofTypes(),
		"grades":      gradeRows,
		"eligibility": eligibility,
		"constraints": challenge.Constraints,
	}
	if division != nil {
		response["division"] = division
	}
	if submission != nil {
		response["submission"] = submission
	}

	return c.JSON(response)
}

func challengeSummary(ch *models.Challenge) fiber.Map {
	domains := make([]fiber.Map, 0, len(ch.Domains))
	for _, d := range ch.Domains {
		entry := fiber.Map{"domain_id": d.DomainID, "xp_percent": d.XPPercent}
		if d.Domain != nil {
			entry["name"] = d.Domain.Name
		}
		domains = append(domains, entry)
	}

	summary := fiber.Map{
		"id":           ch.ID,
		"name":         ch.Name,
		"grading_type": ch.GradingType,
		"unit":         ch.Unit,
		"domains":      domains,
	}
	if ch.GradingType == models.GradingTime {
		summary["time_format"] = ch.TimeFormat
	}
	if ch.Gym != nil {
		summary["gym"] = fiber.Map{"id": ch.Gym.ID, "name": ch.Gym.Name}
	}
	return summary
}
