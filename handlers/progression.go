// handlers/progression.go
package handlers

import (
	"apexfit/database"
	"apexfit/middleware"
	"apexfit/models"

	"github.com/gofiber/fiber/v2"
)

// GetProgression returns the athlete's XP totals, per-domain split and
// submission counts.
// GET /api/progression
func GetProgression(c *fiber.Ctx) error {
	athleteID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var athlete models.Athlete
	if err := db.Preload("DomainXP.Domain").First(&athlete, athleteID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Athlete not found"})
	}

	domains := make([]fiber.Map, 0, len(athlete.DomainXP))
	for _, row := range athlete.DomainXP {
		entry := fiber.Map{"domain_id": row.DomainID, "xp": row.XP}
		if row.Domain != nil {
			entry["name"] = row.Domain.Name
			entry["icon"] = row.Domain.Icon
			entry["color"] = row.Domain.Color
		}
		domains = append(domains, entry)
	}

	var counts []struct {
		Status models.SubmissionStatus
		Total  int64
	}
	db.Model(&models.Submission{}).
		Select("status, COUNT(*) as total").
		Where("athlete_id = ?", athleteID).
		Group("status").
		Scan(&counts)

	byStatus := fiber.Map{}
	var attempted int64
	for _, row := range counts {
		byStatus[string(row.Status)] = row.Total
		attempted += row.Total
	}

	return c.JSON(fiber.Map{
		"success":               true,
		"total_xp":              athlete.TotalXP,
		"domains":               domains,
		"challenges_attempted":  attempted,
		"submissions_by_status": byStatus,
	})
}

// GetRankXPTable exposes the configured per-rank XP values so clients can
// render projected awards.
// GET /api/progression/xp-table
func GetRankXPTable(c *fiber.Ctx) error {
	cumulative := fiber.Map{}
	perRank := fiber.Map{}
	for _, r := range models.RankOrder {
		perRank[string(r)] = rankXPTable[r]
		cumulative[string(r)] = rankXPTable.CumulativeXP(r)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"ranks":      models.RankOrder,
		"xp":         perRank,
		"cumulative": cumulative,
	})
}
