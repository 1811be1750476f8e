// handlers/leaderboard.go
package handlers

import (
	"apexfit/database"
	"apexfit/models"
	"apexfit/utils"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	AthleteID   uint   `json:"athlete_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	XP          int    `json:"xp"`
}

// GetLeaderboard returns athletes ranked by total XP, or by a single
// domain's XP when domain_id is given.
// GET /api/leaderboard?domain_id=2&limit=100&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 100), 1, 100)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}
	domainID := utils.ParseIntDefault(c.Query("domain_id"), 0)

	entries, total, err := fetchLeaderboard(uint(domainID), limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	response := fiber.Map{
		"success": true,
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	}
	if domainID > 0 {
		response["domain_id"] = domainID
	}
	return c.JSON(response)
}

// GetAthleteRank returns an athlete's position in the total-XP leaderboard.
// GET /api/leaderboard/athlete/:id
func GetAthleteRank(c *fiber.Ctx) error {
	athleteID, err := c.ParamsInt("id")
	if err != nil || athleteID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	db := database.GetDB()
	var athlete models.Athlete
	if err := db.First(&athlete, athleteID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Athlete not found"})
	}

	var rank int64
	db.Raw("SELECT COUNT(*) + 1 FROM athletes WHERE total_xp > ? OR (total_xp = ? AND id < ?)",
		athlete.TotalXP, athlete.TotalXP, athlete.ID).Scan(&rank)

	return c.JSON(fiber.Map{
		"success":    true,
		"athlete_id": athlete.ID,
		"username":   athlete.Username,
		"total_xp":   athlete.TotalXP,
		"rank":       rank,
	})
}

func fetchLeaderboard(domainID uint, limit, offset int) ([]LeaderboardEntry, int64, error) {
	db := database.GetDB()
	var entries []LeaderboardEntry
	var total int64

	if domainID > 0 {
		err := db.Raw(`
			SELECT a.id as athlete_id, a.username, a.display_name, a.avatar, adx.xp
			FROM athlete_domain_xp adx
			JOIN athletes a ON a.id = adx.athlete_id
			WHERE adx.domain_id = ?
			ORDER BY adx.xp DESC, a.id ASC
			LIMIT ? OFFSET ?
		`, domainID, limit, offset).Scan(&entries).Error
		if err != nil {
			return nil, 0, err
		}
		err = db.Model(&models.AthleteDomainXP{}).Where("domain_id = ?", domainID).Count(&total).Error
		return entries, total, err
	}

	err := db.Raw(`
		SELECT id as athlete_id, username, display_name, avatar, total_xp as xp
		FROM athletes
		ORDER BY total_xp DESC, id ASC
		LIMIT ? OFFSET ?
	`, limit, offset).Scan(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	err = db.Model(&models.Athlete{}).Count(&total).Error
	return entries, total, err
}
