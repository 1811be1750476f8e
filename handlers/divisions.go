// handlers/divisions.go
package handlers

import (
	"apexfit/database"
	"apexfit/middleware"
	"apexfit/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyDivision resolves the calling athlete's competitive division.
// A null division is a normal outcome (global targets apply), not an error.
// GET /api/divisions/me
func GetMyDivision(c *fiber.Ctx) error {
	athleteID, err := middleware.GetAthleteID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
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

	return c.JSON(fiber.Map{
		"success":  true,
		"division": division,
	})
}

// GetDivisions lists the active division rules in priority order.
// GET /api/divisions
func GetDivisions(c *fiber.Ctx) error {
	divisions, err := divisionService.ActiveDivisions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch divisions"})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"divisions": divisions,
	})
}
