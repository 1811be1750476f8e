// handlers/handlers.go - Shared handler state and error mapping
package handlers

import (
	"apexfit/database"
	"apexfit/services"

	"github.com/gofiber/fiber/v2"
)

var (
	divisionService   *services.DivisionService
	gymService        *services.GymService
	submissionService *services.SubmissionService
	catalogStore      *services.CatalogStore
	rankXPTable       services.RankXPTable
)

// InitHandlers wires the rule services against the shared database handle.
// Must run after database.InitDB.
func InitHandlers() {
	db := database.GetDB()
	rankXPTable = services.LoadRankXPTable()
	divisionService = services.NewDivisionService(db)
	gymService = services.NewGymService(db)
	submissionService = services.NewSubmissionService(db, gymService, divisionService, rankXPTable)
	catalogStore = services.NewCatalogStore(db)
}

// respondServiceError maps the service error taxonomy onto HTTP responses.
// NotFound (absolute) and NotEligible (contextual, with reasons) stay
// distinct; proof failures carry the full reason list.
func respondServiceError(c *fiber.Ctx, err error) error {
	if services.IsNotFound(err) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	if ne, ok := services.AsNotEligible(err); ok {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Not eligible for this challenge",
			"reasons": ne.Reasons,
		})
	}
	if pi, ok := services.AsProofInvalid(err); ok {
		return c.Status(422).JSON(fiber.Map{
			"success": false,
			"error":   "Proof validation failed",
			"reasons": pi.Reasons,
		})
	}
	if services.IsValidation(err) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal server error"})
}
