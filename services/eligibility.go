// services/eligibility.go - Challenge visibility/attemptability rules
package services

import (
	"fmt"

	"apexfit/models"
)

// EligibilityResult is a structured admit/reject decision. Reasons carries
// every failed restriction so the caller can display all of them.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// EligibilityInput bundles the athlete-side context a single eligibility
// check needs. All data is supplied per call; the check itself is pure.
type EligibilityInput struct {
	// Gym IDs the athlete is an active member of.
	ActiveGymIDs map[uint]bool
	// The athlete's matched division, nil when none matched.
	DivisionID *uint
	// Equipment inventory of the gym being filtered by; consulted only when
	// FilterByEquipment is set (catalog-listing context).
	GymInventory      map[uint]bool
	FilterByEquipment bool
}

// CheckEligibility combines gym membership, division restrictions and
// required-equipment availability into one admit/reject decision.
func CheckEligibility(c *models.Challenge, in EligibilityInput) EligibilityResult {
	var reasons []string

	if !c.IsGlobal() && !in.ActiveGymIDs[*c.GymID] {
		reasons = append(reasons, "challenge belongs to a gym you are not an active member of")
	}

	if len(c.AllowedDivisions) > 0 {
		allowed := false
		if in.DivisionID != nil {
			for _, d := range c.AllowedDivisions {
				if d.ID == *in.DivisionID {
					allowed = true
					break
				}
			}
		}
		if !allowed {
			reasons = append(reasons, "challenge is restricted to divisions you are not in")
		}
	}

	if in.FilterByEquipment {
		for _, eq := range c.RequiredEquipment {
			if !in.GymInventory[eq.ID] {
				reasons = append(reasons, fmt.Sprintf("required equipment %q is not available at this gym", eq.Name))
			}
		}
	}

	return EligibilityResult{Eligible: len(reasons) == 0, Reasons: reasons}
}
