package main

import (
	"encoding/json"
	"fmt"
	"os"

	"apexfit/models"
	"apexfit/services"
)

// Lints a catalog seed file before import: structural challenge rules,
// duplicate grade targets within a division, and non-ascending target tables.
func main() {
	path := "./seed/catalog.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("error: cannot read seed file:", err)
		os.Exit(1)
	}

	var seed struct {
		Challenges []struct {
			models.Challenge
			GradeRows []models.Grade `json:"grade_rows"`
		} `json:"challenges"`
	}
	if err := json.Unmarshal(data, &seed); err != nil {
		fmt.Println("error: cannot parse seed file:", err)
		os.Exit(1)
	}

	exitCode := 0
	for i := range seed.Challenges {
		sc := &seed.Challenges[i]
		bad := 0

		if err := services.ValidateChallengeRules(&sc.Challenge); err != nil {
			fmt.Printf("%s: %v\n", sc.Name, err)
			bad++
		}

		// Duplicate targets for the same division are a data-entry mistake
		// even though the resolver tolerates them.
		seen := map[string]models.Rank{}
		for _, g := range sc.GradeRows {
			key := fmt.Sprintf("%d/%v", g.DivisionID, g.TargetValue)
			if prev, ok := seen[key]; ok {
				fmt.Printf("%s: division %d has duplicate target %v (ranks %s and %s)\n",
					sc.Name, g.DivisionID, g.TargetValue, prev, g.Rank)
				bad++
			}
			seen[key] = g.Rank
		}

		// Targets must rise with rank (fall for TIME, where lower is better).
		byDivision := map[uint][]models.Grade{}
		for _, g := range sc.GradeRows {
			byDivision[g.DivisionID] = append(byDivision[g.DivisionID], g)
		}
		for divID, rows := range byDivision {
			for _, a := range rows {
				for _, b := range rows {
					if !b.Rank.Above(a.Rank) {
						continue
					}
					ascending := b.TargetValue > a.TargetValue
					if sc.GradingType == models.GradingTime {
						ascending = b.TargetValue < a.TargetValue
					}
					if !ascending {
						fmt.Printf("%s: division %d rank %s target %v does not improve on rank %s target %v\n",
							sc.Name, divID, b.Rank, b.TargetValue, a.Rank, a.TargetValue)
						bad++
					}
				}
			}
		}

		if bad == 0 {
			fmt.Printf("%s: OK\n", sc.Name)
		} else {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
