package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"apexfit/database"
	"apexfit/models"

	"github.com/joho/godotenv"
)

// Seed file shape: divisions, domains, equipment and challenges with their
// grade tables, imported in dependency order.
type SeedFile struct {
	Divisions  []models.Division `json:"divisions"`
	Domains    []models.Domain   `json:"domains"`
	Equipment  []models.Equipment `json:"equipment"`
	Challenges []SeedChallenge   `json:"challenges"`
}

type SeedChallenge struct {
	models.Challenge
	GradeRows []models.Grade `json:"grade_rows"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	path := "./seed/catalog.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read seed file:", err)
	}

	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Failed to parse seed file:", err)
	}

	database.InitDB()
	db := database.GetDB()

	fmt.Printf("Importing %d divisions, %d domains, %d equipment, %d challenges\n",
		len(seed.Divisions), len(seed.Domains), len(seed.Equipment), len(seed.Challenges))

	for i := range seed.Divisions {
		if err := db.Save(&seed.Divisions[i]).Error; err != nil {
			log.Printf("division %q: %v", seed.Divisions[i].Name, err)
		}
	}
	for i := range seed.Domains {
		if err := db.Save(&seed.Domains[i]).Error; err != nil {
			log.Printf("domain %q: %v", seed.Domains[i].Name, err)
		}
	}
	for i := range seed.Equipment {
		if err := db.Save(&seed.Equipment[i]).Error; err != nil {
			log.Printf("equipment %q: %v", seed.Equipment[i].Name, err)
		}
	}

	imported := 0
	for i := range seed.Challenges {
		sc := &seed.Challenges[i]
		if err := db.Save(&sc.Challenge).Error; err != nil {
			log.Printf("challenge %q: %v", sc.Name, err)
			continue
		}
		for j := range sc.GradeRows {
			sc.GradeRows[j].ChallengeID = sc.Challenge.ID
			if err := db.Save(&sc.GradeRows[j]).Error; err != nil {
				log.Printf("challenge %q grade row: %v", sc.Name, err)
			}
		}
		imported++
		fmt.Printf("Imported: %s (%d grade rows)\n", sc.Name, len(sc.GradeRows))
	}

	fmt.Printf("\n✓ Import completed: %d/%d challenges\n", imported, len(seed.Challenges))
}
