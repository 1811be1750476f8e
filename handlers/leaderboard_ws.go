// handlers/leaderboard_ws.go - Live leaderboard feed
package handlers

import (
	"log"
	"time"

	"apexfit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade gates the /ws routes to genuine upgrade requests.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LeaderboardFeed streams leaderboard snapshots to the client on an
// interval until the connection drops.
// GET /ws/leaderboard?domain_id=2&limit=20&interval=30
func LeaderboardFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		domainID := uint(utils.ParseIntDefault(conn.Query("domain_id"), 0))
		limit := utils.ClampInt(utils.ParseIntDefault(conn.Query("limit"), 20), 1, 100)
		interval := utils.ClampInt(utils.ParseIntDefault(conn.Query("interval"), 30), 5, 300)

		ticker := time.NewTicker(time.Duration(interval) * time.Second)
		defer ticker.Stop()

		for {
			entries, total, err := fetchLeaderboard(domainID, limit, 0)
			if err != nil {
				log.Printf("leaderboard feed query failed: %v", err)
				return
			}

			snapshot := fiber.Map{
				"entries": entries,
				"total":   total,
				"at":      time.Now().UTC().Unix(),
			}
			if domainID > 0 {
				snapshot["domain_id"] = domainID
			}

			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
			<-ticker.C
		}
	})
}
