// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware extracts the athlete identity from a Bearer token issued by
// the external auth service. Login/registration flows live outside this
// service; the core only consumes the resulting tokens.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	tokenString := parts[1]
	jwtSecret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{"error": "Token expired"})
	}

	c.Locals("athleteId", claims["athlete_id"])
	c.Locals("username", claims["username"])
	c.Locals("isCoach", claims["is_coach"])

	return c.Next()
}

// GetAthleteID returns the authenticated athlete's ID from the request context
func GetAthleteID(c *fiber.Ctx) (uint, error) {
	athleteID := c.Locals("athleteId")
	if athleteID == nil {
		return 0, fiber.NewError(401, "Athlete not authenticated")
	}

	if id, ok := athleteID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := athleteID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid athlete ID format")
}

// IsCoach reports whether the token carries the platform coach flag
func IsCoach(c *fiber.Ctx) bool {
	isCoach := c.Locals("isCoach")
	if isCoach == nil {
		return false
	}

	if coach, ok := isCoach.(bool); ok {
		return coach
	}

	return false
}
