package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/database"
	"github.com/marta/unhabits-api/internal/models"
)

type Claims struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	SessionID uuid.UUID `json:"sessionId"`
	jwt.RegisteredClaims
}

const sessionTTL = 7 * 24 * time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-in-production"
	}
	return []byte(secret)
}

// IssueSession creates a session row for the user and returns a signed token
// bound to it. Revoking the session invalidates the token before its expiry.
func IssueSession(user *models.User, ipAddress, userAgent string) (string, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(sessionTTL),
		UserID:    user.ID,
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}

	if err := database.DB.Create(&session).Error; err != nil {
		return "", err
	}

	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// RevokeSession deletes the session row so the token stops validating.
func RevokeSession(sessionID uuid.UUID) error {
	return database.DB.Delete(&models.Session{}, sessionID).Error
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization format",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			return jwtSecret(), nil
		})

		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		// The token must still have a live session row behind it
		var session models.Session
		if err := database.DB.First(&session, claims.SessionID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session revoked",
			})
		}
		if session.ExpiresAt.Before(time.Now()) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired",
			})
		}

		c.Locals("userId", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("sessionId", claims.SessionID)

		return c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetSessionID extracts session ID from context
func GetSessionID(c *fiber.Ctx) uuid.UUID {
	sessionID, ok := c.Locals("sessionId").(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return sessionID
}
