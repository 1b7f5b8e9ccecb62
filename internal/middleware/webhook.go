package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
)

// WebhookVerification checks the platform's HMAC-SHA256 signature over the
// raw request body. Events with a missing or wrong signature never reach
// the pipeline.
func WebhookVerification(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("X-Platform-Hmac-Sha256")
		if signature == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing webhook signature")
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(c.Body())
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(signature)) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid webhook signature")
		}

		return c.Next()
	}
}
