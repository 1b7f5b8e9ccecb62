package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "webhook-secret"

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookApp() *fiber.App {
	app := fiber.New()
	app.Post("/hook", WebhookVerification(testSecret), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestWebhookVerificationAcceptsValidSignature(t *testing.T) {
	app := webhookApp()
	body := []byte(`{"id":1001}`)

	req := httptest.NewRequest(http.MethodPost, "/hook", bytes.NewReader(body))
	req.Header.Set("X-Platform-Hmac-Sha256", sign(testSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookVerificationRejectsMissingSignature(t *testing.T) {
	app := webhookApp()

	req := httptest.NewRequest(http.MethodPost, "/hook", bytes.NewReader([]byte(`{}`)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookVerificationRejectsWrongSignature(t *testing.T) {
	app := webhookApp()
	body := []byte(`{"id":1001}`)

	req := httptest.NewRequest(http.MethodPost, "/hook", bytes.NewReader(body))
	req.Header.Set("X-Platform-Hmac-Sha256", sign("other-secret", body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookVerificationRejectsTamperedBody(t *testing.T) {
	app := webhookApp()
	body := []byte(`{"id":1001}`)

	req := httptest.NewRequest(http.MethodPost, "/hook", bytes.NewReader([]byte(`{"id":2002}`)))
	req.Header.Set("X-Platform-Hmac-Sha256", sign(testSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
