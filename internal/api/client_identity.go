package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/hospitalconnect/internal/observability"
)

const (
	clientCookieName    = "hc_client"
	clientCookiePurpose = "client-id"
	clientCookieTTL     = 180 * 24 * time.Hour
	contextClientIDKey  = "client_id"
)

// CookieSealer seals the anonymous client id stored in the browser.
type CookieSealer interface {
	Seal(purpose string, plaintext []byte) (string, error)
	Open(purpose string, sealed string) ([]byte, error)
}

// ClientIdentity resolves the anonymous client of the request from its
// sealed cookie, issuing a fresh id when the cookie is missing or does not
// open. Every intake, booking flow, draft and hand-off is scoped to it.
func (handler *Handler) ClientIdentity(c *fiber.Ctx) error {
	clientID, ok := handler.clientIDFromCookie(c)
	if !ok {
		clientID = uuid.NewString()
		if err := handler.setClientCookie(c, clientID); err != nil {
			return err
		}
	}

	c.Locals(contextClientIDKey, clientID)
	return c.Next()
}

func (handler *Handler) clientIDFromCookie(c *fiber.Ctx) (string, bool) {
	raw := strings.TrimSpace(c.Cookies(clientCookieName))
	if raw == "" {
		return "", false
	}
	opened, err := handler.sealer.Open(clientCookiePurpose, raw)
	if err != nil {
		return "", false
	}
	parsed, err := uuid.ParseBytes(opened)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func (handler *Handler) setClientCookie(c *fiber.Ctx, clientID string) error {
	sealed, err := handler.sealer.Seal(clientCookiePurpose, []byte(clientID))
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     clientCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.clock.Now().Add(clientCookieTTL),
	})
	return nil
}

func currentClientID(c *fiber.Ctx) string {
	clientID, _ := c.Locals(contextClientIDKey).(string)
	return clientID
}

// RequestContext carries the request id into the request's context so
// service-side logging can be correlated.
func RequestContext(c *fiber.Ctx) error {
	requestID, _ := c.Locals("requestid").(string)
	if requestID != "" {
		c.SetUserContext(observability.WithRequestID(c.UserContext(), requestID))
	}
	return c.Next()
}
