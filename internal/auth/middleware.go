package auth

import (
	"github.com/gofiber/fiber/v2"
)

const identityKey = "asserted_identity"

// IdentityMiddleware extracts the caller identity asserted by the boundary
// layer. The identity is an email carried in the Email request header and
// is trusted as-is: this service does not authenticate the caller, and the
// token it issues is verified by downstream collaborators only. The
// middleware never rejects; enforcement of a missing identity belongs to
// the service so the contract holds regardless of transport.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(identityKey, c.Get("Email"))
		return c.Next()
	}
}

// IdentityFromContext returns the asserted identity email, which may be
// empty when the caller supplied none.
func IdentityFromContext(c *fiber.Ctx) string {
	if email, ok := c.Locals(identityKey).(string); ok {
		return email
	}
	return ""
}
