package middleware

import (
	"github.com/gofiber/fiber/v2"

	"legalapi/internal/auth"
	"legalapi/internal/model"
)

const (
	// AccountUserHeader carries the authenticated user id set by the edge proxy.
	AccountUserHeader = "X-User-ID"
	// AccountCapabilitiesHeader carries the user's comma-separated capabilities.
	AccountCapabilitiesHeader = "X-User-Capabilities"
	// AccountLocalKey is the key used to store the account in Fiber's context locals.
	AccountLocalKey = "account"
)

// Account resolves the acting account from the trusted identity headers and
// stores it in context locals. Requests without the headers act as anonymous.
func Account() fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc := auth.FromHeaders(c.Get(AccountUserHeader), c.Get(AccountCapabilitiesHeader))
		c.Locals(AccountLocalKey, acc)
		return c.Next()
	}
}

// AccountFromCtx returns the account stored by Account, anonymous if absent.
func AccountFromCtx(c *fiber.Ctx) model.Account {
	if v := c.Locals(AccountLocalKey); v != nil {
		if acc, ok := v.(model.Account); ok {
			return acc
		}
	}
	return auth.Anonymous()
}
