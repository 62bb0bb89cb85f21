package httpapi

import (
	"strings"
	"time"

	"github.com/arshan09/AuthenticationApp/internal/common"
	"github.com/arshan09/AuthenticationApp/internal/logging"
	"github.com/arshan09/AuthenticationApp/internal/server/auth"
	"github.com/arshan09/AuthenticationApp/internal/server/metrics"
	"github.com/gofiber/fiber/v2"
)

// RotationWindow is how close to expiry an access token must be for the
// gate to hand out a replacement.
const RotationWindow = 300 * time.Second

const identityKey = "identity"

// IdentityFrom returns the identity the gate stored for this request.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(common.AuthorizationHeaderName)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// AccessGate verifies an optional bearer access token. Requests without a
// token pass through unauthenticated unless requireToken is set. A token
// within RotationWindow of expiry is replaced and the new one is returned in
// the Authorization response header.
func AccessGate(tokens *auth.TokenService, l logging.Logger, m *metrics.Metrics, requireToken bool) fiber.Handler {
	log := l.With("module", "access_gate")
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			if requireToken {
				return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: msgMissingToken})
			}
			return c.Next()
		}

		claims, err := tokens.Verify(auth.Access, raw)
		if err != nil {
			log.Debug(c.UserContext(), "access token rejected", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: msgAccessInvalid})
		}

		if claims.ExpiresAt.Time.Sub(tokens.Now()) <= RotationWindow {
			fresh, err := tokens.Mint(auth.Access, claims.Identity())
			if err != nil {
				return err
			}
			c.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+fresh)
			m.TokenRotated()
		}

		c.Locals(identityKey, claims.Identity())
		return c.Next()
	}
}

// RefreshGate verifies an optional bearer refresh token and stores its
// identity. It never rotates.
func RefreshGate(tokens *auth.TokenService, l logging.Logger) fiber.Handler {
	log := l.With("module", "refresh_gate")
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.Next()
		}

		claims, err := tokens.Verify(auth.Refresh, raw)
		if err != nil {
			log.Debug(c.UserContext(), "refresh token rejected", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Error: msgRefreshInvalid})
		}

		c.Locals(identityKey, claims.Identity())
		return c.Next()
	}
}
