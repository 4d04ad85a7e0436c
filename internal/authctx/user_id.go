// authctx/user_id.go
package authctx

import (
	"github.com/gofiber/fiber/v2"
)

// Viewer is the authenticated identity the JWT middleware resolved for this
// request. Username/Email may be empty for tokens minted before those claims
// were added.
type Viewer struct {
	UID      string
	Username string
	Email    string
}

// UserIDFrom returns the viewer uid set by the middleware, if any.
func UserIDFrom(c *fiber.Ctx) (string, bool) {
	if v := c.Locals("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// ViewerFrom returns the full identity.
func ViewerFrom(c *fiber.Ctx) (Viewer, bool) {
	uid, ok := UserIDFrom(c)
	if !ok {
		return Viewer{}, false
	}
	v := Viewer{UID: uid}
	if s, ok := c.Locals("username").(string); ok {
		v.Username = s
	}
	if s, ok := c.Locals("email").(string); ok {
		v.Email = s
	}
	return v, true
}

// DisplayName returns the name to stamp on authored content. Falls back to
// "Anonymous" so point accounting can always create a user record.
func (v Viewer) DisplayName() string {
	if v.Username != "" {
		return v.Username
	}
	return "Anonymous"
}
