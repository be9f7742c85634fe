package auth

import (
	"crypto/subtle"

	"github.com/khoahotran/me-api/pkg/apperror"
)

// HeaderAPIKey carries the shared admin secret.
const HeaderAPIKey = "X-API-Key"

type AdminGate struct {
	secret []byte
}

func NewAdminGate(secret string) *AdminGate {
	return &AdminGate{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured. Without one every admin call is rejected.
func (g *AdminGate) Enabled() bool {
	return len(g.secret) > 0
}

func (g *AdminGate) Authorize(providedKey string) error {
	if !g.Enabled() {
		return apperror.NewUnauthorized("admin API key is not configured", nil)
	}
	if providedKey == "" {
		return apperror.NewUnauthorized("missing "+HeaderAPIKey+" header", nil)
	}
	if subtle.ConstantTimeCompare([]byte(providedKey), g.secret) != 1 {
		return apperror.NewUnauthorized("invalid admin API key", nil)
	}
	return nil
}
