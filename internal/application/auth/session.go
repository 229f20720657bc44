package auth

import (
	"time"

	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionIssuer turns a verified identity into a signed, time-limited token.
type SessionIssuer struct {
	cfg JWTConfig
	now func() time.Time
}

// NewSessionIssuer builds the issuer.
func NewSessionIssuer(cfg JWTConfig) *SessionIssuer {
	return &SessionIssuer{cfg: cfg, now: time.Now}
}

// Issue signs a session for u.
func (s *SessionIssuer) Issue(u *entity.User) (string, error) {
	return jwt.GenerateAt(s.now(), s.cfg.Secret, u.ID, u.Email, string(u.Role), s.cfg.Issuer, s.cfg.ExpMinutes)
}
