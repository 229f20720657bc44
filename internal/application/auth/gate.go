package auth

import (
	"errors"
	"strings"

	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/pkg/jwt"
)

// Claims is the identity attached to an authenticated request.
type Claims struct {
	UserID string
	Email  string
	Role   entity.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == entity.RoleAdmin
}

// Gate maps a bearer token to Claims. Sessions are stateless: there is no revocation list,
// expiry is the only bound on a token's lifetime.
type Gate struct {
	secret string
}

// NewGate builds the gate for tokens signed with secret.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Authenticate validates an Authorization header value ("Bearer <token>").
func (g *Gate) Authenticate(header string) (*Claims, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return nil, domain.NewError(domain.ErrUnauthenticated, "Authentication required")
	}
	return g.AuthenticateToken(strings.TrimSpace(token))
}

// AuthenticateToken validates a raw token.
func (g *Gate) AuthenticateToken(token string) (*Claims, error) {
	// Clients that lost their token tend to send these literals.
	if token == "" || token == "undefined" || token == "null" {
		return nil, domain.NewError(domain.ErrUnauthenticated, "Invalid token format")
	}
	c, err := jwt.Parse(g.secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.NewError(domain.ErrUnauthenticated, "Session expired, please log in again")
		}
		return nil, domain.NewError(domain.ErrUnauthenticated, "Invalid token")
	}
	role := entity.Role(c.Role)
	if c.UserID == "" || c.Email == "" || !role.Valid() {
		return nil, domain.NewError(domain.ErrMalformed, "Malformed token")
	}
	return &Claims{UserID: c.UserID, Email: c.Email, Role: role}, nil
}

// AuthorizeRole fails with Forbidden unless the caller holds role.
func AuthorizeRole(c *Claims, role entity.Role) error {
	if c == nil || c.Role != role {
		if role == entity.RoleAdmin {
			return domain.NewError(domain.ErrForbidden, "Admin privileges required")
		}
		return domain.NewError(domain.ErrForbidden, "Insufficient privileges")
	}
	return nil
}

// AuthorizeOwnerOrAdmin passes when the caller owns the resource or is an admin.
func AuthorizeOwnerOrAdmin(c *Claims, ownerID string) error {
	if c != nil && (c.UserID == ownerID || c.Role == entity.RoleAdmin) {
		return nil
	}
	return domain.NewError(domain.ErrForbidden, "Not authorized to access this resource")
}
