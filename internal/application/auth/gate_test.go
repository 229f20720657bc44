package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/pkg/jwt"
)

const secret = "gate-test-secret"

func TestGate_Authenticate(t *testing.T) {
	gate := auth.NewGate(secret)
	tok, err := jwt.Generate(secret, "u1", "u1@example.com", "employee", "test", 60)
	require.NoError(t, err)

	c, err := gate.Authenticate("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, &auth.Claims{UserID: "u1", Email: "u1@example.com", Role: entity.RoleEmployee}, c)
	assert.False(t, c.IsAdmin())

	c, err = gate.Authenticate("bearer " + tok)
	require.NoError(t, err, "scheme is case insensitive")
	assert.Equal(t, "u1", c.UserID)
}

func TestGate_Failures(t *testing.T) {
	gate := auth.NewGate(secret)
	expired, err := jwt.GenerateAt(time.Now().Add(-2*time.Hour), secret, "u1", "u1@example.com", "admin", "test", 60)
	require.NoError(t, err)
	noUser, err := jwt.Generate(secret, "", "u1@example.com", "admin", "test", 60)
	require.NoError(t, err)
	unknownRole, err := jwt.Generate(secret, "u1", "u1@example.com", "superuser", "test", 60)
	require.NoError(t, err)

	cases := []struct {
		header string
		kind   error
		msg    string
	}{
		{"", domain.ErrUnauthenticated, "Authentication required"},
		{"Token abc", domain.ErrUnauthenticated, "Authentication required"},
		{"Bearer", domain.ErrUnauthenticated, "Authentication required"},
		{"Bearer undefined", domain.ErrUnauthenticated, "Invalid token format"},
		{"Bearer null", domain.ErrUnauthenticated, "Invalid token format"},
		{"Bearer " + expired, domain.ErrUnauthenticated, "Session expired, please log in again"},
		{"Bearer abc.def.ghi", domain.ErrUnauthenticated, "Invalid token"},
		{"Bearer " + noUser, domain.ErrMalformed, "Malformed token"},
		{"Bearer " + unknownRole, domain.ErrMalformed, "Malformed token"},
	}
	for _, tc := range cases {
		_, err := gate.Authenticate(tc.header)
		require.Error(t, err, tc.header)
		assert.ErrorIs(t, err, tc.kind, tc.header)
		assert.Equal(t, tc.msg, err.Error(), tc.header)
	}
}

func TestAuthorizeRole(t *testing.T) {
	admin := &auth.Claims{UserID: "a", Role: entity.RoleAdmin}
	employee := &auth.Claims{UserID: "e", Role: entity.RoleEmployee}

	assert.NoError(t, auth.AuthorizeRole(admin, entity.RoleAdmin))
	err := auth.AuthorizeRole(employee, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Admin privileges required", err.Error())
	assert.ErrorIs(t, auth.AuthorizeRole(nil, entity.RoleAdmin), domain.ErrForbidden)
}

func TestAuthorizeOwnerOrAdmin(t *testing.T) {
	admin := &auth.Claims{UserID: "a", Role: entity.RoleAdmin}
	owner := &auth.Claims{UserID: "o", Role: entity.RoleEmployee}
	other := &auth.Claims{UserID: "x", Role: entity.RoleEmployee}

	assert.NoError(t, auth.AuthorizeOwnerOrAdmin(owner, "o"))
	assert.NoError(t, auth.AuthorizeOwnerOrAdmin(admin, "o"))
	assert.ErrorIs(t, auth.AuthorizeOwnerOrAdmin(other, "o"), domain.ErrForbidden)
	assert.ErrorIs(t, auth.AuthorizeOwnerOrAdmin(nil, "o"), domain.ErrForbidden)
}
