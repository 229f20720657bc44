package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/application/shift"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/infrastructure/memory"
	"github.com/jhoicas/Shifts-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Shifts-api/internal/interfaces/http"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "shifts-api-test"
	testExpMin    = 60
	testPassword  = "secret123"
)

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	issuer *auth.SessionIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	issuer := auth.NewSessionIssuer(auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	log := zerolog.Nop()

	authUC := auth.NewAuthUseCase(store.Users(), issuer, log, auth.WithBcryptCost(bcrypt.MinCost))
	shiftUC := shift.NewUseCase(store.TxRunner(), store.Shifts(), store.Users(), pdf.NewMarotoPDFGenerator("Shifts API"), log)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		ShiftUC:   shiftUC,
		Gate:      auth.NewGate(testJWTSecret),
		StartedAt: time.Now(),
	})
	return &testEnv{app: app, store: store, issuer: issuer}
}

// seedUser stores a user directly and returns it with a valid bearer header.
func (e *testEnv) seedUser(t *testing.T, name, email string, role entity.Role) (*entity.User, string) {
	t.Helper()
	ctx := context.Background()
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	seq, err := e.store.Users().NextEmployeeSeq(ctx)
	require.NoError(t, err)

	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeCode: auth.EmployeeCode(seq),
		Department:   entity.DefaultDepartment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.store.Users().Create(ctx, u))
	tok, err := e.issuer.Issue(u)
	require.NoError(t, err)
	return u, "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func shiftBody(userID, date, start, end string) map[string]string {
	return map[string]string{
		"userId":    userID,
		"date":      date,
		"startTime": date + "T" + start + ":00Z",
		"endTime":   date + "T" + end + ":00Z",
	}
}
