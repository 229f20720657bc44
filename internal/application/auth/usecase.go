package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Shifts-api/internal/application/dto"
	"github.com/jhoicas/Shifts-api/internal/domain"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/internal/domain/repository"
	"github.com/jhoicas/Shifts-api/pkg/validator"
)

// Same message for unknown email and wrong password, so accounts cannot be enumerated.
const invalidCredentials = "Invalid credentials"

// AuthUseCase registration, login and the employee directory.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	issuer     *SessionIssuer
	cache      EmployeeCache
	log        zerolog.Logger
	bcryptCost int
	now        func() time.Time
	// Compared against when the email is unknown, so both failure paths cost one bcrypt check.
	dummyHash []byte
}

// Option customizes AuthUseCase.
type Option func(*AuthUseCase)

// WithBcryptCost overrides bcrypt.DefaultCost (tests use bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.bcryptCost = cost }
}

// WithEmployeeCache plugs a directory cache (Redis in production).
func WithEmployeeCache(c EmployeeCache) Option {
	return func(uc *AuthUseCase) {
		if c != nil {
			uc.cache = c
		}
	}
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, issuer *SessionIssuer, log zerolog.Logger, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{
		userRepo:   userRepo,
		issuer:     issuer,
		cache:      NopEmployeeCache{},
		log:        log,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.dummyHash, _ = HashPassword("not-a-real-password", uc.bcryptCost)
	return uc
}

// NormalizeEmail trims and lower-cases an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an employee account and opens a session for it.
// Fails with InvalidInput on bad fields and Conflict when the email is taken.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	in.Department = strings.TrimSpace(in.Department)
	if err := validator.Struct(&in); err != nil {
		return nil, invalidInput(err)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, uc.internal(err, "lookup email on signup")
	}
	if existing != nil {
		return nil, domain.NewError(domain.ErrConflict, "An account with this email already exists")
	}

	hash, err := HashPassword(in.Password, uc.bcryptCost)
	if err != nil {
		return nil, uc.internal(err, "hash password")
	}
	seq, err := uc.userRepo.NextEmployeeSeq(ctx)
	if err != nil {
		return nil, uc.internal(err, "reserve employee code")
	}

	department := in.Department
	if department == "" {
		department = entity.DefaultDepartment
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleEmployee,
		EmployeeCode: EmployeeCode(seq),
		Department:   department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewError(domain.ErrConflict, "An account with this email already exists")
		}
		return nil, uc.internal(err, "create user")
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidate employee cache")
	}
	uc.log.Info().Str("user_id", user.ID).Str("employee_code", user.EmployeeCode).Msg("account created")

	token, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, uc.internal(err, "issue session")
	}
	return &dto.AuthResponse{Message: "Account created", Token: token, User: *ToUserResponse(user)}, nil
}

// Login checks email/password and opens a session.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Email and password are required")
	}
	in.Email = NormalizeEmail(in.Email)
	if err := validator.Struct(&in); err != nil {
		return nil, invalidInput(err)
	}

	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, uc.internal(err, "lookup email on login")
	}
	if user == nil {
		_ = ComparePassword(uc.dummyHash, in.Password)
		return nil, domain.NewError(domain.ErrUnauthenticated, invalidCredentials)
	}
	if err := ComparePassword([]byte(user.PasswordHash), in.Password); err != nil {
		return nil, domain.NewError(domain.ErrUnauthenticated, invalidCredentials)
	}

	token, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, uc.internal(err, "issue session")
	}
	return &dto.AuthResponse{Message: "Login successful", Token: token, User: *ToUserResponse(user)}, nil
}

// ListEmployees returns id+name of every employee, sorted by name. Admin only.
func (uc *AuthUseCase) ListEmployees(ctx context.Context, caller *Claims) (*dto.EmployeeListResponse, error) {
	if err := AuthorizeRole(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}

	list, hit, err := uc.cache.Get(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("read employee cache")
	}
	if !hit {
		list, err = uc.userRepo.ListByRole(ctx, entity.RoleEmployee)
		if err != nil {
			return nil, uc.internal(err, "list employees")
		}
		if err := uc.cache.Set(ctx, list); err != nil {
			uc.log.Warn().Err(err).Msg("fill employee cache")
		}
	}

	out := &dto.EmployeeListResponse{Employees: make([]dto.EmployeeResponse, 0, len(list))}
	for _, e := range list {
		out.Employees = append(out.Employees, dto.EmployeeResponse{ID: e.ID, Name: e.Name})
	}
	return out, nil
}

// EmployeeCode formats the n-th employee code: EMP0001.
func EmployeeCode(n int64) string {
	return fmt.Sprintf("EMP%04d", n)
}

// ToUserResponse public projection of u.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		EmployeeCode: u.EmployeeCode,
		Department:   u.Department,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func invalidInput(err error) error {
	var fe *validator.FieldError
	if errors.As(err, &fe) {
		return domain.NewError(domain.ErrInvalidInput, fe.Message)
	}
	return domain.NewError(domain.ErrInvalidInput, "Invalid input")
}

// internal logs err with context and returns a generic Internal error.
func (uc *AuthUseCase) internal(err error, op string) error {
	uc.log.Error().Err(err).Str("op", op).Msg("auth failure")
	return domain.NewError(domain.ErrInternal, "Something went wrong")
}
