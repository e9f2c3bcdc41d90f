package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"pressroom/internal/auth"
	"pressroom/internal/cache"
	"pressroom/internal/logging"
	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// passwordFitsHash rejects passwords bcrypt would refuse to hash. Multi-byte
// runes count by their encoded length.
var passwordFitsHash = validation.By(func(value any) error {
	v, _ := validation.Indirect(value)
	s, _ := v.(string)
	if len(s) > maxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
})

// RegisterInput is a new account request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 100)),
		validation.Field(&in.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email format")),
		validation.Field(&in.Password, validation.Required.Error("password is required"), validation.RuneLength(6, 0).Error("password must be at least 6 characters"), passwordFitsHash),
	)
}

// LoginInput is a credential check request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required.Error("email is required")),
		validation.Field(&in.Password, validation.Required.Error("password is required")),
	)
}

// UpdateProfileInput is a partial profile update; nil fields are unchanged.
type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (in UpdateProfileInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 100)),
		validation.Field(&in.Email, validation.NilOrNotEmpty, is.EmailFormat.Error("invalid email format")),
		validation.Field(&in.Password, validation.NilOrNotEmpty, validation.RuneLength(6, 0).Error("password must be at least 6 characters"), passwordFitsHash),
	)
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UserService covers account registration, login and profile management.
type UserService interface {
	Register(ctx context.Context, in RegisterInput, role model.Role) (*AuthResult, error)
	// Login checks credentials. requireAdmin rejects valid non-admin accounts with ErrForbidden.
	Login(ctx context.Context, in LoginInput, requireAdmin bool) (*AuthResult, error)
	Me(ctx context.Context, caller auth.Identity) (*model.User, error)
	UpdateProfile(ctx context.Context, caller auth.Identity, in UpdateProfileInput) (*model.User, error)
	List(ctx context.Context, p Page) (*ListResult[model.User], error)
	Get(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo       repository.UserRepository
	hasher     PasswordHasher
	tokens     TokenIssuer
	limiter    cache.LoginLimiter
	allowAdmin bool
}

// NewUserService constructs a UserService. allowAdminRegistration gates
// self-service admin sign-up.
func NewUserService(repo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, limiter cache.LoginLimiter, allowAdminRegistration bool) UserService {
	if limiter == nil {
		limiter = cache.NoopLoginLimiter{}
	}
	return &userService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, allowAdmin: allowAdminRegistration}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func emailTaken(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return NewValidationError("email", "email is already registered")
	}
	return err
}

func (s *userService) Register(ctx context.Context, in RegisterInput, role model.Role) (*AuthResult, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if role == model.RoleAdmin && !s.allowAdmin {
		return nil, fmt.Errorf("%w: admin registration is disabled", ErrForbidden)
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := asValidation(in.Validate()); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u, err := s.repo.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, emailTaken(err)
	}

	logging.Component("users").Info().
		Str("event", "user_registered").
		Str("user_id", u.ID).
		Str("role", string(u.Role)).
		Msg("account created")

	return s.authResult(u)
}

func (s *userService) authResult(u *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(auth.Identity{ID: u.ID, Role: u.Role, Name: u.Name})
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *userService) Login(ctx context.Context, in LoginInput, requireAdmin bool) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := asValidation(in.Validate()); err != nil {
		return nil, err
	}
	logger := logging.Component("users")

	ok, err := s.limiter.Allowed(ctx, in.Email)
	if err != nil {
		// Throttling is best effort; a broken counter store must not lock everyone out.
		logger.Warn().Err(err).Msg("login limiter unavailable")
	} else if !ok {
		return nil, ErrTooManyAttempts
	}

	u, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.fail(ctx, in.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, in.Password) {
		s.fail(ctx, in.Email)
		return nil, ErrInvalidCredentials
	}
	if requireAdmin && u.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}

	if err := s.limiter.Reset(ctx, in.Email); err != nil {
		logger.Warn().Err(err).Msg("login limiter reset failed")
	}
	return s.authResult(u)
}

func (s *userService) fail(ctx context.Context, email string) {
	if err := s.limiter.Fail(ctx, email); err != nil {
		logging.Component("users").Warn().Err(err).Msg("login limiter update failed")
	}
}

func (s *userService) Me(ctx context.Context, caller auth.Identity) (*model.User, error) {
	return s.Get(ctx, caller.ID)
}

func (s *userService) UpdateProfile(ctx context.Context, caller auth.Identity, in UpdateProfileInput) (*model.User, error) {
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		in.Name = &v
	}
	if in.Email != nil {
		v := normalizeEmail(*in.Email)
		in.Email = &v
	}
	if err := asValidation(in.Validate()); err != nil {
		return nil, err
	}

	u, err := s.Get(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	out, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, emailTaken(notFound(err))
	}
	return out, nil
}

func (s *userService) List(ctx context.Context, p Page) (*ListResult[model.User], error) {
	p = p.normalize()
	res, err := s.repo.List(ctx, p.query())
	if err != nil {
		return nil, err
	}
	return newListResult(res, p), nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}
