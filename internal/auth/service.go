package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/antigravity-hq/antigravity/backend/internal/apperr"
	"github.com/antigravity-hq/antigravity/backend/internal/models"
)

const bcryptCost = 10

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Service wraps registration and login rules.
type Service struct {
	users    UserStore
	tokens   *TokenManager
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(users UserStore, tokens *TokenManager, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates a user and returns a fresh session token alongside the
// public user view. The password hash never leaves this package.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", nil, apperr.Validation(validationMessage(err))
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return "", nil, apperr.Conflict("email already in use")
	} else if !apperr.IsNotFound(err) {
		return "", nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.CreateUser(ctx, req.Name, req.Email, string(hashed))
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return token, user, nil
}

// Login verifies credentials and issues a fresh session token. Unknown
// email and wrong password yield the same error so callers cannot probe
// which accounts exist.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", nil, apperr.Validation("please provide email and password")
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, apperr.Auth("incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, apperr.Auth("incorrect email or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// validationMessage turns the first field violation into a client message.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request"
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return "email must be a valid email address"
	default:
		return field + " is invalid"
	}
}
