package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-storefront/internal/domain"
	custrepo "canteen-storefront/internal/repository/customer"
	tokenrepo "canteen-storefront/internal/repository/token"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

const defaultAccessTTL = 48 * time.Hour

// Service handles customer signup/login flows.
type Service struct {
	repo        custrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
	logger      zerolog.Logger
}

// New creates a Service. A non-positive accessTTL falls back to 48h.
func New(repo custrepo.Repository, tokens tokenrepo.Repository, accessTTL time.Duration, logger zerolog.Logger) *Service {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	logger = logger.With().Str("service", "customer").Logger()
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens, logger),
		accessTTL:   accessTTL,
		passwordMin: 6,
		logger:      logger,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Name       string `json:"name" validate:"required,max=100"`
	Username   string `json:"username" validate:"required,min=3,max=32"`
	Password   string `json:"password" validate:"required,max=72"`
	RollNumber string `json:"rollNumber"`
	Phone      string `json:"phone"`
	Branch     string `json:"branch" validate:"required"`
	Year       string `json:"year" validate:"required"`
}

// Signup registers a new customer. The account kind is derived from the name.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.RollNumber = strings.TrimSpace(in.RollNumber)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Branch = strings.TrimSpace(in.Branch)

	kind := DeriveAccountKind(in.Name)
	if err := validateSignup(in, kind, s.passwordMin); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := domain.Customer{
		Username:     in.Username,
		PasswordHash: string(hashed),
		Name:         in.Name,
		Branch:       in.Branch,
		Year:         in.Year,
		IsTeacher:    kind == AccountTeacher,
	}
	if customer.IsTeacher {
		customer.Phone = in.Phone
	} else {
		customer.RollNumber = in.RollNumber
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("customer_id", created.ID).
		Str("kind", string(kind)).
		Msg("customer signed up")
	return created, nil
}

// Login validates credentials and returns an access token plus the customer.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.Customer, string, error) {
	c, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, c.ID, tokenrepo.KindAccess, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return c, access, nil
}

// Logout revokes an access token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.tokens.Revoke(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// LookupByToken returns the customer bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.Customer, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	c, err := s.repo.GetByID(ctx, meta.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return c, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}
