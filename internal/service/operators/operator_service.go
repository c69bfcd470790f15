package operators

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

const RoleOperator = "operator"

type OperatorUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Operator, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	Verify(token string) (*Claims, error)
}

type RegisterInput struct {
	Company  string `json:"company" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Claims are carried by operator access tokens.
type Claims struct {
	Role    string `json:"role"`
	Email   string `json:"email"`
	Company string `json:"company"`
	jwt.RegisteredClaims
}

type OperatorService struct {
	secret   []byte
	tokenTTL time.Duration
	clock    clockwork.Clock
	validate *validator.Validate

	mu        sync.RWMutex
	nextID    int64
	operators map[string]*domain.Operator
}

func NewOperatorService(secret string, tokenTTL time.Duration, clock clockwork.Clock) *OperatorService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &OperatorService{
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		clock:     clock,
		validate:  validator.New(),
		nextID:    1,
		operators: make(map[string]*domain.Operator),
	}
}

func (s *OperatorService) Register(ctx context.Context, input RegisterInput) (*domain.Operator, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.operators[input.Email]; ok {
		return nil, fmt.Errorf("operator %q: %w", input.Email, domain.ErrOperatorExists)
	}
	op := &domain.Operator{
		ID:           s.nextID,
		Company:      input.Company,
		Name:         input.Name,
		Address:      input.Address,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	s.nextID++
	s.operators[op.Email] = op

	log.Printf("operator %d registered for %s", op.ID, op.Company)
	out := *op
	return &out, nil
}

// Login checks the password and returns a signed HS256 token and its expiry.
func (s *OperatorService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	s.mu.RLock()
	op, ok := s.operators[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	now := s.clock.Now().UTC()
	exp := now.Add(s.tokenTTL)
	claims := Claims{
		Role:    RoleOperator,
		Email:   op.Email,
		Company: op.Company,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(op.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *OperatorService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrUnauthorized)
	}
	if claims.Role != RoleOperator {
		return nil, fmt.Errorf("role %q: %w", claims.Role, domain.ErrUnauthorized)
	}
	return claims, nil
}

var _ OperatorUseCase = (*OperatorService)(nil)
