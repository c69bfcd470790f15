package operators

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registration = RegisterInput{
	Company:  "TAP",
	Name:     "Rita",
	Address:  "Rua B",
	Phone:    "213",
	Email:    "Rita@TAP.pt",
	Password: "hunter22",
}

func TestOperatorService_RegisterAndLogin(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC))
	s := NewOperatorService("secret", time.Hour, clock)
	ctx := context.Background()

	op, err := s.Register(ctx, registration)
	require.NoError(t, err)
	assert.Equal(t, int64(1), op.ID)
	assert.Equal(t, "rita@tap.pt", op.Email)
	assert.NotEqual(t, "hunter22", op.PasswordHash)

	token, exp, err := s.Login(ctx, "rita@tap.pt", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), exp)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleOperator, claims.Role)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "TAP", claims.Company)

	clock.Advance(2 * time.Hour)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOperatorService_RegisterDuplicate(t *testing.T) {
	s := NewOperatorService("secret", time.Hour, nil)
	_, err := s.Register(context.Background(), registration)
	require.NoError(t, err)

	_, err = s.Register(context.Background(), registration)
	assert.ErrorIs(t, err, domain.ErrOperatorExists)
}

func TestOperatorService_RegisterInvalid(t *testing.T) {
	s := NewOperatorService("secret", time.Hour, nil)

	in := registration
	in.Email = "not-an-email"
	_, err := s.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = registration
	in.Company = ""
	_, err = s.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOperatorService_LoginWrongPassword(t *testing.T) {
	s := NewOperatorService("secret", time.Hour, nil)
	_, err := s.Register(context.Background(), registration)
	require.NoError(t, err)

	_, _, err = s.Login(context.Background(), "rita@tap.pt", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = s.Login(context.Background(), "nobody@tap.pt", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOperatorService_VerifyRejectsForeignTokens(t *testing.T) {
	s := NewOperatorService("secret", time.Hour, nil)

	other := NewOperatorService("other", time.Hour, nil)
	_, err := other.Register(context.Background(), registration)
	require.NoError(t, err)
	token, _, err := other.Login(context.Background(), registration.Email, registration.Password)
	require.NoError(t, err)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	client, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             "client",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = s.Verify(client)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.Verify("garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
